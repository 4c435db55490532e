package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURL     string
	DatabaseName string
	Port         string
	JWTSecret    string
	JWTIssuer    string
	JWTExpiry    time.Duration
	PDFSavePath  string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{
		MongoURL:     os.Getenv("MONGO_URL"),
		DatabaseName: os.Getenv("MONGO_DB"),
		Port:         os.Getenv("PORT"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		JWTIssuer:    os.Getenv("JWT_ISSUER"),
		PDFSavePath:  os.Getenv("PDF_SAVE_PATH"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.DatabaseName == "" {
		cfg.DatabaseName = "courierhub"
	}
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "courierhub"
	}

	cfg.JWTExpiry = 24 * time.Hour
	if v := os.Getenv("JWT_EXPIRY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.JWTExpiry = d
		}
	}

	return cfg
}
