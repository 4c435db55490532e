package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword generates a bcrypt hash of the password
func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// CheckPassword compares a plain password with its hashed version
func CheckPassword(password, hashed string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password))
	return err == nil
}

type JWTConfig struct {
	SecretKey string
	Issuer    string
	Expiry    time.Duration
}

type SessionClaims struct {
	Email  string
	Name   string
	Role   string
	Branch string
	Zone   string
}

// GenerateJWT issues a signed session token for a back-office user.
func GenerateJWT(claims SessionClaims, cfg JWTConfig) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email":  claims.Email,
		"name":   claims.Name,
		"role":   claims.Role,
		"branch": claims.Branch,
		"zone":   claims.Zone,
		"iss":    cfg.Issuer,
		"exp":    now.Add(cfg.Expiry).Unix(),
		"iat":    now.Unix(),
	})
	return token.SignedString([]byte(cfg.SecretKey))
}

// ParseJWT validates a session token and returns its claims.
func ParseJWT(tokenString string, cfg JWTConfig) (*SessionClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	str := func(key string) string {
		if v, ok := mc[key].(string); ok {
			return v
		}
		return ""
	}
	return &SessionClaims{
		Email:  str("email"),
		Name:   str("name"),
		Role:   str("role"),
		Branch: str("branch"),
		Zone:   str("zone"),
	}, nil
}
