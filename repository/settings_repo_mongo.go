package repository

import (
	"context"
	"errors"
	"time"

	"courierhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoSettingsRepo struct {
	DB     *mongo.Client
	DBName string
}

func NewMongoSettingsRepo(db *mongo.Client, dbName string) *MongoSettingsRepo {
	return &MongoSettingsRepo{DB: db, DBName: dbName}
}

func (r *MongoSettingsRepo) coll() *mongo.Collection {
	return r.DB.Database(r.DBName).Collection("settings")
}

// SaveSettings upserts the single operator profile document.
func (r *MongoSettingsRepo) SaveSettings(s *models.CompanySettings) error {
	ctx := context.Background()

	now := time.Now().UTC()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = &now

	_, err := r.coll().UpdateOne(ctx,
		bson.M{},
		bson.M{"$set": s},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *MongoSettingsRepo) GetSettings() (*models.CompanySettings, error) {
	ctx := context.Background()

	var s models.CompanySettings
	err := r.coll().FindOne(ctx, bson.M{}).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}
