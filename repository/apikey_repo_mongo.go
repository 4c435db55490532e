package repository

import (
	"context"
	"errors"
	"time"

	"courierhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoAPIKeyRepo struct {
	DB     *mongo.Client
	DBName string
}

func NewMongoAPIKeyRepo(db *mongo.Client, dbName string) *MongoAPIKeyRepo {
	return &MongoAPIKeyRepo{DB: db, DBName: dbName}
}

func (r *MongoAPIKeyRepo) coll() *mongo.Collection {
	return r.DB.Database(r.DBName).Collection("api_keys")
}

func (r *MongoAPIKeyRepo) CreateAPIKey(k *models.APIKey) error {
	ctx := context.Background()

	if k.CreatedAt.IsZero() {
		k.CreatedAt = time.Now().UTC()
	}
	k.Active = true

	_, err := r.coll().InsertOne(ctx, k)
	return wrapDuplicate(err)
}

func (r *MongoAPIKeyRepo) GetAPIKeyByKey(apiKey string) (*models.APIKey, error) {
	ctx := context.Background()

	var k models.APIKey
	err := r.coll().FindOne(ctx, bson.M{"apiKey": apiKey}).Decode(&k)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &k, nil
}

func (r *MongoAPIKeyRepo) GetAPIKeys(filters map[string]interface{}) ([]*models.APIKey, error) {
	ctx := context.Background()

	bsonFilter := bson.M{}
	for k, v := range filters {
		bsonFilter[k] = v
	}

	cur, err := r.coll().Find(ctx, bsonFilter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*models.APIKey
	for cur.Next(ctx) {
		var k models.APIKey
		if err := cur.Decode(&k); err != nil {
			return nil, err
		}
		out = append(out, &k)
	}
	return out, cur.Err()
}

func (r *MongoAPIKeyRepo) UpdateUsage(k *models.APIKey) error {
	ctx := context.Background()

	now := time.Now().UTC()
	k.LastUsedAt = &now

	_, err := r.coll().UpdateOne(ctx,
		bson.M{"apiKey": k.APIKey},
		bson.M{"$set": bson.M{
			"dayWindow":    k.DayWindow,
			"dayCount":     k.DayCount,
			"minuteWindow": k.MinuteWindow,
			"minuteCount":  k.MinuteCount,
			"lastUsedAt":   k.LastUsedAt,
		}},
	)
	return err
}

func (r *MongoAPIKeyRepo) UpdateAPIKey(k *models.APIKey) error {
	ctx := context.Background()

	res, err := r.coll().ReplaceOne(ctx, bson.M{"apiKey": k.APIKey}, k)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
