package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoCounterRepo struct {
	DB     *mongo.Client
	DBName string
}

func NewMongoCounterRepo(db *mongo.Client, dbName string) *MongoCounterRepo {
	return &MongoCounterRepo{DB: db, DBName: dbName}
}

// Next atomically increments and returns the counter. The upsert creates
// the counter at 1 on first use, so no separate bootstrap is needed.
func (r *MongoCounterRepo) Next(ctx context.Context, key string) (int64, error) {
	coll := r.DB.Database(r.DBName).Collection("counters")

	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := coll.FindOneAndUpdate(ctx,
		bson.M{"_id": key},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().
			SetUpsert(true).
			SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, err
	}
	return doc.Seq, nil
}

func (r *MongoCounterRepo) SeedIfUnset(ctx context.Context, key string, value int64) error {
	coll := r.DB.Database(r.DBName).Collection("counters")

	_, err := coll.UpdateOne(ctx,
		bson.M{"_id": key},
		bson.M{"$setOnInsert": bson.M{"seq": value}},
		options.Update().SetUpsert(true),
	)
	return err
}
