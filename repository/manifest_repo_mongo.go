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

type MongoManifestRepo struct {
	DB     *mongo.Client
	DBName string
}

func NewMongoManifestRepo(db *mongo.Client, dbName string) *MongoManifestRepo {
	return &MongoManifestRepo{DB: db, DBName: dbName}
}

func (r *MongoManifestRepo) coll() *mongo.Collection {
	return r.DB.Database(r.DBName).Collection("manifests")
}

func (r *MongoManifestRepo) CreateManifest(m *models.Manifest) error {
	ctx := context.Background()

	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	_, err := r.coll().InsertOne(ctx, m)
	return wrapDuplicate(err)
}

func (r *MongoManifestRepo) GetManifestByNumber(number string) (*models.Manifest, error) {
	ctx := context.Background()

	var m models.Manifest
	err := r.coll().FindOne(ctx, bson.M{"manifestNumber": number}).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *MongoManifestRepo) GetManifests(filters map[string]interface{}, page, limit int64) ([]*models.Manifest, error) {
	ctx := context.Background()

	bsonFilter := bson.M{}
	for k, v := range filters {
		bsonFilter[k] = v
	}

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	if limit > 0 {
		opts.SetLimit(limit)
		if page > 1 {
			opts.SetSkip((page - 1) * limit)
		}
	}

	cur, err := r.coll().Find(ctx, bsonFilter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*models.Manifest
	for cur.Next(ctx) {
		var m models.Manifest
		if err := cur.Decode(&m); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, cur.Err()
}

func (r *MongoManifestRepo) UpdateManifest(m *models.Manifest) error {
	ctx := context.Background()

	res, err := r.coll().ReplaceOne(ctx, bson.M{"manifestNumber": m.ManifestNumber}, m)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

type MongoDispatchRepo struct {
	DB     *mongo.Client
	DBName string
}

func NewMongoDispatchRepo(db *mongo.Client, dbName string) *MongoDispatchRepo {
	return &MongoDispatchRepo{DB: db, DBName: dbName}
}

func (r *MongoDispatchRepo) coll() *mongo.Collection {
	return r.DB.Database(r.DBName).Collection("dispatches")
}

func (r *MongoDispatchRepo) CreateDispatch(d *models.Dispatch) error {
	ctx := context.Background()

	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	if d.DispatchDate.IsZero() {
		d.DispatchDate = d.CreatedAt
	}
	_, err := r.coll().InsertOne(ctx, d)
	return wrapDuplicate(err)
}

func (r *MongoDispatchRepo) GetDispatchByNumber(number string) (*models.Dispatch, error) {
	ctx := context.Background()

	var d models.Dispatch
	err := r.coll().FindOne(ctx, bson.M{"dispatchNumber": number}).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *MongoDispatchRepo) GetDispatches(filters map[string]interface{}, page, limit int64) ([]*models.Dispatch, error) {
	ctx := context.Background()

	bsonFilter := bson.M{}
	for k, v := range filters {
		bsonFilter[k] = v
	}

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	if limit > 0 {
		opts.SetLimit(limit)
		if page > 1 {
			opts.SetSkip((page - 1) * limit)
		}
	}

	cur, err := r.coll().Find(ctx, bsonFilter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*models.Dispatch
	for cur.Next(ctx) {
		var d models.Dispatch
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		out = append(out, &d)
	}
	return out, cur.Err()
}

func (r *MongoDispatchRepo) UpdateDispatch(d *models.Dispatch) error {
	ctx := context.Background()

	res, err := r.coll().ReplaceOne(ctx, bson.M{"dispatchNumber": d.DispatchNumber}, d)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
