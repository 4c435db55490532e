package repository

import (
	"context"
	"errors"
	"time"

	"courierhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoShipperRepo struct {
	DB     *mongo.Client
	DBName string
}

func NewMongoShipperRepo(db *mongo.Client, dbName string) *MongoShipperRepo {
	return &MongoShipperRepo{DB: db, DBName: dbName}
}

func (r *MongoShipperRepo) coll() *mongo.Collection {
	return r.DB.Database(r.DBName).Collection("shippers")
}

func (r *MongoShipperRepo) CreateShipper(s *models.Shipper) error {
	ctx := context.Background()

	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	if s.ShipperID == "" {
		s.ShipperID = s.ID.Hex()
	}
	s.Active = true

	_, err := r.coll().InsertOne(ctx, s)
	return wrapDuplicate(err)
}

func (r *MongoShipperRepo) GetShipperByID(shipperID string) (*models.Shipper, error) {
	ctx := context.Background()

	var s models.Shipper
	err := r.coll().FindOne(ctx, bson.M{"shipperId": shipperID}).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *MongoShipperRepo) GetShippers(filters map[string]interface{}, page, limit int64) ([]*models.Shipper, error) {
	ctx := context.Background()

	bsonFilter := bson.M{}
	for k, v := range filters {
		bsonFilter[k] = v
	}

	opts := options.Find().SetSort(bson.M{"name": 1})
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

	var out []*models.Shipper
	for cur.Next(ctx) {
		var s models.Shipper
		if err := cur.Decode(&s); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, cur.Err()
}

func (r *MongoShipperRepo) UpdateShipper(s *models.Shipper) error {
	ctx := context.Background()

	res, err := r.coll().ReplaceOne(ctx, bson.M{"shipperId": s.ShipperID}, s)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *MongoShipperRepo) IncrementBookingCount(shipperID string) error {
	ctx := context.Background()

	_, err := r.coll().UpdateOne(ctx,
		bson.M{"shipperId": shipperID},
		bson.M{"$inc": bson.M{"totalBookings": 1}},
	)
	return err
}
