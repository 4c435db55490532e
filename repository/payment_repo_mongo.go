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

type MongoPaymentRepo struct {
	DB     *mongo.Client
	DBName string
}

func NewMongoPaymentRepo(db *mongo.Client, dbName string) *MongoPaymentRepo {
	return &MongoPaymentRepo{DB: db, DBName: dbName}
}

func (r *MongoPaymentRepo) coll() *mongo.Collection {
	return r.DB.Database(r.DBName).Collection("payments")
}

func (r *MongoPaymentRepo) CreatePayment(p *models.Payment) error {
	ctx := context.Background()

	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	_, err := r.coll().InsertOne(ctx, p)
	return wrapDuplicate(err)
}

func (r *MongoPaymentRepo) GetPaymentByTransactionID(txnID string) (*models.Payment, error) {
	ctx := context.Background()

	var p models.Payment
	err := r.coll().FindOne(ctx, bson.M{"transactionId": txnID}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *MongoPaymentRepo) GetPayments(filters map[string]interface{}, page, limit int64) ([]*models.Payment, error) {
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

	var out []*models.Payment
	for cur.Next(ctx) {
		var p models.Payment
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, cur.Err()
}

func (r *MongoPaymentRepo) UpdatePayment(p *models.Payment) error {
	ctx := context.Background()

	res, err := r.coll().ReplaceOne(ctx, bson.M{"transactionId": p.TransactionID}, p)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
