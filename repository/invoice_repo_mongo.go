package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"courierhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoInvoiceRepo struct {
	DB     *mongo.Client
	DBName string
}

func NewMongoInvoiceRepo(db *mongo.Client, dbName string) *MongoInvoiceRepo {
	return &MongoInvoiceRepo{DB: db, DBName: dbName}
}

func (r *MongoInvoiceRepo) coll() *mongo.Collection {
	return r.DB.Database(r.DBName).Collection("invoices")
}

func (r *MongoInvoiceRepo) CreateInvoice(inv *models.Invoice) error {
	ctx := context.Background()

	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = time.Now().UTC()
	}
	if inv.InvoiceDate.IsZero() {
		inv.InvoiceDate = inv.CreatedAt
	}

	_, err := r.coll().InsertOne(ctx, inv)
	return wrapDuplicate(err)
}

func (r *MongoInvoiceRepo) GetInvoiceByNumber(number string) (*models.Invoice, error) {
	ctx := context.Background()

	var inv models.Invoice
	err := r.coll().FindOne(ctx, bson.M{"invoiceNumber": number}).Decode(&inv)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

func (r *MongoInvoiceRepo) GetInvoices(filters map[string]interface{}, page, limit int64) ([]*models.Invoice, error) {
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

	var out []*models.Invoice
	for cur.Next(ctx) {
		var inv models.Invoice
		if err := cur.Decode(&inv); err != nil {
			return nil, err
		}
		out = append(out, &inv)
	}
	return out, cur.Err()
}

func (r *MongoInvoiceRepo) GetInvoicesBetween(from, to time.Time) ([]*models.Invoice, error) {
	return r.GetInvoices(map[string]interface{}{
		"invoiceDate": bson.M{"$gte": from, "$lte": to},
	}, 0, 0)
}

func (r *MongoInvoiceRepo) UpdateInvoice(inv *models.Invoice) error {
	ctx := context.Background()

	res, err := r.coll().ReplaceOne(ctx, bson.M{"invoiceNumber": inv.InvoiceNumber}, inv)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DeleteInvoice removes an invoice document. The no-payments guard lives
// with the handler so the reason reaches the caller.
func (r *MongoInvoiceRepo) DeleteInvoice(number string) error {
	ctx := context.Background()

	res, err := r.coll().DeleteOne(ctx, bson.M{"invoiceNumber": number})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *MongoInvoiceRepo) LastInvoiceSuffix() (int64, error) {
	ctx := context.Background()

	var inv models.Invoice
	err := r.coll().FindOne(ctx, bson.M{},
		options.FindOne().SetSort(bson.M{"invoiceNumber": -1}),
	).Decode(&inv)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, err
	}

	suffix := strings.TrimPrefix(inv.InvoiceNumber, "INV")
	n, err := strconv.ParseInt(suffix, 10, 64)
	if err != nil {
		return 0, nil // malformed legacy number, start fresh
	}
	return n, nil
}
