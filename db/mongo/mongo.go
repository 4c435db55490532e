package mongo

import (
	"context"
	"time"

	"courierhub/db"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ db.DB = (*MongoDB)(nil)

type MongoDB struct {
	Client *mongo.Client
	Ctx    context.Context
	Cancel context.CancelFunc
	URL    string
}

func NewMongoDB(url string) *MongoDB {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	return &MongoDB{
		Ctx:    ctx,
		Cancel: cancel,
		URL:    url,
	}
}

func (m *MongoDB) Connect() error {
	client, err := mongo.Connect(m.Ctx, options.Client().ApplyURI(m.URL))
	if err != nil {
		return err
	}
	m.Client = client
	return m.Client.Ping(m.Ctx, nil)
}

func (m *MongoDB) Disconnect() error {
	m.Cancel()
	return m.Client.Disconnect(m.Ctx)
}

func (m *MongoDB) GetContext() context.Context {
	return m.Ctx
}

// EnsureIndexes creates the unique indexes that back the generated
// document numbers. A duplicate-key error on insert is how a sequence
// collision surfaces to the caller.
func (m *MongoDB) EnsureIndexes(dbName string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := m.Client.Database(dbName)

	unique := func(coll, field string) error {
		_, err := db.Collection(coll).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		return err
	}

	pairs := []struct{ coll, field string }{
		{"bookings", "awbNumber"},
		{"invoices", "invoiceNumber"},
		{"payments", "transactionId"},
		{"manifests", "manifestNumber"},
		{"dispatches", "dispatchNumber"},
		{"exceptions", "exceptionNumber"},
		{"tickets", "ticketNumber"},
		{"api_keys", "apiKey"},
		{"app_users", "email"},
	}
	for _, p := range pairs {
		if err := unique(p.coll, p.field); err != nil {
			return err
		}
	}

	// Non-unique lookup indexes.
	secondary := []struct{ coll, field string }{
		{"bookings", "shipperId"},
		{"bookings", "status"},
		{"invoices", "shipper.shipperId"},
		{"payments", "invoiceNumber"},
	}
	for _, p := range secondary {
		_, err := db.Collection(p.coll).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: p.field, Value: 1}},
		})
		if err != nil {
			return err
		}
	}

	return nil
}
