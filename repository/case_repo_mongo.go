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

type MongoExceptionRepo struct {
	DB     *mongo.Client
	DBName string
}

func NewMongoExceptionRepo(db *mongo.Client, dbName string) *MongoExceptionRepo {
	return &MongoExceptionRepo{DB: db, DBName: dbName}
}

func (r *MongoExceptionRepo) coll() *mongo.Collection {
	return r.DB.Database(r.DBName).Collection("exceptions")
}

func (r *MongoExceptionRepo) CreateException(e *models.Exception) error {
	ctx := context.Background()

	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	_, err := r.coll().InsertOne(ctx, e)
	return wrapDuplicate(err)
}

func (r *MongoExceptionRepo) GetExceptionByNumber(number string) (*models.Exception, error) {
	ctx := context.Background()

	var e models.Exception
	err := r.coll().FindOne(ctx, bson.M{"exceptionNumber": number}).Decode(&e)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *MongoExceptionRepo) GetExceptions(filters map[string]interface{}, page, limit int64) ([]*models.Exception, error) {
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

	var out []*models.Exception
	for cur.Next(ctx) {
		var e models.Exception
		if err := cur.Decode(&e); err != nil {
			return nil, err
		}
		out = append(out, &e)
	}
	return out, cur.Err()
}

func (r *MongoExceptionRepo) UpdateException(e *models.Exception) error {
	ctx := context.Background()

	res, err := r.coll().ReplaceOne(ctx, bson.M{"exceptionNumber": e.ExceptionNumber}, e)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

type MongoTicketRepo struct {
	DB     *mongo.Client
	DBName string
}

func NewMongoTicketRepo(db *mongo.Client, dbName string) *MongoTicketRepo {
	return &MongoTicketRepo{DB: db, DBName: dbName}
}

func (r *MongoTicketRepo) coll() *mongo.Collection {
	return r.DB.Database(r.DBName).Collection("tickets")
}

func (r *MongoTicketRepo) CreateTicket(t *models.SupportTicket) error {
	ctx := context.Background()

	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	_, err := r.coll().InsertOne(ctx, t)
	return wrapDuplicate(err)
}

func (r *MongoTicketRepo) GetTicketByNumber(number string) (*models.SupportTicket, error) {
	ctx := context.Background()

	var t models.SupportTicket
	err := r.coll().FindOne(ctx, bson.M{"ticketNumber": number}).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *MongoTicketRepo) GetTickets(filters map[string]interface{}, page, limit int64) ([]*models.SupportTicket, error) {
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

	var out []*models.SupportTicket
	for cur.Next(ctx) {
		var t models.SupportTicket
		if err := cur.Decode(&t); err != nil {
			return nil, err
		}
		out = append(out, &t)
	}
	return out, cur.Err()
}

func (r *MongoTicketRepo) UpdateTicket(t *models.SupportTicket) error {
	ctx := context.Background()

	res, err := r.coll().ReplaceOne(ctx, bson.M{"ticketNumber": t.TicketNumber}, t)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
