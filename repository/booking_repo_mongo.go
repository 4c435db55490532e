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

type MongoBookingRepo struct {
	DB     *mongo.Client
	DBName string
}

func NewMongoBookingRepo(db *mongo.Client, dbName string) *MongoBookingRepo {
	return &MongoBookingRepo{DB: db, DBName: dbName}
}

func (r *MongoBookingRepo) coll() *mongo.Collection {
	return r.DB.Database(r.DBName).Collection("bookings")
}

// CreateBooking inserts the booking. The AWB is assigned by the caller
// before persistence; a sequence collision surfaces here as ErrDuplicateKey
// from the unique index.
func (r *MongoBookingRepo) CreateBooking(b *models.Booking) error {
	ctx := context.Background()

	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	if b.BookingDate.IsZero() {
		b.BookingDate = b.CreatedAt
	}

	_, err := r.coll().InsertOne(ctx, b)
	return wrapDuplicate(err)
}

func (r *MongoBookingRepo) GetBookingByAWB(awb string) (*models.Booking, error) {
	ctx := context.Background()

	var b models.Booking
	err := r.coll().FindOne(ctx, bson.M{"awbNumber": awb}).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

// GetBookings fetches bookings matching the filter map, newest first.
func (r *MongoBookingRepo) GetBookings(filters map[string]interface{}, page, limit int64) ([]*models.Booking, error) {
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

	var out []*models.Booking
	for cur.Next(ctx) {
		var b models.Booking
		if err := cur.Decode(&b); err != nil {
			return nil, err
		}
		out = append(out, &b)
	}
	return out, cur.Err()
}

func (r *MongoBookingRepo) GetBookingsByAWBs(awbs []string) ([]*models.Booking, error) {
	return r.GetBookings(map[string]interface{}{
		"awbNumber": bson.M{"$in": awbs},
	}, 0, 0)
}

func (r *MongoBookingRepo) GetBookingsBetween(from, to time.Time) ([]*models.Booking, error) {
	return r.GetBookings(map[string]interface{}{
		"bookingDate": bson.M{"$gte": from, "$lte": to},
	}, 0, 0)
}

// UpdateBooking replaces the stored document. Terminal-state rules are
// enforced by the ledger before this is called.
func (r *MongoBookingRepo) UpdateBooking(b *models.Booking) error {
	ctx := context.Background()

	res, err := r.coll().ReplaceOne(ctx, bson.M{"awbNumber": b.AWBNumber}, b)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DeleteBooking hard-deletes a booking, allowed only while it is still
// Booked or already Cancelled.
func (r *MongoBookingRepo) DeleteBooking(awb string) error {
	ctx := context.Background()

	b, err := r.GetBookingByAWB(awb)
	if err != nil {
		return err
	}
	if b == nil {
		return mongo.ErrNoDocuments
	}
	if !b.Deletable() {
		return errors.New("booking can only be deleted while Booked or Cancelled")
	}

	_, err = r.coll().DeleteOne(ctx, bson.M{"awbNumber": awb})
	return err
}

func (r *MongoBookingRepo) CountByStatus() (map[string]int64, error) {
	ctx := context.Background()

	cur, err := r.coll().Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	counts := make(map[string]int64)
	for cur.Next(ctx) {
		var row struct {
			ID    string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		counts[row.ID] = row.Count
	}
	return counts, cur.Err()
}
