package repository

import "context"

// CounterRepository implements sequence.CounterStore on a dedicated
// counters collection with one document per counter key.
type CounterRepository interface {
	Next(ctx context.Context, key string) (int64, error)
	SeedIfUnset(ctx context.Context, key string, value int64) error
}
