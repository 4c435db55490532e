// Package sequence produces the human-readable document numbers used across
// the system (AWB, invoice, manifest, dispatch, exception, ticket,
// transaction). Numbers come from per-class atomic counters; the unique
// index on each generated field is the backstop, and a duplicate insert is
// surfaced to the caller as a conflict rather than retried here.
package sequence

import (
	"context"
	"fmt"
	"time"
)

type Class string

const (
	ClassBooking     Class = "booking"
	ClassInvoice     Class = "invoice"
	ClassManifest    Class = "manifest"
	ClassDispatch    Class = "dispatch"
	ClassException   Class = "exception"
	ClassTicket      Class = "ticket"
	ClassTransaction Class = "transaction"
)

// CounterStore hands out the next value of a named counter atomically.
type CounterStore interface {
	Next(ctx context.Context, key string) (int64, error)
	// SeedIfUnset initialises a counter to value only if it does not exist
	// yet. Used to continue invoice numbering from legacy data.
	SeedIfUnset(ctx context.Context, key string, value int64) error
}

type Generator struct {
	Store CounterStore
	Now   func() time.Time
}

func NewGenerator(store CounterStore) *Generator {
	return &Generator{Store: store, Now: time.Now}
}

// Next returns the next identifier for a document class. Manifest and
// dispatch numbers are scoped to the current date, so their counters reset
// daily; every other class uses a single global counter.
func (g *Generator) Next(ctx context.Context, class Class) (string, error) {
	now := g.Now().UTC()

	switch class {
	case ClassBooking:
		n, err := g.Store.Next(ctx, string(class))
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("AWB%02d%07d", now.Year()%100, n), nil
	case ClassInvoice:
		n, err := g.Store.Next(ctx, string(class))
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("INV%06d", n), nil
	case ClassManifest:
		key := fmt.Sprintf("%s:%s", class, now.Format("20060102"))
		n, err := g.Store.Next(ctx, key)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("MAN%s%04d", now.Format("20060102"), n), nil
	case ClassDispatch:
		key := fmt.Sprintf("%s:%s", class, now.Format("20060102"))
		n, err := g.Store.Next(ctx, key)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("DSP%s%04d", now.Format("20060102"), n), nil
	case ClassException:
		n, err := g.Store.Next(ctx, string(class))
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("EXC%06d", n), nil
	case ClassTicket:
		n, err := g.Store.Next(ctx, string(class))
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("TKT-%06d", n), nil
	case ClassTransaction:
		n, err := g.Store.Next(ctx, string(class))
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("TXN%08d", n), nil
	default:
		return "", fmt.Errorf("unknown document class %q", class)
	}
}

// SeedInvoiceCounter continues invoice numbering from the highest suffix
// already on record. Legacy invoices were numbered by parsing and
// incrementing the last invoice's suffix; the atomic counter takes over
// from wherever that scheme stopped.
func (g *Generator) SeedInvoiceCounter(ctx context.Context, lastSuffix int64) error {
	if lastSuffix <= 0 {
		return nil
	}
	return g.Store.SeedIfUnset(ctx, string(ClassInvoice), lastSuffix)
}
