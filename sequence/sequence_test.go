package sequence

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

// --- MOCKS ---
// memCounterStore hands out sequential values per key in memory.
type memCounterStore struct {
	counters map[string]int64
	seeded   map[string]int64
	err      error
}

func newMemCounterStore() *memCounterStore {
	return &memCounterStore{counters: make(map[string]int64), seeded: make(map[string]int64)}
}

func (m *memCounterStore) Next(ctx context.Context, key string) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.counters[key]++
	return m.counters[key], nil
}

func (m *memCounterStore) SeedIfUnset(ctx context.Context, key string, value int64) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.counters[key]; !ok {
		m.counters[key] = value
		m.seeded[key] = value
	}
	return nil
}

func fixedNow() time.Time {
	return time.Date(2025, time.March, 15, 10, 30, 0, 0, time.UTC)
}

func testGenerator() (*Generator, *memCounterStore) {
	store := newMemCounterStore()
	return &Generator{Store: store, Now: fixedNow}, store
}

func TestNextFormats(t *testing.T) {
	tests := []struct {
		name  string
		class Class
		want  string
	}{
		{"booking carries two-digit year and padded sequence", ClassBooking, "AWB250000001"},
		{"invoice is zero padded to six digits", ClassInvoice, "INV000001"},
		{"manifest embeds the date", ClassManifest, "MAN202503150001"},
		{"dispatch embeds the date", ClassDispatch, "DSP202503150001"},
		{"exception is zero padded to six digits", ClassException, "EXC000001"},
		{"ticket carries a hyphen", ClassTicket, "TKT-000001"},
		{"transaction is zero padded to eight digits", ClassTransaction, "TXN00000001"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// SETUP
			gen, _ := testGenerator()

			// EXECUTE
			got, err := gen.Next(context.Background(), tc.class)

			// ASSERT
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestNextSequentialAndDistinct(t *testing.T) {
	gen, _ := testGenerator()

	seen := make(map[string]bool)
	for i := 1; i <= 50; i++ {
		got, err := gen.Next(context.Background(), ClassBooking)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := fmt.Sprintf("AWB25%07d", i)
		if got != want {
			t.Errorf("iteration %d: got %q, want %q", i, got, want)
		}
		if seen[got] {
			t.Errorf("duplicate identifier %q", got)
		}
		seen[got] = true
	}
}

func TestNextClassesAreIndependent(t *testing.T) {
	gen, _ := testGenerator()

	if _, err := gen.Next(context.Background(), ClassBooking); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := gen.Next(context.Background(), ClassInvoice)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "INV000001" {
		t.Errorf("invoice counter affected by booking counter: got %q", got)
	}
}

func TestManifestCounterScopedByDate(t *testing.T) {
	gen, store := testGenerator()

	if _, err := gen.Next(context.Background(), ClassManifest); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Next day, counter starts over.
	gen.Now = func() time.Time { return fixedNow().AddDate(0, 0, 1) }
	got, err := gen.Next(context.Background(), ClassManifest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "MAN202503160001" {
		t.Errorf("got %q, want MAN202503160001", got)
	}
	if len(store.counters) != 2 {
		t.Errorf("expected separate counters per date, got %d keys", len(store.counters))
	}
}

func TestSeedInvoiceCounter(t *testing.T) {
	gen, _ := testGenerator()

	if err := gen.SeedInvoiceCounter(context.Background(), 42); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := gen.Next(context.Background(), ClassInvoice)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "INV000043" {
		t.Errorf("got %q, want INV000043", got)
	}
}

func TestSeedInvoiceCounterIgnoresZero(t *testing.T) {
	gen, store := testGenerator()

	if err := gen.SeedInvoiceCounter(context.Background(), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.seeded) != 0 {
		t.Errorf("zero suffix must not seed the counter")
	}
}

func TestNextPropagatesStoreError(t *testing.T) {
	gen, store := testGenerator()
	store.err = errors.New("connection reset")

	if _, err := gen.Next(context.Background(), ClassBooking); err == nil {
		t.Fatal("expected error from store, got nil")
	}
}

func TestNextUnknownClass(t *testing.T) {
	gen, _ := testGenerator()

	if _, err := gen.Next(context.Background(), Class("parcel")); err == nil {
		t.Fatal("expected error for unknown class, got nil")
	}
}
