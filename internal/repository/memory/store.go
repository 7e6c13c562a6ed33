// Package memory provides map-backed repositories used when no
// database is configured: local development, demos and tests. The
// store mimics the query surface the HTTP layer relies on elsewhere:
// sort keys accept a "-" prefix for descending order and filters use
// loose string equality.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"medquiz/internal/domain"
	"medquiz/internal/domain/repositories"
)

// Meta tells a Store how to reach into its record type.
type Meta[T any] struct {
	// ID returns the record's id.
	ID func(*T) string
	// SetID assigns a generated id.
	SetID func(*T, string)
	// Stamp sets created/updated timestamps. created is false for
	// updates.
	Stamp func(*T, time.Time, bool)
	// Fields exposes the sortable and filterable fields by name.
	Fields func(*T) map[string]interface{}
}

// Store is a generic in-memory record collection.
type Store[T any] struct {
	mu    sync.RWMutex
	items map[string]T
	meta  Meta[T]
}

// NewStore creates an empty store.
func NewStore[T any](meta Meta[T]) *Store[T] {
	return &Store[T]{items: make(map[string]T), meta: meta}
}

// Create assigns an id and timestamps, then inserts the record.
func (s *Store[T]) Create(item *T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.meta.ID(item) == "" {
		s.meta.SetID(item, uuid.NewString())
	}
	s.meta.Stamp(item, time.Now(), true)
	s.items[s.meta.ID(item)] = *item
}

// Get returns a copy of the record, or ErrNotFound.
func (s *Store[T]) Get(id string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("record %s: %w", id, domain.ErrNotFound)
	}
	return item, nil
}

// Update applies a mutation to the record under the lock.
func (s *Store[T]) Update(id string, apply func(*T)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return fmt.Errorf("record %s: %w", id, domain.ErrNotFound)
	}
	apply(&item)
	s.meta.Stamp(&item, time.Now(), false)
	s.items[id] = item
	return nil
}

// Delete removes the record, or returns ErrNotFound.
func (s *Store[T]) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return fmt.Errorf("record %s: %w", id, domain.ErrNotFound)
	}
	delete(s.items, id)
	return nil
}

// List returns all records ordered by sortKey. A "-" prefix sorts
// descending. Records comparing equal keep a deterministic relative
// order by id.
func (s *Store[T]) List(sortKey string) []T {
	return s.Filter(nil, sortKey)
}

// Filter returns the records whose fields loosely match every entry in
// query, ordered by sortKey. Loose match compares the string forms, so
// a *string field matches its string query value.
func (s *Store[T]) Filter(query map[string]interface{}, sortKey string) []T {
	s.mu.RLock()
	items := make([]T, 0, len(s.items))
	for _, item := range s.items {
		if matches(s.meta.Fields(&item), query) {
			items = append(items, item)
		}
	}
	s.mu.RUnlock()

	desc := false
	if len(sortKey) > 0 && sortKey[0] == '-' {
		desc = true
		sortKey = sortKey[1:]
	}

	sort.SliceStable(items, func(i, j int) bool {
		c := looseCompare(s.meta.Fields(&items[i])[sortKey], s.meta.Fields(&items[j])[sortKey])
		if c == 0 {
			return s.meta.ID(&items[i]) < s.meta.ID(&items[j])
		}
		if desc {
			return c > 0
		}
		return c < 0
	})

	return items
}

// looseCompare orders numbers numerically and everything else by
// string form.
func looseCompare(a, b interface{}) int {
	an, aok := asNumber(a)
	bn, bok := asNumber(b)
	if aok && bok {
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		default:
			return 0
		}
	}
	as, bs := looseString(a), looseString(b)
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}

func asNumber(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case float64:
		return x, true
	default:
		return 0, false
	}
}

func matches(fields map[string]interface{}, query map[string]interface{}) bool {
	for key, want := range query {
		if looseString(fields[key]) != looseString(want) {
			return false
		}
	}
	return true
}

// looseString flattens pointers and scalars to a comparable string.
// Nil pointers and nil values both become the empty string.
func looseString(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case *string:
		if x == nil {
			return ""
		}
		return *x
	case string:
		return x
	case time.Time:
		return x.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(x)
	}
}

// TransactionManager is a pass-through: the map store has no
// transactions, each operation is atomic under its own lock.
type TransactionManager struct{}

// NewTransactionManager creates a pass-through transaction manager.
func NewTransactionManager() repositories.TransactionManager {
	return &TransactionManager{}
}

// ExecTx runs fn directly.
func (tm *TransactionManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}
