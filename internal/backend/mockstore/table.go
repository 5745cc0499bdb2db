package mockstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"pilana/internal/backend"
	"pilana/internal/models"
)

// accessors tells a table how to reach the id, ordering key and timestamps
// of a record type.
type accessors[T any] struct {
	id      func(*T) *string
	orderBy func(*T) time.Time
	stamp   func(rec *T, created, updated time.Time)
	created func(*T) time.Time
}

type table[T any] struct {
	mu   sync.RWMutex
	rows map[string]T
	seq  map[string]int64
	next int64
	acc  accessors[T]
	now  func() time.Time
}

func newTable[T any](acc accessors[T], now func() time.Time) *table[T] {
	return &table[T]{rows: map[string]T{}, seq: map[string]int64{}, acc: acc, now: now}
}

func (t *table[T]) List(ctx context.Context) ([]T, error) {
	t.mu.RLock()
	out := make([]T, 0, len(t.rows))
	seqs := make(map[string]int64, len(t.rows))
	for id, r := range t.rows {
		out = append(out, r)
		seqs[id] = t.seq[id]
	}
	t.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		ti, tj := t.acc.orderBy(&out[i]), t.acc.orderBy(&out[j])
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return seqs[*t.acc.id(&out[i])] > seqs[*t.acc.id(&out[j])]
	})
	return out, nil
}

func (t *table[T]) Get(ctx context.Context, id string) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	r, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, backend.ErrNotFound
	}
	return r, nil
}

// Insert adds rec under its id, generating one when empty. An id that is
// already stored is a duplicate, as it is for the database backend.
func (t *table[T]) Insert(ctx context.Context, rec *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.acc.id(rec)
	if *id == "" {
		*id = models.NewID()
	}
	if _, ok := t.rows[*id]; ok {
		return backend.ErrDuplicate
	}
	now := t.now()
	created := t.acc.created(rec)
	if created.IsZero() {
		created = now
	}
	t.acc.stamp(rec, created, now)
	t.next++
	t.rows[*id] = *rec
	t.seq[*id] = t.next
	return nil
}

// Update replaces the stored row. Concurrent writers race and the last one wins.
func (t *table[T]) Update(ctx context.Context, id string, rec *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	old, ok := t.rows[id]
	if !ok {
		return backend.ErrNotFound
	}
	*t.acc.id(rec) = id
	t.acc.stamp(rec, t.acc.created(&old), t.now())
	t.rows[id] = *rec
	return nil
}

func (t *table[T]) Delete(ctx context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return backend.ErrNotFound
	}
	delete(t.rows, id)
	delete(t.seq, id)
	return nil
}
