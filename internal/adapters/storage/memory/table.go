package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"vetsoft/internal/platform/apperror"
)

var ErrAlreadyExists = errors.New("already exists")

// table es un map protegido por RWMutex; los handlers de net/http corren concurrentes.
// id y created extraen la clave y el orden de listado de cada registro.
type table[T any] struct {
	name    string
	mu      sync.RWMutex
	byID    map[int64]T
	id      func(T) int64
	created func(T) time.Time
}

func newTable[T any](name string, id func(T) int64, created func(T) time.Time) *table[T] {
	return &table[T]{
		name:    name,
		byID:    make(map[int64]T),
		id:      id,
		created: created,
	}
}

func (t *table[T]) Create(_ context.Context, rec T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.id(rec)
	if id <= 0 {
		return fmt.Errorf("%s: id required", t.name)
	}
	if _, exists := t.byID[id]; exists {
		return fmt.Errorf("%s %d: %w", t.name, id, ErrAlreadyExists)
	}
	t.byID[id] = rec
	return nil
}

func (t *table[T]) Update(_ context.Context, rec T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.id(rec)
	if _, exists := t.byID[id]; !exists {
		return fmt.Errorf("%s %d: %w", t.name, id, apperror.ErrNotFound)
	}
	t.byID[id] = rec
	return nil
}

func (t *table[T]) GetByID(_ context.Context, id int64) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	rec, ok := t.byID[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s %d: %w", t.name, id, apperror.ErrNotFound)
	}
	return rec, nil
}

func (t *table[T]) List(_ context.Context) ([]T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]T, 0, len(t.byID))
	for _, rec := range t.byID {
		out = append(out, rec)
	}

	// Orden estable por created_at asc, desempata por id.
	sort.Slice(out, func(i, j int) bool {
		ci, cj := t.created(out[i]), t.created(out[j])
		if ci.Equal(cj) {
			return t.id(out[i]) < t.id(out[j])
		}
		return ci.Before(cj)
	})

	return out, nil
}

func (t *table[T]) Delete(_ context.Context, id int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.byID[id]; !ok {
		return fmt.Errorf("%s %d: %w", t.name, id, apperror.ErrNotFound)
	}
	delete(t.byID, id)
	return nil
}
