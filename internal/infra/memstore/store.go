// Package memstore provides the reference in-memory repository
// implementations. Each collection is guarded by its own mutex, so
// operations against one collection are linearizable while different
// collections may interleave freely. Stored entities are deep-copied on the
// way in and out: callers never share mutable state with the store.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/drivebay/drivebay/internal/domain"
)

// Store is a mutex-guarded entity collection. kind names the entity in
// not-found messages; id, clone and less define identity, copy semantics
// and List order.
type Store[T any] struct {
	mu    sync.Mutex
	items map[uuid.UUID]T
	kind  string
	id    func(T) uuid.UUID
	clone func(T) T
	less  func(a, b T) bool
}

// New creates an empty collection.
func New[T any](kind string, id func(T) uuid.UUID, clone func(T) T, less func(a, b T) bool) *Store[T] {
	return &Store[T]{
		items: make(map[uuid.UUID]T),
		kind:  kind,
		id:    id,
		clone: clone,
		less:  less,
	}
}

// Get returns a copy of the entity, or an ErrNotFound-wrapped error.
func (s *Store[T]) Get(ctx context.Context, id uuid.UUID) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return zero, fmt.Errorf("%w: %s %q", domain.ErrNotFound, s.kind, id)
	}
	return s.clone(item), nil
}

// List returns copies of all entities in the collection's defined order.
func (s *Store[T]) List(ctx context.Context) ([]T, error) {
	return s.Select(ctx, nil)
}

// Select returns copies of the entities matching pred (all when pred is
// nil), in the collection's defined order.
func (s *Store[T]) Select(ctx context.Context, pred func(T) bool) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]T, 0, len(s.items))
	for _, item := range s.items {
		if pred == nil || pred(item) {
			out = append(out, s.clone(item))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return s.less(out[i], out[j]) })
	return out, nil
}

// Add inserts a copy of the entity.
func (s *Store[T]) Add(ctx context.Context, entity T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[s.id(entity)] = s.clone(entity)
	return nil
}

// Update replaces the stored entity with the same identifier. Unknown
// identifiers are ignored.
func (s *Store[T]) Update(ctx context.Context, entity T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.id(entity)
	if _, ok := s.items[id]; !ok {
		return nil
	}
	s.items[id] = s.clone(entity)
	return nil
}

// Delete removes the entity with the same identifier, if present.
func (s *Store[T]) Delete(ctx context.Context, entity T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, s.id(entity))
	return nil
}

// Len reports the current collection size.
func (s *Store[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
