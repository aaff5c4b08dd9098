// Package memstore provides the process-local record collections backing
// the console. Contents are seeded from fixtures and lost on restart.
package memstore

import (
	"errors"
	"slices"
	"sync"
)

// ErrNotFound is returned when no record has the requested key.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when inserting an existing key.
var ErrDuplicate = errors.New("duplicate record")

// Store is an insertion-ordered collection keyed by K.
type Store[K comparable, T any] struct {
	mu    sync.RWMutex
	key   func(T) K
	order []K
	items map[K]T
}

// New constructs a store seeded with records in order.
func New[K comparable, T any](key func(T) K, records []T) (*Store[K, T], error) {
	s := &Store[K, T]{key: key, items: make(map[K]T, len(records))}
	for _, rec := range records {
		if err := s.Insert(rec); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// All returns a snapshot of every record in insertion order.
func (s *Store[K, T]) All() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.items[k])
	}
	return out
}

// Len returns the number of records.
func (s *Store[K, T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Get returns the record stored under k.
func (s *Store[K, T]) Get(k K) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.items[k]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return rec, nil
}

// Insert appends rec.
func (s *Store[K, T]) Insert(rec T) error {
	k := s.key(rec)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[k]; ok {
		return ErrDuplicate
	}
	s.items[k] = rec
	s.order = append(s.order, k)
	return nil
}

// Update applies fn to the record under k and stores the result. The record
// is left untouched when fn returns an error.
func (s *Store[K, T]) Update(k K, fn func(T) (T, error)) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.items[k]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	next, err := fn(rec)
	if err != nil {
		return rec, err
	}
	s.items[k] = next
	return next, nil
}

// Delete removes the record under k.
func (s *Store[K, T]) Delete(k K) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[k]; !ok {
		return ErrNotFound
	}
	delete(s.items, k)
	s.order = slices.DeleteFunc(s.order, func(o K) bool { return o == k })
	return nil
}
