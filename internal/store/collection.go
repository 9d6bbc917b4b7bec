package store

import (
	"encoding/json"
	"fmt"
)

// Collection is a typed binding to one storage key. Opening a collection is
// cheap; the decoded value always comes from the store's single mirror, so
// two bindings to the same key can never diverge.
type Collection[T any] struct {
	s   *Store
	key string
	def func() T
}

// Open binds key to type T with a default used when the key is absent.
// The returned error is nil for an absent key, ErrCorrupt when a stored
// value exists but does not decode (the default is still returned so the
// caller can choose the lenient path), and ErrUnavailable when the engine
// is down.
func Open[T any](s *Store, key string, def T) (Collection[T], T, error) {
	c := Collection[T]{s: s, key: key, def: func() T { return def }}
	v, err := c.Get()
	return c, v, err
}

// Get decodes the current value, falling back to the default on absence.
func (c Collection[T]) Get() (T, error) {
	raw, ok, err := c.s.GetRaw(c.key)
	if err != nil {
		return c.def(), err
	}
	if !ok {
		return c.def(), nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return c.def(), fmt.Errorf("%w: key %q: %v", ErrCorrupt, c.key, err)
	}
	return v, nil
}

// Set replaces the stored value with next.
func (c Collection[T]) Set(next T) error {
	raw, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode %q: %w", c.key, err)
	}
	return c.s.SetRaw(c.key, raw)
}

// Update applies fn to the current value and persists the result. The
// read-modify-write runs under the store's write lock, so two updaters to
// the same key cannot base their write on the same stale snapshot. A stored
// value that fails to decode aborts with ErrCorrupt rather than silently
// clobbering it with the default.
func (c Collection[T]) Update(fn func(prev T) T) error {
	s := c.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrUnavailable
	}
	prev := c.def()
	if raw, ok := s.cache[c.key]; ok {
		if err := json.Unmarshal(raw, &prev); err != nil {
			return fmt.Errorf("%w: key %q: %v", ErrCorrupt, c.key, err)
		}
	}
	raw, err := json.Marshal(fn(prev))
	if err != nil {
		return fmt.Errorf("encode %q: %w", c.key, err)
	}
	return s.setLocked(c.key, raw)
}

// Keyed is a slice collection with id-addressed access: upserts and deletes
// touch one record instead of requiring callers to rebuild the whole slice.
type Keyed[T any] struct {
	Collection[[]T]
	id func(T) string
}

// OpenKeyed binds key to a []T collection whose elements are identified by id.
func OpenKeyed[T any](s *Store, key string, id func(T) string) Keyed[T] {
	return Keyed[T]{
		Collection: Collection[[]T]{s: s, key: key, def: func() []T { return nil }},
		id:         id,
	}
}

// Find returns the record with the given id, preserving lookup order.
func (c Keyed[T]) Find(id string) (T, bool, error) {
	var zero T
	all, err := c.Get()
	if err != nil {
		return zero, false, err
	}
	for _, rec := range all {
		if c.id(rec) == id {
			return rec, true, nil
		}
	}
	return zero, false, nil
}

// Filter returns the records matching pred in their stored order.
func (c Keyed[T]) Filter(pred func(T) bool) ([]T, error) {
	all, err := c.Get()
	if err != nil {
		return nil, err
	}
	var out []T
	for _, rec := range all {
		if pred(rec) {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Put upserts rec: an existing record with the same id is replaced in place,
// otherwise rec is appended.
func (c Keyed[T]) Put(rec T) error {
	id := c.id(rec)
	return c.Update(func(prev []T) []T {
		for i, existing := range prev {
			if c.id(existing) == id {
				prev[i] = rec
				return prev
			}
		}
		return append(prev, rec)
	})
}

// Append adds rec to the end of the collection without an id scan.
func (c Keyed[T]) Append(rec T) error {
	return c.Update(func(prev []T) []T { return append(prev, rec) })
}

// Delete removes the record with the given id, if present.
func (c Keyed[T]) Delete(id string) error {
	return c.Update(func(prev []T) []T {
		for i, existing := range prev {
			if c.id(existing) == id {
				return append(prev[:i], prev[i+1:]...)
			}
		}
		return prev
	})
}
