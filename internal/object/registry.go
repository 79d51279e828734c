package object

import "fmt"

// Registry is an ordered collection of entities of one type.
// Iteration order is insertion order and stays stable until the next
// RemoveAt or Compact.
type Registry[T any] struct {
	items []T
}

// NewRegistry creates an empty registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{}
}

// Add appends an entity.
func (r *Registry[T]) Add(item T) {
	r.items = append(r.items, item)
}

// RemoveAt removes the entity at index i, preserving the order of the rest.
// Removing an index that does not exist is a programming error and panics.
func (r *Registry[T]) RemoveAt(i int) {
	if i < 0 || i >= len(r.items) {
		panic(fmt.Sprintf("object: RemoveAt(%d) out of range [0,%d)", i, len(r.items)))
	}
	copy(r.items[i:], r.items[i+1:])
	var zero T
	r.items[len(r.items)-1] = zero
	r.items = r.items[:len(r.items)-1]
}

// At returns the entity at index i. Panics when out of range.
func (r *Registry[T]) At(i int) T {
	return r.items[i]
}

// All returns the live backing slice. Callers must not append to it and must
// not hold it across a RemoveAt, Compact or Clear.
func (r *Registry[T]) All() []T {
	return r.items
}

// Len returns the number of entities.
func (r *Registry[T]) Len() int {
	return len(r.items)
}

// Compact drops every entity for which keep returns false, in one pass,
// and returns how many were removed.
func (r *Registry[T]) Compact(keep func(T) bool) int {
	kept := r.items[:0] // reuse backing array
	for _, item := range r.items {
		if keep(item) {
			kept = append(kept, item)
		}
	}
	removed := len(r.items) - len(kept)
	var zero T
	for i := len(kept); i < len(r.items); i++ {
		r.items[i] = zero
	}
	r.items = kept
	return removed
}

// Clear removes all entities without releasing the backing array.
func (r *Registry[T]) Clear() {
	clear(r.items)
	r.items = r.items[:0]
}
