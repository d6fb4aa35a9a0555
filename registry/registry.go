// Package registry implements the immutable static tables backing terrain,
// building, unit, culture, religion, and resource definitions (spec §3.4):
// a bijection between a string data-file key and a dense uint16 id, with
// iteration in insertion order.
//
// Registries are populated once during the loader bootstrap phase (spec
// §4.7) and are read-only for the remainder of the process's life.
package registry

import "fmt"

// Id is a dense identifier assigned in registration order. 0 is reserved
// for "not found" the same way ProvinceId/CountryId reserve 0.
type Id uint16

// Registry is an immutable-after-build mapping from string key and dense Id
// to a value-type record of type T.
type Registry[T any] struct {
	byKey   map[string]Id
	byId    []T
	keys    []string
	built   bool
}

// New creates an empty, still-mutable Registry.
func New[T any]() *Registry[T] {
	return &Registry[T]{
		byKey: make(map[string]Id),
		byId:  []T{zeroOf[T]()}, // index 0 reserved
		keys:  []string{""},
	}
}

func zeroOf[T any]() T {
	var z T
	return z
}

// Register adds a new record under key, returning its assigned dense Id. It
// panics if called after Build or if key was already registered, since
// registries are populated exactly once during loader bootstrap and a
// duplicate key indicates a data-file bug that should fail loudly rather
// than silently shadow the earlier definition.
func (r *Registry[T]) Register(key string, value T) Id {
	if r.built {
		panic(fmt.Sprintf("registry: Register(%q) called after Build", key))
	}
	if _, exists := r.byKey[key]; exists {
		panic(fmt.Sprintf("registry: duplicate key %q", key))
	}
	id := Id(len(r.byId))
	r.byId = append(r.byId, value)
	r.byKey[key] = id
	r.keys = append(r.keys, key)
	return id
}

// Build freezes the registry against further registration.
func (r *Registry[T]) Build() { r.built = true }

// Lookup returns the record for id and whether it exists.
func (r *Registry[T]) Lookup(id Id) (T, bool) {
	if id == 0 || int(id) >= len(r.byId) {
		var z T
		return z, false
	}
	return r.byId[id], true
}

// LookupKey returns the record for a string key and whether it exists.
func (r *Registry[T]) LookupKey(key string) (T, Id, bool) {
	id, ok := r.byKey[key]
	if !ok {
		var z T
		return z, 0, false
	}
	v, _ := r.Lookup(id)
	return v, id, true
}

// IdOf returns the dense Id for key, or 0 if unregistered.
func (r *Registry[T]) IdOf(key string) Id {
	return r.byKey[key]
}

// KeyOf returns the string key for id, or "" if out of range.
func (r *Registry[T]) KeyOf(id Id) string {
	if int(id) >= len(r.keys) {
		return ""
	}
	return r.keys[id]
}

// Len returns the number of registered records (not counting the reserved
// zero slot).
func (r *Registry[T]) Len() int { return len(r.byId) - 1 }

// All iterates every record in insertion order, skipping the reserved zero
// slot.
func (r *Registry[T]) All(yield func(id Id, key string, value T) bool) {
	for i := 1; i < len(r.byId); i++ {
		if !yield(Id(i), r.keys[i], r.byId[i]) {
			return
		}
	}
}
