package xsync

import (
	"sync"
)

type Map[K comparable, V any] struct {
	m sync.Map
}

func (m *Map[K, V]) Get(key K) (value V, ok bool) {
	v, ok := m.m.Load(key)
	if !ok {
		return value, false
	}
	value, ok = v.(V)

	return value, ok
}

// LoadOrStore returns the existing value for key if present, otherwise it
// stores value. loaded reports whether value was already there.
func (m *Map[K, V]) LoadOrStore(key K, value V) (actual V, loaded bool) {
	v, loaded := m.m.LoadOrStore(key, value)
	actual, _ = v.(V)

	return actual, loaded
}
