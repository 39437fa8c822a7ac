package handle

import (
	"fmt"

	"github.com/cqlbridge/cqlbridge-go/internal/xsync"
)

// Handle is an owning reference handed to the host. Zero is never issued.
type Handle uintptr

type entry[T any] struct {
	value T
	refs  int
}

// Table keeps values alive while the host holds handles to them.
// Every handle must be freed as many times as it was issued or cloned.
type Table[T any] struct {
	name    string
	release func(T)

	m       xsync.Mutex
	last    Handle
	entries map[Handle]*entry[T]
}

// NewTable creates a table. release, if not nil, is called with the value
// once its last reference is freed.
func NewTable[T any](name string, release func(T)) *Table[T] {
	return &Table[T]{
		name:    name,
		release: release,
		entries: make(map[Handle]*entry[T]),
	}
}

func (t *Table[T]) Add(v T) (h Handle) {
	t.m.WithLock(func() {
		for {
			t.last++
			if _, has := t.entries[t.last]; t.last != 0 && !has {
				break
			}
		}
		h = t.last
		t.entries[h] = &entry[T]{value: v, refs: 1}
	})

	return h
}

func (t *Table[T]) mustEntry(op string, h Handle) *entry[T] {
	e, has := t.entries[h]
	if !has {
		panic(fmt.Sprintf("cqlbridge: %s: unknown %s handle 0x%x", op, t.name, uintptr(h)))
	}

	return e
}

// Clone adds a reference to h and returns it
func (t *Table[T]) Clone(h Handle) Handle {
	t.m.WithLock(func() {
		t.mustEntry("clone", h).refs++
	})

	return h
}

// Get returns the value behind h. Unknown handles are a contract violation.
func (t *Table[T]) Get(h Handle) (v T) {
	t.m.WithLock(func() {
		v = t.mustEntry("get", h).value
	})

	return v
}

// Free drops one reference to h
func (t *Table[T]) Free(h Handle) {
	var (
		v       T
		release bool
	)
	t.m.WithLock(func() {
		e := t.mustEntry("free", h)
		e.refs--
		if e.refs == 0 {
			delete(t.entries, h)
			v, release = e.value, true
		}
	})
	if release && t.release != nil {
		t.release(v)
	}
}

func (t *Table[T]) Len() (n int) {
	t.m.WithLock(func() {
		n = len(t.entries)
	})

	return n
}
