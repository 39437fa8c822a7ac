package xsync

import (
	"sync"
)

type Mutex struct { //nolint:gocritic
	sync.Mutex
}

func (l *Mutex) WithLock(f func()) {
	l.Lock()
	defer l.Unlock()

	f()
}

// WithLock runs f under l and returns its results. l is released on every
// exit path of f, including a panic.
func WithLock[T any](l sync.Locker, f func() (T, error)) (T, error) {
	l.Lock()
	defer l.Unlock()

	return f()
}

type RWMutex struct { //nolint:gocritic
	sync.RWMutex
}

func (l *RWMutex) WithLock(f func()) {
	l.Lock()
	defer l.Unlock()

	f()
}

func (l *RWMutex) WithRLock(f func()) {
	l.RLock()
	defer l.RUnlock()

	f()
}
