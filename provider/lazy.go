package provider

import (
	"context"
	"sync"
)

// Lazy builds a value on first use and caches it. Construction happens at
// most once for a successful build; a failed build is not cached, so a
// later Get tries again.
type Lazy[T any] struct {
	build func(ctx context.Context) (T, error)

	mu      sync.RWMutex
	value   T
	ready   bool
	lastErr error
}

// NewLazy creates a Lazy that calls build on first Get.
func NewLazy[T any](build func(ctx context.Context) (T, error)) *Lazy[T] {
	return &Lazy[T]{build: build}
}

// Get returns the cached value, building it if needed. Concurrent callers
// block on a single build.
func (l *Lazy[T]) Get(ctx context.Context) (T, error) {
	l.mu.RLock()
	if l.ready {
		v := l.value
		l.mu.RUnlock()
		return v, nil
	}
	l.mu.RUnlock()

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring write lock
	if l.ready {
		return l.value, nil
	}

	v, err := l.build(ctx)
	if err != nil {
		l.lastErr = err
		var zero T
		return zero, err
	}
	l.value = v
	l.ready = true
	l.lastErr = nil
	return v, nil
}

// IsInitialized reports whether a value has been built.
func (l *Lazy[T]) IsInitialized() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.ready
}

// LastError returns the error from the most recent failed build, or nil.
func (l *Lazy[T]) LastError() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lastErr
}
