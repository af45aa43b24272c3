package provider

import (
	"context"
	"sync"
	"sync/atomic"
)

// Iterator provides pull-based sequential access to a stream of values.
// The consumer calls Next to retrieve values one at a time and Close to
// abandon the stream early. Iterators are single-use and not restartable.
type Iterator[T any] interface {
	// Next returns the next value. Returns (zero, false, nil) when exhausted.
	Next(ctx context.Context) (T, bool, error)
	// Close releases any resources held by the iterator. It is safe to call
	// more than once and after the iterator has been exhausted.
	Close() error
}

// NewIterator builds an Iterator from a next function and an optional
// closer. The closer runs exactly once: when next reports exhaustion, when
// next fails, or when Close is called, whichever happens first. After that
// Next keeps returning (zero, false, nil).
func NewIterator[T any](next func(ctx context.Context) (T, bool, error), closer func() error) Iterator[T] {
	return &funcIterator[T]{next: next, closer: closer}
}

type funcIterator[T any] struct {
	next   func(ctx context.Context) (T, bool, error)
	closer func() error

	once     sync.Once
	done     atomic.Bool
	closeErr error
}

func (it *funcIterator[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if it.done.Load() {
		return zero, false, nil
	}

	v, ok, err := it.next(ctx)
	if err != nil {
		_ = it.finish()
		return zero, false, err
	}
	if !ok {
		return zero, false, it.finish()
	}
	return v, true, nil
}

// Close may be called from another goroutine to unblock a pending Next.
func (it *funcIterator[T]) Close() error {
	return it.finish()
}

func (it *funcIterator[T]) finish() error {
	it.once.Do(func() {
		it.done.Store(true)
		if it.closer != nil {
			it.closeErr = it.closer()
		}
	})
	return it.closeErr
}

// FromSlice returns an Iterator over items.
func FromSlice[T any](items []T) Iterator[T] {
	pos := 0
	return NewIterator(func(context.Context) (T, bool, error) {
		var zero T
		if pos >= len(items) {
			return zero, false, nil
		}
		v := items[pos]
		pos++
		return v, true, nil
	}, nil)
}

// Filter returns an Iterator yielding only the values of src for which keep
// returns true, in their original order. Closing the result closes src.
func Filter[T any](src Iterator[T], keep func(T) bool) Iterator[T] {
	return NewIterator(func(ctx context.Context) (T, bool, error) {
		for {
			v, ok, err := src.Next(ctx)
			if err != nil || !ok {
				return v, ok, err
			}
			if keep(v) {
				return v, true, nil
			}
		}
	}, src.Close)
}

// Collect drains it into a slice and closes it. Values read before an error
// are returned together with the error.
func Collect[T any](ctx context.Context, it Iterator[T]) ([]T, error) {
	defer it.Close()

	var out []T
	for {
		v, ok, err := it.Next(ctx)
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, v)
	}
}
