package corowait

import (
	"context"
	"sync"
)

// Future is a single-shot Awaitable that completes exactly once, adapted
// from the teacher module's internal/util/future.Future: the same
// goroutine-and-closed-channel completion signal, extended with a
// context-aware Await so a Future honors a driver's cancellation the same
// way any other native awaitable would.
type Future[T any] struct {
	done chan struct{}
	once sync.Once
	val  T
	err  error
}

// NewFuture runs fn in its own goroutine and completes the returned Future
// with whatever fn returns.
func NewFuture[T any](fn func() (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		v, err := fn()
		f.complete(v, err)
	}()
	return f
}

// CompletedFuture returns an already-completed Future.
func CompletedFuture[T any](v T, err error) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	f.complete(v, err)
	return f
}

func (f *Future[T]) complete(v T, err error) {
	f.once.Do(func() {
		f.val, f.err = v, err
		close(f.done)
	})
}

// Await blocks until f completes or ctx is done, whichever comes first.
// This is the method that makes Future satisfy Awaitable[T].
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done returns a channel closed once f completes, for callers composing
// Futures with select directly instead of going through Await.
func (f *Future[T]) Done() <-chan struct{} { return f.done }
