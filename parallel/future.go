package parallel

import (
	"context"

	"github.com/habiliai/parallelweb/errors"
)

// Future is the pending outcome of a call started with Go. It resolves exactly
// once; Await may be called any number of times from any goroutine.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Go runs fn on its own goroutine. Cancelling ctx aborts the work itself;
// the ctx given to Await only bounds how long the caller waits.
func Go[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				f.err = errors.Wrapf(errors.ErrTransport, "panic in async call: %v", r)
			}
		}()
		f.val, f.err = fn(ctx)
	}()
	return f
}

func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the call has returned and its deferred cleanup has run.
func (f *Future[T]) Wait() (T, error) {
	<-f.done
	return f.val, f.err
}

// Await is Wait bounded by ctx. When ctx ends first the call keeps running
// and ctx.Err() is returned; use Wait when the call was started with the
// same ctx.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
