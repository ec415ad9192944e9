// Package async provides a single-assignment Future that can be consumed in
// callback, continuation or blocking style.
package async

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

var (
	// ErrPanicked is the rejection reason when a Go function panics.
	ErrPanicked = errors.New("async: function panicked")
	// ErrNilRejection replaces a nil error passed to reject.
	ErrNilRejection = errors.New("async: rejected without a reason")
)

// Future holds a value or an error that becomes available once.
type Future[T any] struct {
	mu      sync.Mutex
	done    chan struct{}
	settled bool
	val     T
	err     error
}

// New returns a pending Future with its resolve and reject functions. Only
// the first call to either has effect; later calls return false.
func New[T any]() (*Future[T], func(T) bool, func(error) bool) {
	f := &Future[T]{done: make(chan struct{})}
	resolve := func(v T) bool { return f.settle(v, nil) }
	reject := func(err error) bool {
		if err == nil {
			err = ErrNilRejection
		}
		var zero T
		return f.settle(zero, err)
	}
	return f, resolve, reject
}

// Resolved returns a Future already holding v.
func Resolved[T any](v T) *Future[T] {
	f, resolve, _ := New[T]()
	resolve(v)
	return f
}

// Rejected returns a Future already holding err.
func Rejected[T any](err error) *Future[T] {
	f, _, reject := New[T]()
	reject(err)
	return f
}

func (f *Future[T]) settle(v T, err error) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.settled {
		return false
	}
	f.settled = true
	f.val, f.err = v, err
	close(f.done)
	return true
}

// Go runs fn on a new goroutine and settles the Future with its result.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	f, resolve, reject := New[T]()
	go func() {
		defer func() {
			if r := recover(); r != nil {
				reject(fmt.Errorf("%w: %v", ErrPanicked, r))
			}
		}()
		v, err := fn(ctx)
		if err != nil {
			reject(err)
			return
		}
		resolve(v)
	}()
	return f
}

// After resolves with v once d has elapsed, or rejects with ctx.Err() if ctx
// ends first.
func After[T any](ctx context.Context, d time.Duration, v T) *Future[T] {
	f, resolve, reject := New[T]()
	go func() {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-t.C:
			resolve(v)
		case <-ctx.Done():
			reject(ctx.Err())
		}
	}()
	return f
}

// Callback invokes cb(v) on its own goroutine after d. cb is not called if
// ctx ends first.
func Callback[T any](ctx context.Context, d time.Duration, v T, cb func(T)) {
	After(ctx, d, v).OnComplete(func(v T, err error) {
		if err == nil {
			cb(v)
		}
	})
}

// Done is closed once the Future settles.
func (f *Future[T]) Done() <-chan struct{} { return f.done }

// Result returns the outcome without blocking. ok is false while pending.
func (f *Future[T]) Result() (v T, ok bool, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.settled {
		return v, false, nil
	}
	return f.val, true, f.err
}

// Await blocks until the Future settles or ctx ends.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		v, _, err := f.Result()
		return v, err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// OnComplete calls cb with the outcome on a new goroutine once the Future
// settles.
func (f *Future[T]) OnComplete(cb func(T, error)) {
	go func() {
		<-f.done
		v, _, err := f.Result()
		cb(v, err)
	}()
}

// Then returns a Future settled with fn applied to f's value. A rejection of
// f is passed through and fn is not called.
func Then[T, U any](f *Future[T], fn func(T) (U, error)) *Future[U] {
	next, resolve, reject := New[U]()
	f.OnComplete(func(v T, err error) {
		if err != nil {
			reject(err)
			return
		}
		defer func() {
			if r := recover(); r != nil {
				reject(fmt.Errorf("%w: %v", ErrPanicked, r))
			}
		}()
		u, err := fn(v)
		if err != nil {
			reject(err)
			return
		}
		resolve(u)
	})
	return next
}

// Catch returns a Future that recovers a rejection of f through fn.
func Catch[T any](f *Future[T], fn func(error) (T, error)) *Future[T] {
	next, resolve, reject := New[T]()
	f.OnComplete(func(v T, err error) {
		if err == nil {
			resolve(v)
			return
		}
		v, err = fn(err)
		if err != nil {
			reject(err)
			return
		}
		resolve(v)
	})
	return next
}
