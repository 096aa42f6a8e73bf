// Package async holds helpers for request/response flows that may be
// superseded before they finish.
package async

import (
	"context"
	"errors"
	"sync"
)

// ErrStale is returned to a caller whose request was overtaken by a newer one.
var ErrStale = errors.New("async: result superseded by a newer request")

// Latest runs fetches one generation at a time. Starting a new fetch cancels
// the previous one, and any result that arrives for an older generation is
// discarded with ErrStale.
type Latest[T any] struct {
	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

func (l *Latest[T]) Do(ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	return l.Run(ctx, fn, nil)
}

// Run is Do with a commit step. commit receives a successful result while
// its generation is still the newest, so a newer request cannot finish in
// between and be overwritten.
func (l *Latest[T]) Run(ctx context.Context, fn func(context.Context) (T, error), commit func(T)) (T, error) {
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	l.gen++
	gen := l.gen
	runCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.mu.Unlock()

	v, err := fn(runCtx)

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.gen {
		var zero T
		return zero, ErrStale
	}
	cancel()
	l.cancel = nil
	if err == nil && commit != nil {
		commit(v)
	}
	return v, err
}

// Stop cancels the in-flight fetch, if any, and makes its result stale.
func (l *Latest[T]) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.gen++
}
