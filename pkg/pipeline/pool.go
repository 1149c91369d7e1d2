package pipeline

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/semaphore"
)

// ErrPoolClosed is returned by Do after Close.
var ErrPoolClosed = errors.New("worker pool closed")

// Pool bounds how many blocking calls run at once so that storage work never
// piles up beyond the store's connection budget.
type Pool struct {
	sem  *semaphore.Weighted
	size int64

	mu     sync.RWMutex
	closed bool
}

// NewPool creates a pool admitting size concurrent calls.
func NewPool(size int) *Pool {
	if size <= 0 {
		size = 1
	}
	return &Pool{
		sem:  semaphore.NewWeighted(int64(size)),
		size: int64(size),
	}
}

// Do waits for a free slot and runs fn in it. If ctx ends while waiting, Do
// returns ctx.Err() without running fn.
func (p *Pool) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if p.isClosed() {
		return ErrPoolClosed
	}
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer p.sem.Release(1)
	if p.isClosed() {
		return ErrPoolClosed
	}
	return fn(ctx)
}

func (p *Pool) isClosed() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.closed
}

// Close refuses new calls and waits for running ones to finish.
func (p *Pool) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	_ = p.sem.Acquire(context.Background(), p.size)
	p.sem.Release(p.size)
}
