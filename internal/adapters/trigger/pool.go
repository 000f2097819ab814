// Package trigger implements the HTTP and SDK invocation entry points of deployed functions.
package trigger

import (
	"context"
	"sync"

	"github.com/alitto/pond"
	"go.trai.ch/faasbench/internal/core/domain"
	"go.trai.ch/zerr"
)

// DefaultWorkers is the number of concurrent asynchronous invocations per session.
const DefaultWorkers = 32

var errPoolClosed = zerr.New("invocation pool is closed")

// Pool runs asynchronous invocations on a bounded set of workers.
type Pool struct {
	mu     sync.Mutex
	pool   *pond.WorkerPool
	closed bool
}

// NewPool creates a pool with the given number of workers.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Pool{pool: pond.New(workers, 0, pond.MinWorkers(workers))}
}

// Submit schedules fn and returns a handle on its result.
func (p *Pool) Submit(ctx context.Context, fn func(context.Context) (domain.ExecutionResult, error)) domain.Invocation {
	inv := &invocation{done: make(chan struct{})}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		inv.finish(domain.ExecutionResult{}, errPoolClosed)
		return inv
	}
	p.pool.Submit(func() {
		inv.finish(fn(ctx))
	})
	return inv
}

// Close waits for running invocations and rejects new ones.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	p.pool.StopAndWait()
}

type invocation struct {
	done   chan struct{}
	result domain.ExecutionResult
	err    error
}

func (i *invocation) finish(result domain.ExecutionResult, err error) {
	i.result, i.err = result, err
	close(i.done)
}

// Wait implements domain.Invocation.
func (i *invocation) Wait(ctx context.Context) (domain.ExecutionResult, error) {
	select {
	case <-ctx.Done():
		return domain.ExecutionResult{}, ctx.Err()
	case <-i.done:
		return i.result, i.err
	}
}
