package parallel

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Result is the outcome of one job.
type Result[T any] struct {
	ID       string
	Value    T
	Error    error
	Duration time.Duration
}

// WorkerPool manages concurrent job execution with bounded concurrency.
type WorkerPool[T any] struct {
	maxWorkers int
	semaphore  chan struct{}
	wg         sync.WaitGroup
	mu         sync.Mutex
	results    []Result[T]
	errors     []error
	failFast   bool
	ctx        context.Context
	cancel     context.CancelFunc
}

// NewWorkerPool creates a new worker pool with bounded concurrency.
// If maxWorkers is 0, every submitted job may run at once.
// If failFast is true, the context will be cancelled on the first error.
func NewWorkerPool[T any](ctx context.Context, maxWorkers int, failFast bool) *WorkerPool[T] {
	ctx, cancel := context.WithCancel(ctx)
	return &WorkerPool[T]{
		maxWorkers: maxWorkers,
		semaphore:  make(chan struct{}, maxWorkers),
		failFast:   failFast,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Submit schedules fn under id. It returns immediately; fn receives the
// pool's context. Jobs submitted after cancellation are dropped.
func (p *WorkerPool[T]) Submit(id string, fn func(ctx context.Context) (T, error)) {
	select {
	case <-p.ctx.Done():
		return
	default:
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		if p.maxWorkers > 0 {
			select {
			case p.semaphore <- struct{}{}:
				defer func() { <-p.semaphore }()
			case <-p.ctx.Done():
				return
			}
		}

		// A slot may free up after a fail-fast cancel.
		select {
		case <-p.ctx.Done():
			return
		default:
		}

		start := time.Now()
		value, err := fn(p.ctx)
		result := Result[T]{
			ID:       id,
			Value:    value,
			Error:    err,
			Duration: time.Since(start),
		}

		p.mu.Lock()
		defer p.mu.Unlock()

		p.results = append(p.results, result)
		if err != nil {
			p.errors = append(p.errors, fmt.Errorf("%s: %w", id, err))
			if p.failFast {
				p.cancel()
			}
		}
	}()
}

// Wait blocks until every started job has returned and reports results
// and errors in completion order. Jobs dropped by a fail-fast cancel
// appear in neither.
func (p *WorkerPool[T]) Wait() ([]Result[T], []error) {
	p.wg.Wait()
	p.mu.Lock()
	defer p.mu.Unlock()

	p.cancel()

	results := make([]Result[T], len(p.results))
	copy(results, p.results)

	errors := make([]error, len(p.errors))
	copy(errors, p.errors)

	return results, errors
}
