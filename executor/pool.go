package executor

import (
	"context"
	"errors"
	"iter"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// ResourcePool owns N resource-bound workers and one shared FIFO work
// queue. Each worker is permanently paired with one of the resources
// handed to NewResourcePool; a submitted task runs with whichever
// worker's resource on whichever worker drains it next.
//
// Workers are started at construction and joined at shutdown. The pool
// aggregates ownership of every resource/worker pair and releases all
// resources when its scope exits, even when a prior error occurred.
//
// Type parameters:
//   - S: The resource type, one instance per worker
//   - T: The task argument type
//   - R: The result type
type ResourcePool[S Resource, T, R any] struct {
	conf    *config
	queue   *workQueue[*taskFuture[S, T, R]]
	workers []*resourceWorker[S, T, R]

	cancel   context.CancelFunc
	done     chan struct{} // Closed when all worker goroutines have returned
	shutdown atomic.Bool
}

// NewResourcePool creates a pool with one worker per resource and starts
// the workers immediately. The resources themselves are not acquired
// until Acquire is called.
//
// Example:
//
//	pool := NewResourcePool[*FileHandle, Range, []byte](handles,
//	    WithQueueCapacity(1024),
//	)
//	if err := pool.Acquire(); err != nil {
//	    log.Fatal(err)
//	}
//	defer pool.Release(nil)
func NewResourcePool[S Resource, T, R any](resources []S, opts ...Option) *ResourcePool[S, T, R] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &ResourcePool[S, T, R]{
		conf:   cfg,
		queue:  newWorkQueue[*taskFuture[S, T, R]](cfg.queueCapacity),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	var g errgroup.Group
	for i, resource := range resources {
		w := newResourceWorker(i, resource, p.queue, cfg)
		p.workers = append(p.workers, w)
		g.Go(func() error {
			return w.run(ctx)
		})
	}

	go func() {
		_ = g.Wait()
		close(p.done)
	}()

	return p
}

// NumWorkers returns the number of workers (and resources) in the pool.
func (p *ResourcePool[S, T, R]) NumWorkers() int {
	return len(p.workers)
}

// AliveWorkers returns the number of workers that have not yet reached
// their terminal state. It converges to zero after Shutdown.
func (p *ResourcePool[S, T, R]) AliveWorkers() int {
	alive := 0
	for _, w := range p.workers {
		if w.alive() {
			alive++
		}
	}
	return alive
}

// Acquire enters every resource's acquisition scope. If one fails, the
// resources already acquired are released again (with the failure as
// their error context) and the failure is returned.
func (p *ResourcePool[S, T, R]) Acquire() error {
	for i, w := range p.workers {
		if err := w.resource.Acquire(); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = p.workers[j].resource.Release(err)
			}
			return err
		}
	}
	return nil
}

// Release shuts the pool down and then releases every resource,
// forwarding err as the release context. Every resource is released
// regardless of failures along the way; the errors are joined.
func (p *ResourcePool[S, T, R]) Release(err error) error {
	errs := []error{p.Shutdown(true)}
	for _, w := range p.workers {
		errs = append(errs, w.resource.Release(err))
	}
	return errors.Join(errs...)
}

// Submit wraps fn and arg into a future, appends it to the shared
// queue, and returns without blocking. The queue preserves
// submission-order fairness across workers; completion order across
// workers is unspecified. After Shutdown, Submit fails with ErrShutdown.
//
// Example:
//
//	future, err := pool.Submit(readRange, Range{Start: 0, Stop: 1024})
//	if err != nil {
//	    return err
//	}
//	data, err := future.Get() // blocks until a worker fills it
func (p *ResourcePool[S, T, R]) Submit(fn TaskFunc[S, T, R], arg T) (Future[R], error) {
	if p.shutdown.Load() {
		return nil, ErrShutdown
	}

	future := newTaskFuture(fn, arg)
	if err := p.queue.Enqueue(future); err != nil {
		return nil, ErrShutdown
	}
	return future, nil
}

// Map submits one task per element of args eagerly, then yields each
// future's blocking result in args order. Because results are requested
// in submission order, Map may block on an earlier task while a later
// one is already finished. The sequence is finite and not restartable: a
// second range resumes after the last consumed element and never
// resubmits.
func (p *ResourcePool[S, T, R]) Map(fn TaskFunc[S, T, R], args []T) iter.Seq2[R, error] {
	futures := make([]*taskFuture[S, T, R], 0, len(args))
	var submitErr error
	for _, arg := range args {
		future, err := p.Submit(fn, arg)
		if err != nil {
			submitErr = err
			break
		}
		futures = append(futures, future.(*taskFuture[S, T, R]))
	}

	next := 0
	return func(yield func(R, error) bool) {
		for next < len(futures) {
			result, err := futures[next].Get()
			next++
			if !yield(result, err) {
				return
			}
		}
		if submitErr != nil {
			err := submitErr
			submitErr = nil
			var zero R
			yield(zero, err)
		}
	}
}

// Shutdown stops all workers deterministically. It repeatedly offers one
// nil sentinel per still-alive worker and pauses briefly, until no
// workers remain alive: any worker may consume any sentinel, so a single
// round is not guaranteed to reach every worker. Tasks already queued
// are drained before their worker sees a sentinel, so every future
// submitted before Shutdown completes.
//
// A second call is a safe no-op; with wait it still blocks until the
// first shutdown has fully converged. wait additionally waits for the
// worker goroutines themselves to return.
func (p *ResourcePool[S, T, R]) Shutdown(wait bool) error {
	if !p.shutdown.CompareAndSwap(false, true) {
		if wait {
			return waitUntil(p.done, 0)
		}
		return nil
	}

	p.cancel()

	for {
		alive := p.AliveWorkers()
		if alive == 0 {
			break
		}
		for range alive {
			if err := p.queue.Enqueue(nil); err != nil {
				break
			}
		}
		time.Sleep(p.conf.shutdownPoll)
	}
	p.queue.Close()

	if wait {
		return waitUntil(p.done, 0)
	}
	return nil
}
