package executor

import "time"

// taskFuture is the blocking future behind ResourcePool.Submit. It
// carries the captured task until a worker dequeues it, then the result
// or error the worker produced.
//
// Synchronization contract: only the single worker that dequeued the
// future writes the result and err slots, and it does so exactly once
// before closing done. Readers always pass through <-done (or a Done
// poll) first, so the unguarded slot reads in Get are safe.
type taskFuture[S Resource, T, R any] struct {
	fn  TaskFunc[S, T, R]
	arg T

	done   chan struct{}
	result R
	err    error
}

func newTaskFuture[S Resource, T, R any](fn TaskFunc[S, T, R], arg T) *taskFuture[S, T, R] {
	return &taskFuture[S, T, R]{
		fn:   fn,
		arg:  arg,
		done: make(chan struct{}),
	}
}

// fill records the task's outcome and signals completion. Worker-only;
// called exactly once per future.
func (f *taskFuture[S, T, R]) fill(result R, err error) {
	f.result = result
	f.err = err
	close(f.done)
}

func (f *taskFuture[S, T, R]) Done() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Get blocks until the owning worker fills the future, then returns the
// result or re-surfaces the captured error verbatim.
func (f *taskFuture[S, T, R]) Get() (R, error) {
	<-f.done
	if f.err != nil {
		var zero R
		return zero, f.err
	}
	return f.result, nil
}

// GetWithTimeout bounds only the wait. On expiry the future is left
// pending; the task still runs to completion and a later Get observes
// the real outcome.
func (f *taskFuture[S, T, R]) GetWithTimeout(timeout time.Duration) (R, error) {
	if timeout <= 0 {
		return f.Get()
	}

	select {
	case <-f.done:
		return f.Get()
	case <-time.After(timeout):
		var zero R
		return zero, ErrResultTimeout
	}
}
