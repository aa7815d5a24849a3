package executor

import "time"

// Future is a handle to a task's eventual result or failure. Any number
// of goroutines may read a future; exactly one worker writes it, exactly
// once.
//
// The two implementations are ImmediateFuture, which is complete at
// construction, and the pending futures returned by ResourcePool.Submit.
// Operations that only make sense on an already-complete future (Cancel,
// Running, Err, OnDone) live on ImmediateFuture alone; pending futures
// in this package are read through Get and nothing else.
type Future[R any] interface {
	// Done reports whether the result or error has been recorded.
	Done() bool

	// Get blocks until the task completes, then returns its result or
	// re-surfaces its error in the calling goroutine.
	Get() (R, error)

	// GetWithTimeout is Get with a bounded wait. The timeout bounds only
	// the wait, not task execution; on expiry it returns
	// ErrResultTimeout and the future remains pending and waitable.
	// A timeout <= 0 waits indefinitely.
	GetWithTimeout(timeout time.Duration) (R, error)
}

// ImmediateFuture is the zero-overhead degenerate future: it carries a
// result computed before construction, so every query resolves
// synchronously. ResourceExecutor.Submit returns these. There is no
// error-carrying variant; a failed inline call surfaces its error from
// Submit itself and no future is created.
type ImmediateFuture[R any] struct {
	result R
}

// NewImmediate creates an ImmediateFuture preloaded with result.
func NewImmediate[R any](result R) *ImmediateFuture[R] {
	return &ImmediateFuture[R]{result: result}
}

// Cancel always reports false: the work already happened.
func (f *ImmediateFuture[R]) Cancel() bool { return false }

// Cancelled always reports false.
func (f *ImmediateFuture[R]) Cancelled() bool { return false }

// Running always reports false.
func (f *ImmediateFuture[R]) Running() bool { return false }

// Done always reports true.
func (f *ImmediateFuture[R]) Done() bool { return true }

// Get returns the stored result without blocking.
func (f *ImmediateFuture[R]) Get() (R, error) {
	return f.result, nil
}

// GetWithTimeout ignores the timeout and returns the stored result.
func (f *ImmediateFuture[R]) GetWithTimeout(time.Duration) (R, error) {
	return f.result, nil
}

// Err always returns nil: constructing an ImmediateFuture requires the
// wrapped call to have already succeeded.
func (f *ImmediateFuture[R]) Err() error { return nil }

// OnDone invokes fn synchronously with the future itself, exactly once,
// before returning.
func (f *ImmediateFuture[R]) OnDone(fn func(*ImmediateFuture[R])) {
	fn(f)
}
