package executor

import (
	"errors"
	"fmt"
)

var (
	// ErrResultTimeout is returned by Future.GetWithTimeout when the wait
	// expires before the task completes. The future is left pending; a
	// later Get or GetWithTimeout still observes the eventual outcome.
	ErrResultTimeout = errors.New("timed out waiting for result")

	// ErrShutdown is returned by Submit after the pool has been shut down.
	ErrShutdown = errors.New("executor shut down")

	// ErrQueueClosed is returned by work queue operations after Close.
	ErrQueueClosed = errors.New("queue is closed")
)

// PanicError is how a panic inside a submitted task reaches the caller of
// Future.Get. The worker that ran the task recovers the panic, records the
// value and the stack from the point of failure, and keeps serving the
// queue. Use errors.As to detect it and inspect Value for the original
// panic payload (a runtime.Error for runtime faults such as division by
// zero).
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("task panic: %v\nstack trace:\n%s", e.Value, e.Stack)
}

// Unwrap exposes the panic value when it was itself an error, so
// errors.Is can branch on the original failure kind.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
