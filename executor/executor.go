package executor

import "iter"

// Resource is an exclusive, non-goroutine-shareable handle that supports
// scoped acquisition. Acquire is called once when the owning executor's
// scope is entered and Release once on every exit path, with the error
// (if any) that caused the scope to unwind. Release must be idempotent.
//
// Exactly one worker touches a given Resource for the worker's entire
// lifetime, so implementations need no internal locking against the
// executor's own use.
type Resource interface {
	Acquire() error
	Release(err error) error
}

// TaskFunc is a unit of work bound to a resource. The executor supplies
// the resource owned by whichever worker runs the task; arg is the
// caller-side payload captured at submission time. Group multiple
// arguments into a struct.
//
// Type parameters:
//   - S: The resource type the task operates on
//   - T: The argument payload type
//   - R: The result type
type TaskFunc[S Resource, T, R any] func(resource S, arg T) (R, error)

// Executor is a policy for running resource-bound tasks: inline against
// one resource (ResourceExecutor) or asynchronously across a pool of
// resource-bound workers (ResourcePool).
//
// Acquire and Release bracket the executor's scope: Acquire enters every
// owned resource, Release shuts down any workers and then exits every
// resource regardless of earlier errors. NumWorkers reports 0 for the
// inline executor as a signal that no background execution happens.
type Executor[S Resource, T, R any] interface {
	// Submit captures fn and arg as an immutable task and arranges for
	// fn(resource, arg) to run. The pool returns a pending future
	// without blocking; the inline executor runs the task before
	// returning and surfaces its error synchronously instead of through
	// the future.
	Submit(fn TaskFunc[S, T, R], arg T) (Future[R], error)

	// Map applies fn to every element of args against the executor's
	// resources and yields results in args order. The sequence is
	// finite and consumable once: breaking out and ranging again
	// resumes after the last consumed element, it never re-runs a task.
	Map(fn TaskFunc[S, T, R], args []T) iter.Seq2[R, error]

	// NumWorkers reports the number of background workers.
	NumWorkers() int

	Acquire() error
	Release(err error) error

	// Shutdown stops background workers. For the pool, wait additionally
	// blocks until every worker goroutine has returned. Safe to call
	// more than once.
	Shutdown(wait bool) error
}
