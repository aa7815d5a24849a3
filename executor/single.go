package executor

import "iter"

// ResourceExecutor executes tasks synchronously against one resource on
// the caller's own goroutine. It manages no workers, only the resource's
// acquisition scope. Use it when parallelism is undesirable or when a
// resource kind only supports a single handle.
//
// Unlike ResourcePool, a failing task surfaces its error from Submit
// itself rather than through the returned future: with inline execution
// the caller is right there to handle it, so deferring the error to a
// future would only obscure it.
//
// Type parameters:
//   - S: The resource type
//   - T: The task argument type
//   - R: The result type
type ResourceExecutor[S Resource, T, R any] struct {
	resource S
}

// NewResourceExecutor creates an executor around a single resource. The
// resource is not acquired until Acquire is called.
func NewResourceExecutor[S Resource, T, R any](resource S) *ResourceExecutor[S, T, R] {
	return &ResourceExecutor[S, T, R]{resource: resource}
}

// Resource returns the managed resource.
func (e *ResourceExecutor[S, T, R]) Resource() S {
	return e.resource
}

// NumWorkers always returns 0, which signals the lack of background
// execution.
func (e *ResourceExecutor[S, T, R]) NumWorkers() int {
	return 0
}

// Acquire delegates to the resource's own acquisition.
func (e *ResourceExecutor[S, T, R]) Acquire() error {
	return e.resource.Acquire()
}

// Release delegates to the resource's release, forwarding the error
// context of the exiting scope.
func (e *ResourceExecutor[S, T, R]) Release(err error) error {
	return e.resource.Release(err)
}

// Submit immediately evaluates fn(resource, arg) on the calling
// goroutine. On success the result is wrapped in an ImmediateFuture; on
// failure the error is returned synchronously and no future is created.
//
// Example:
//
//	future, err := exec.Submit(readRange, Range{Start: 0, Stop: 512})
//	if err != nil {
//	    return err // the task itself failed, inline
//	}
//	data, _ := future.Get() // never blocks
func (e *ResourceExecutor[S, T, R]) Submit(fn TaskFunc[S, T, R], arg T) (Future[R], error) {
	result, err := fn(e.resource, arg)
	if err != nil {
		return nil, err
	}
	return NewImmediate(result), nil
}

// Map lazily applies fn to each element of args against the resource,
// yielding results in order. Nothing runs until the sequence is
// consumed. The sequence is finite and not restartable: a second range
// over it resumes after the last consumed element and never re-executes
// a task.
func (e *ResourceExecutor[S, T, R]) Map(fn TaskFunc[S, T, R], args []T) iter.Seq2[R, error] {
	next := 0
	return func(yield func(R, error) bool) {
		for next < len(args) {
			arg := args[next]
			next++
			if !yield(fn(e.resource, arg)) {
				return
			}
		}
	}
}

// Shutdown is equivalent to Release. The wait flag is meaningless with
// no workers and is ignored.
func (e *ResourceExecutor[S, T, R]) Shutdown(wait bool) error {
	return e.Release(nil)
}
