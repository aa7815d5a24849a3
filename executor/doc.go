// Package executor provides a small, generic task-execution layer in
// which work is bound to an exclusive resource, such as an open file
// handle, rather than to an anonymous pool of interchangeable workers.
//
// Many resources are not safe to share across goroutines: file handles
// with seek positions, device handles, single-session connections. The
// executors in this package pair each worker with exactly one Resource
// for the worker's entire lifetime, so submitted tasks always run with
// that resource as their first argument, on that worker, and resource
// internals never need locking.
//
// # Executors
//
// Two executors share one Executor interface, selected at construction:
//
//   - ResourceExecutor: zero workers. Holds a single resource and runs
//     every task inline on the caller's goroutine. Use it when
//     parallelism is undesirable or resources are scarce.
//   - ResourcePool: N workers, one per resource, all draining a shared
//     FIFO work queue. Use it when the same kind of work can be spread
//     over several independent handles.
//
// # Basic Usage
//
//	handles := openHandles(path, 4) // your own Resource implementations
//	pool := NewResourcePool[*Handle, Range, []byte](handles)
//	if err := pool.Acquire(); err != nil {
//	    log.Fatal(err)
//	}
//	defer pool.Release(nil)
//
//	future, _ := pool.Submit(readRange, Range{Start: 0, Stop: 1024})
//	data, err := future.Get()
//
// # Futures
//
// Submit returns a Future[R]. For the pool the future completes on a
// worker goroutine and Get blocks until it does; GetWithTimeout bounds
// only the wait and fails with ErrResultTimeout, leaving the future
// pending and waitable again. For the single-resource executor the work
// has already happened by the time Submit returns, so the future is an
// ImmediateFuture that never blocks.
//
// Task errors cross the future boundary verbatim, so errors.Is and
// errors.As branch on the original failure. A task panic does not kill
// its worker; it is captured as a *PanicError carrying the panic value
// and the stack from the point of failure.
//
// # Ordering
//
// Submission order is the order tasks are offered to the pool, but
// completion order across workers is unspecified. Map submits eagerly
// and yields results in submission order, so it may block on an earlier
// task while a later one is already finished.
//
// # Configuration Options
//
//   - WithQueueCapacity(n): Size of the shared work queue ring
//   - WithShutdownPoll(d): Interval between sentinel re-offers at shutdown
//   - WithRateLimit(perSec, burst): Throttle task execution across workers
//   - WithLockOSThread(): Dedicate an OS thread to each worker
//   - WithCPUAffinity(): Additionally pin each worker's thread to a CPU
//   - WithTaskHooks(before, after): Observe task execution
package executor
