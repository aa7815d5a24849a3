package executor

import (
	"context"
	"runtime"
	"sync/atomic"

	"github.com/utkarsh5026/rexec/internal/cpu"
)

// Worker lifecycle states. Transitions are strictly
// Starting -> Running -> Stopping -> Stopped.
const (
	workerStarting int32 = iota
	workerRunning
	workerStopping
	workerStopped
)

// resourceWorker binds one Resource to one goroutine and one reference
// to the pool's shared work queue. It pulls one future at a time, runs
// the captured task with the owned resource prepended, fills the future
// in, and loops. A nil future is the stop sentinel: the worker stops
// permanently and is never resumed.
//
// No other component may invoke resource operations concurrently with
// this worker; the one-resource-one-worker pairing is what makes
// resource internals lock-free.
type resourceWorker[S Resource, T, R any] struct {
	id       int
	resource S
	queue    *workQueue[*taskFuture[S, T, R]]
	conf     *config
	state    atomic.Int32
}

func newResourceWorker[S Resource, T, R any](
	id int,
	resource S,
	queue *workQueue[*taskFuture[S, T, R]],
	conf *config,
) *resourceWorker[S, T, R] {
	w := &resourceWorker[S, T, R]{
		id:       id,
		resource: resource,
		queue:    queue,
		conf:     conf,
	}
	w.state.Store(workerStarting)
	return w
}

// alive reports whether the worker goroutine may still dequeue work.
// Shutdown keeps offering sentinels until no worker is alive.
func (w *resourceWorker[S, T, R]) alive() bool {
	return w.state.Load() != workerStopped
}

// run is the worker loop; it is the body of the worker's goroutine.
// ctx only gates the optional rate limiter wait, it does not cancel
// in-flight tasks.
func (w *resourceWorker[S, T, R]) run(ctx context.Context) error {
	if w.conf.lockOSThread {
		if w.conf.cpuAffinity {
			defer cpu.SetupWorkerAffinity(w.id)()
		} else {
			runtime.LockOSThread()
			defer runtime.UnlockOSThread()
		}
	}

	w.state.Store(workerRunning)
	defer w.state.Store(workerStopped)

	for {
		future, err := w.queue.Dequeue()
		if err != nil {
			// Queue closed underneath us; treated like a sentinel.
			w.state.Store(workerStopping)
			return nil
		}

		if future == nil {
			w.state.Store(workerStopping)
			return nil
		}

		if w.conf.rateLimiter != nil {
			// A pool shutting down cancels the wait; the task still runs
			// so its future never leaks a waiter.
			_ = w.conf.rateLimiter.Wait(ctx)
		}

		w.execute(future)
	}
}

// execute runs one task against the owned resource and fills its
// future. Task failures and panics are captured into the future; they
// never terminate the worker.
func (w *resourceWorker[S, T, R]) execute(future *taskFuture[S, T, R]) {
	if w.conf.beforeTask != nil {
		w.conf.beforeTask()
	}

	result, err := runWithRecovery(w.resource, future)

	if w.conf.afterTask != nil {
		w.conf.afterTask(err)
	}

	future.fill(result, err)
}

// runWithRecovery invokes the captured task, converting a panic into a
// *PanicError with the stack from the point of failure.
func runWithRecovery[S Resource, T, R any](
	resource S,
	future *taskFuture[S, T, R],
) (result R, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			err = &PanicError{Value: r, Stack: buf[:n]}
		}
	}()

	return future.fn(resource, future.arg)
}
