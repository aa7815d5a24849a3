//go:build linux

package cpu

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// pinToCore pins the current OS thread to one CPU core. Must be called
// after runtime.LockOSThread. Worker ids beyond the CPU count wrap
// around, so a pool larger than the machine still gets a valid pinning.
func pinToCore(workerID int) error {
	core := workerID % runtime.NumCPU()
	if core < 0 {
		core += runtime.NumCPU()
	}

	var mask unix.CPUSet
	mask.Zero()
	mask.Set(core)

	// 0 = current thread
	return unix.SchedSetaffinity(0, &mask)
}

// SetupWorkerAffinity locks the calling goroutine to an OS thread and
// pins that thread to a CPU core derived from workerID. The returned
// cleanup releases the thread and should be deferred by the worker.
func SetupWorkerAffinity(workerID int) func() {
	runtime.LockOSThread()
	_ = pinToCore(workerID)

	return func() {
		runtime.UnlockOSThread()
	}
}
