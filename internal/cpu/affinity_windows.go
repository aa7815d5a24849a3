//go:build windows

package cpu

import (
	"runtime"
	"syscall"
)

var (
	kernel32              = syscall.NewLazyDLL("kernel32.dll")
	setThreadAffinityMask = kernel32.NewProc("SetThreadAffinityMask")
	getCurrentThread      = kernel32.NewProc("GetCurrentThread")
)

// pinToCore pins the current OS thread to one CPU core. Must be called
// after runtime.LockOSThread. Worker ids beyond the CPU count wrap.
func pinToCore(workerID int) error {
	core := workerID % runtime.NumCPU()
	if core < 0 {
		core += runtime.NumCPU()
	}

	handle, _, _ := getCurrentThread.Call()

	// Bit N of the mask = CPU N.
	mask := uintptr(1) << core
	prev, _, err := setThreadAffinityMask.Call(handle, mask)
	if prev == 0 {
		return err
	}
	return nil
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
