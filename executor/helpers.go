package executor

import (
	"errors"
	"time"
)

var (
	// ErrShutdownTimeout reports that workers did not finish within the
	// wait bound passed to waitUntil.
	ErrShutdownTimeout = errors.New("error in shutting down: timeout reached")
)

// waitUntil blocks until either the done channel is closed or the timeout
// is reached. A timeout <= 0 waits forever.
func waitUntil(d <-chan struct{}, timeout time.Duration) error {
	if timeout <= 0 {
		<-d
		return nil
	}

	select {
	case <-d:
		return nil
	case <-time.After(timeout):
		return ErrShutdownTimeout
	}
}

// nextPowerOfTwo returns the next power of 2 >= n
func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}

	if n&(n-1) == 0 {
		return n
	}

	power := 1
	for power < n {
		power *= 2
	}
	return power
}
