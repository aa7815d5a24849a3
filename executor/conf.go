package executor

import (
	"time"

	"golang.org/x/time/rate"
)

// Option is a functional option for configuring a ResourcePool.
type Option func(*config)

type config struct {
	queueCapacity int
	shutdownPoll  time.Duration
	rateLimiter   *rate.Limiter
	lockOSThread  bool
	cpuAffinity   bool

	beforeTask func()
	afterTask  func(error)
}

func defaultConfig() *config {
	return &config{
		queueCapacity: defaultQueueCapacity,
		shutdownPoll:  time.Millisecond,
	}
}

// WithQueueCapacity sets the ring capacity of the shared work queue,
// rounded up to a power of two. A smaller ring bounds memory; producers
// spin instead of failing when it is momentarily full.
// If not specified, defaults to 65536.
func WithQueueCapacity(capacity int) Option {
	return func(cfg *config) {
		if capacity > 0 {
			cfg.queueCapacity = capacity
		}
	}
}

// WithShutdownPoll sets the pause between rounds of sentinel offers
// during Shutdown. Any worker may consume any sentinel, so Shutdown
// re-offers each round until no workers remain alive.
// If not specified, defaults to 1ms.
func WithShutdownPoll(interval time.Duration) Option {
	return func(cfg *config) {
		if interval > 0 {
			cfg.shutdownPoll = interval
		}
	}
}

// WithRateLimit throttles task execution across all workers of the pool.
// tasksPerSecond is the sustained rate, burst the momentary excess.
// This is useful when the resources front an external service that must
// not be overwhelmed. If not specified, no rate limiting is applied.
func WithRateLimit(tasksPerSecond float64, burst int) Option {
	return func(cfg *config) {
		if tasksPerSecond > 0 && burst > 0 {
			cfg.rateLimiter = rate.NewLimiter(rate.Limit(tasksPerSecond), burst)
		}
	}
}

// WithLockOSThread dedicates an OS thread to each worker goroutine for
// the worker's lifetime. Use it when the resource relies on thread-local
// state (some C libraries, ioctl-heavy device handles).
func WithLockOSThread() Option {
	return func(cfg *config) {
		cfg.lockOSThread = true
	}
}

// WithCPUAffinity locks each worker to an OS thread and additionally
// pins that thread to a CPU core (Linux and Windows; a no-op pin on
// macOS). Implies WithLockOSThread.
func WithCPUAffinity() Option {
	return func(cfg *config) {
		cfg.lockOSThread = true
		cfg.cpuAffinity = true
	}
}

// WithTaskHooks installs observation hooks: before runs on the worker
// goroutine just before each task, after runs just after with the
// task's error (nil on success). Hooks must be safe for concurrent use
// when the pool has more than one worker. Either may be nil.
func WithTaskHooks(before func(), after func(error)) Option {
	return func(cfg *config) {
		cfg.beforeTask = before
		cfg.afterTask = after
	}
}
