package executor

import (
	"runtime"
	"sync/atomic"
)

const (
	// Cache line size for padding to prevent false sharing
	cacheLinePadding = 128
	// Default ring capacity for the shared work queue
	defaultQueueCapacity = 65536
	// Maximum spin attempts before yielding or sleeping
	maxSpinAttempts = 10
)

// workQueueSlot is a single slot in the ring buffer.
type workQueueSlot[E any] struct {
	// Sequence number for synchronization
	sequence uint64
	value    E
	// Padding to prevent false sharing between slots
	_ [cacheLinePadding - 16]byte
}

// workQueue is the FIFO shared by all workers of one ResourcePool: a
// lock-free multi-producer multi-consumer ring. Submitters enqueue
// concurrently; every worker dequeues one item at a time. The queue
// carries *taskFuture values, with nil serving as the stop sentinel, so
// it never interprets its elements itself.
//
// Offer order is submission order; which worker takes which item is not
// specified. A momentarily full ring makes producers spin and yield
// rather than fail, so submission never returns a "full" error.
type workQueue[E any] struct {
	ring []workQueueSlot[E]
	// Capacity mask (capacity - 1) for fast modulo
	mask uint64

	// Head and tail positions with padding to prevent false sharing
	_    [cacheLinePadding]byte
	head uint64
	_    [cacheLinePadding - 8]byte
	tail uint64
	_    [cacheLinePadding - 8]byte

	closed atomic.Bool

	// Wake-up channel for sleeping consumers (buffered, never closed)
	notifyC chan struct{}
	// Closed on Close to release sleeping consumers
	closeC chan struct{}

	capacity int
}

// newWorkQueue creates a queue with the given ring capacity, rounded up
// to a power of two. capacity <= 0 selects the default.
func newWorkQueue[E any](capacity int) *workQueue[E] {
	if capacity <= 0 {
		capacity = defaultQueueCapacity
	}

	capacity = nextPowerOfTwo(capacity)
	ring := make([]workQueueSlot[E], capacity)
	for i := range ring {
		ring[i].sequence = uint64(i)
	}

	return &workQueue[E]{
		ring:     ring,
		mask:     uint64(capacity - 1),
		capacity: capacity,
		notifyC:  make(chan struct{}, 1),
		closeC:   make(chan struct{}),
	}
}

// Enqueue appends value to the queue, spinning while the ring is full.
// Returns ErrQueueClosed if the queue has been closed.
func (q *workQueue[E]) Enqueue(value E) error {
	spinCount := 0

	for {
		if q.closed.Load() {
			return ErrQueueClosed
		}

		_, tail, slot, diff := q.load(false)
		if diff == 0 {
			if atomic.CompareAndSwapUint64(&q.tail, tail, tail+1) {
				slot.value = value
				atomic.StoreUint64(&slot.sequence, tail+1)
				select {
				case q.notifyC <- struct{}{}:
				default:
				}
				return nil
			}
			continue
		}

		spinCount++
		if spinCount > maxSpinAttempts {
			runtime.Gosched()
			spinCount = 0
		}
	}
}

// Dequeue removes and returns the oldest item, blocking while the queue
// is empty. Returns ErrQueueClosed once the queue is closed and drained.
func (q *workQueue[E]) Dequeue() (E, error) {
	var zero E
	spinCount := 0

	for {
		if q.isDrained() {
			return zero, ErrQueueClosed
		}

		head, _, slot, diff := q.load(true)
		if diff == 0 {
			if val, ok := q.take(head, slot); ok {
				return val, nil
			}
			continue
		}

		spinCount++
		if spinCount < maxSpinAttempts {
			runtime.Gosched()
			continue
		}

		select {
		case <-q.closeC:
			// Re-check: remaining items are still drained after Close.
			spinCount = 0
		case <-q.notifyC:
			spinCount = 0
		}
	}
}

// TryDequeue attempts to dequeue without blocking.
func (q *workQueue[E]) TryDequeue() (E, bool) {
	var zero E

	if q.isDrained() {
		return zero, false
	}

	head, _, slot, diff := q.load(true)
	if diff == 0 {
		return q.take(head, slot)
	}
	return zero, false
}

func (q *workQueue[E]) take(head uint64, slot *workQueueSlot[E]) (E, bool) {
	var zero E
	if atomic.CompareAndSwapUint64(&q.head, head, head+1) {
		value := slot.value
		slot.value = zero
		// Release the slot to producers: if head is N, the slot's next
		// sequence must be N + capacity.
		atomic.StoreUint64(&slot.sequence, head+q.mask+1)
		return value, true
	}
	return zero, false
}

// isDrained reports whether the queue is closed and empty.
func (q *workQueue[E]) isDrained() bool {
	if q.closed.Load() {
		head := atomic.LoadUint64(&q.head)
		tail := atomic.LoadUint64(&q.tail)
		return head >= tail
	}
	return false
}

// load atomically loads head and tail and the slot the next operation
// would touch, along with the difference between the slot's sequence and
// the expected sequence (0 means the slot is ready).
func (q *workQueue[E]) load(ishead bool) (head uint64, tail uint64, slot *workQueueSlot[E], diff int64) {
	head = atomic.LoadUint64(&q.head)
	tail = atomic.LoadUint64(&q.tail)

	pos := tail
	if ishead {
		pos = head
	}

	slot = &q.ring[pos&q.mask]
	seq := atomic.LoadUint64(&slot.sequence)

	if ishead {
		diff = int64(seq) - int64(head+1)
	} else {
		diff = int64(seq) - int64(tail)
	}

	return
}

// Len returns the approximate number of queued items.
func (q *workQueue[E]) Len() int {
	head := atomic.LoadUint64(&q.head)
	tail := atomic.LoadUint64(&q.tail)

	if tail > head {
		return int(tail - head)
	}
	return 0
}

// Cap returns the ring capacity.
func (q *workQueue[E]) Cap() int {
	return q.capacity
}

// Close marks the queue closed and releases blocked consumers. Items
// already enqueued can still be drained. Idempotent.
func (q *workQueue[E]) Close() {
	if q.closed.CompareAndSwap(false, true) {
		close(q.closeC)
	}
}

// IsClosed reports whether Close has been called.
func (q *workQueue[E]) IsClosed() bool {
	return q.closed.Load()
}
