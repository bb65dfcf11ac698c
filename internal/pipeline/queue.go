// Package pipeline wires PRE → RC → CORE → EXE on four independent
// goroutines connected by bounded FIFO queues, shut down deterministically
// on an EndOfStream sentinel (spec §2, §5).
//
// Queue is generalized from the teacher's internal/disruptor.RingBuffer:
// the fixed-size, power-of-two-capacity circular slice and the
// single-producer/single-consumer shape carry over, but the lock-free
// CAS sequencer is replaced with a mutex and two condition variables.
// Spec §5 requires only bounded, FIFO-preserving delivery with blocking
// suspension points — not wait-free progress under contention — so the
// simpler blocking form is the right generalization; the teacher's
// disruptor earns its complexity from a latency budget this spec doesn't
// set.
package pipeline

import "sync"

// Queue is a bounded, blocking FIFO of arbitrary payloads shared between
// one producer stage and one consumer stage.
type Queue struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	notFull  *sync.Cond

	buf  []any
	mask uint64
	head uint64
	tail uint64
	size uint64
}

// NewQueue creates a queue whose capacity is rounded up to the next
// power of two, mirroring the teacher's ring buffer sizing.
func NewQueue(capacity int) *Queue {
	if capacity < 1 {
		capacity = 1
	}
	cap64 := nextPowerOfTwo(uint64(capacity))
	q := &Queue{
		buf:  make([]any, cap64),
		mask: cap64 - 1,
	}
	q.notEmpty = sync.NewCond(&q.mu)
	q.notFull = sync.NewCond(&q.mu)
	return q
}

func nextPowerOfTwo(n uint64) uint64 {
	p := uint64(1)
	for p < n {
		p <<= 1
	}
	return p
}

// Put appends an item, blocking while the queue is full. This is the
// pipeline's only backpressure mechanism (spec §2).
func (q *Queue) Put(item any) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for q.size == uint64(len(q.buf)) {
		q.notFull.Wait()
	}
	q.buf[q.tail&q.mask] = item
	q.tail++
	q.size++
	q.notEmpty.Signal()
}

// Get removes and returns the oldest item, blocking while the queue is
// empty — a stage's only suspension point besides its outbound Put
// (spec §5).
func (q *Queue) Get() any {
	q.mu.Lock()
	defer q.mu.Unlock()
	for q.size == 0 {
		q.notEmpty.Wait()
	}
	item := q.buf[q.head&q.mask]
	q.buf[q.head&q.mask] = nil
	q.head++
	q.size--
	q.notFull.Signal()
	return item
}

// Len reports the current number of queued items, for queue-depth
// telemetry gauges.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return int(q.size)
}
