// Package queue provides the bounded hand-off buffer between the sampling
// producer and the persisting consumer.
package queue

import (
	"errors"
	"sync"

	"github.com/danpilch/sampled/pkg/sampler"
)

// ErrClosed is returned by Push after Close has been called.
var ErrClosed = errors.New("sample queue is closed")

// DefaultCapacity buffers about half a minute of samples at the default
// one-second interval.
const DefaultCapacity = 30

// Queue is a bounded FIFO of samples. Push blocks while the queue is full,
// Pop blocks while it is empty and still open. Closing the queue stops new
// pushes but keeps every buffered sample poppable until the queue drains.
type Queue struct {
	mu       sync.Mutex
	notFull  *sync.Cond
	notEmpty *sync.Cond
	samples  []sampler.Sample
	capacity int
	closed   bool
}

// New creates a queue with the given capacity. Capacities below one fall
// back to DefaultCapacity.
func New(capacity int) *Queue {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	q := &Queue{capacity: capacity}
	q.notFull = sync.NewCond(&q.mu)
	q.notEmpty = sync.NewCond(&q.mu)
	return q
}

// Push appends a sample, blocking while the queue is at capacity. It
// returns ErrClosed once Close has been called, including for a producer
// that was blocked waiting for space.
func (q *Queue) Push(s sampler.Sample) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.samples) >= q.capacity && !q.closed {
		q.notFull.Wait()
	}
	if q.closed {
		return ErrClosed
	}

	q.samples = append(q.samples, s)
	q.notEmpty.Signal()
	return nil
}

// Pop removes and returns the oldest sample, blocking while the queue is
// open and empty. Once the queue is closed and drained it returns ok=false.
func (q *Queue) Pop() (sampler.Sample, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.samples) == 0 && !q.closed {
		q.notEmpty.Wait()
	}
	if len(q.samples) == 0 {
		return sampler.Sample{}, false
	}

	s := q.samples[0]
	q.samples = q.samples[1:]
	q.notFull.Signal()
	return s, true
}

// Close marks the queue closed and wakes every waiter. It is idempotent
// and never discards buffered samples.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	q.notFull.Broadcast()
	q.notEmpty.Broadcast()
}

// Len returns the number of buffered samples.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.samples)
}
