// Package queue provides the FIFO used to pass commands and events between a
// board processor and its callers.
package queue

import "errors"

var (
	// ErrEmpty is returned by Pop when the queue holds no items.
	ErrEmpty = errors.New("queue is empty")
	// ErrFull is returned by Push when a bounded queue is at capacity.
	ErrFull = errors.New("queue is full")
)

// Queue is a FIFO backed by a ring buffer. A capacity of zero makes it unbounded.
//
// Queue is not safe for concurrent use. Each queue has one producer and one
// consumer, and callers stepping from several goroutines must synchronise externally.
type Queue[T any] struct {
	items    []T
	head     int
	size     int
	capacity int
}

// New creates a queue holding at most capacity items, or any number when capacity is 0.
func New[T any](capacity int) *Queue[T] {
	if capacity < 0 {
		capacity = 0
	}
	initial := capacity
	if initial == 0 {
		initial = 16
	}
	return &Queue[T]{
		items:    make([]T, initial),
		capacity: capacity,
	}
}

// Push appends item at the back of the queue.
func (q *Queue[T]) Push(item T) error {
	if q.capacity > 0 && q.size == q.capacity {
		return ErrFull
	}
	if q.size == len(q.items) {
		q.grow()
	}
	q.items[(q.head+q.size)%len(q.items)] = item
	q.size++
	return nil
}

// Pop removes and returns the item at the front of the queue.
func (q *Queue[T]) Pop() (T, error) {
	var zero T
	if q.size == 0 {
		return zero, ErrEmpty
	}

	item := q.items[q.head]
	// Clear the slot so the queue does not retain references.
	q.items[q.head] = zero
	q.head = (q.head + 1) % len(q.items)
	q.size--
	if q.size == 0 {
		q.head = 0
	}
	return item, nil
}

// Peek returns the item at the front without removing it.
func (q *Queue[T]) Peek() (T, error) {
	if q.size == 0 {
		var zero T
		return zero, ErrEmpty
	}
	return q.items[q.head], nil
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int {
	return q.size
}

// Cap returns the configured capacity, 0 meaning unbounded.
func (q *Queue[T]) Cap() int {
	return q.capacity
}

// Free returns how many more items Push will accept, or -1 when unbounded.
func (q *Queue[T]) Free() int {
	if q.capacity == 0 {
		return -1
	}
	return q.capacity - q.size
}

// Drain pops every queued item in FIFO order.
func (q *Queue[T]) Drain() []T {
	items := make([]T, 0, q.size)
	for q.size > 0 {
		item, _ := q.Pop()
		items = append(items, item)
	}
	return items
}

func (q *Queue[T]) grow() {
	items := make([]T, len(q.items)*2)
	for i := range q.size {
		items[i] = q.items[(q.head+i)%len(q.items)]
	}
	q.items = items
	q.head = 0
}
