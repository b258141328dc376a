// Package queue provides an unbounded MPMC FIFO queue with separate head and
// tail locks.
//
// # Layout
//
// The queue is a singly linked list that always ends in a sentinel node
// carrying no payload. Push writes its value into the current sentinel,
// links a fresh sentinel behind it and advances tail. Pop unlinks the node
// at head. The queue is empty iff head == tail.
//
// # Locking
//
//   - headMu guards head and node removal; consumers serialize on it
//   - tailMu guards tail and node insertion; producers serialize on it
//   - cond is bound to headMu and signals "data available"
//
// Consumers read tail only through getTail, which takes tailMu for the
// duration of a pointer load. Producers never hold tailMu while taking
// headMu, so there is no lock-ordering cycle.
package queue

import (
	"sync"
	"sync/atomic"

	"github.com/randomizedcoder/chanq/internal/cancel"
)

type node[T any] struct {
	data T
	next *node[T]
}

// Queue is an unbounded, concurrency-safe FIFO queue.
//
// Any number of goroutines may call Push, WaitAndPop, WaitAndPopUntil and
// TryPop concurrently. The zero value is not usable; use New.
type Queue[T any] struct {
	headMu sync.Mutex
	head   *node[T]
	cond   *sync.Cond

	tailMu sync.Mutex
	tail   *node[T]

	n atomic.Int64
}

// New creates an empty Queue holding only the sentinel node.
func New[T any]() *Queue[T] {
	sentinel := &node[T]{}
	q := &Queue[T]{
		head: sentinel,
		tail: sentinel,
	}
	q.cond = sync.NewCond(&q.headMu)
	return q
}

func (q *Queue[T]) getTail() *node[T] {
	q.tailMu.Lock()
	t := q.tail
	q.tailMu.Unlock()
	return t
}

// popHead unlinks the front node. Caller holds headMu and has checked
// head != tail.
func (q *Queue[T]) popHead() T {
	old := q.head
	q.head = old.next
	v := old.data

	// Drop references so a long-lived consumer does not pin payloads.
	var zero T
	old.data = zero
	old.next = nil

	q.n.Add(-1)
	return v
}

// Push appends v to the back of the queue and wakes one waiting consumer.
// Push never blocks beyond the tail lock hold.
func (q *Queue[T]) Push(v T) {
	sentinel := &node[T]{}

	q.tailMu.Lock()
	q.n.Add(1)
	q.tail.data = v
	q.tail.next = sentinel
	q.tail = sentinel
	q.tailMu.Unlock()

	// Signal under headMu: a consumer that saw head == tail is either still
	// holding headMu (and will see the new tail) or already parked in Wait.
	q.headMu.Lock()
	q.cond.Signal()
	q.headMu.Unlock()
}

// WaitAndPop blocks until the queue is non-empty, then removes and returns
// the front value. It blocks forever if nothing is ever pushed.
func (q *Queue[T]) WaitAndPop() T {
	q.headMu.Lock()
	defer q.headMu.Unlock()

	for q.head == q.getTail() {
		q.cond.Wait()
	}
	return q.popHead()
}

// WaitAndPopUntil is WaitAndPop with an exit: it returns false once stop is
// done and the queue is empty. Pending values are always returned before
// stop is honored.
//
// Whoever fires stop must call Wake afterwards so parked waiters re-check.
func (q *Queue[T]) WaitAndPopUntil(stop cancel.Canceler) (T, bool) {
	q.headMu.Lock()
	defer q.headMu.Unlock()

	for q.head == q.getTail() {
		if stop.Done() {
			var zero T
			return zero, false
		}
		q.cond.Wait()
	}
	return q.popHead(), true
}

// TryPop removes and returns the front value without blocking.
// Returns false if the queue is empty.
func (q *Queue[T]) TryPop() (T, bool) {
	q.headMu.Lock()
	defer q.headMu.Unlock()

	if q.head == q.getTail() {
		var zero T
		return zero, false
	}
	return q.popHead(), true
}

// Empty reports whether the queue held no values at the moment of the call.
// The answer is stale as soon as it returns; use it as a hint only.
func (q *Queue[T]) Empty() bool {
	q.headMu.Lock()
	defer q.headMu.Unlock()
	return q.head == q.getTail()
}

// Len returns the number of queued values.
// This is an approximation and may be slightly stale.
func (q *Queue[T]) Len() int {
	return int(q.n.Load())
}

// Wake wakes every goroutine parked in WaitAndPopUntil so it re-evaluates
// its stop signal.
func (q *Queue[T]) Wake() {
	q.headMu.Lock()
	q.cond.Broadcast()
	q.headMu.Unlock()
}
