package chanq

import (
	"context"
	"iter"
)

// Receiver is the receive capability of a channel.
//
// A Receiver must not be copied by value; share it by pointer or Clone it.
type Receiver[T any] struct {
	_  noCopy
	ch *channel[T]
}

func (r *Receiver[T]) must(op string) *channel[T] {
	if r == nil || r.ch == nil {
		panic(invalidHandle("Receiver", op))
	}
	return r.ch
}

// Recv blocks until a value is available or the channel is closed and
// drained. The boolean is false only in the latter case.
func (r *Receiver[T]) Recv() (T, bool) {
	return r.must("Recv").recv()
}

// RecvContext is Recv bounded by ctx. It returns ctx.Err() if ctx ends
// first and ErrClosed once the channel is closed and drained.
func (r *Receiver[T]) RecvContext(ctx context.Context) (T, error) {
	return r.must("RecvContext").recvContext(ctx)
}

// TryRecv returns the front value without blocking; false means nothing
// was queued.
func (r *Receiver[T]) TryRecv() (T, bool) {
	return r.must("TryRecv").tryRecv()
}

// Closed reports whether the channel has been closed. Values may still be
// queued.
func (r *Receiver[T]) Closed() bool {
	return r.must("Closed").isClosed()
}

// Len returns the approximate number of queued values.
func (r *Receiver[T]) Len() int {
	return r.must("Len").q.Len()
}

// Empty reports whether nothing is queued. The result is only a hint.
func (r *Receiver[T]) Empty() bool {
	return r.must("Empty").q.Empty()
}

// Stats returns a snapshot of the channel's counters.
func (r *Receiver[T]) Stats() Stats {
	return r.must("Stats").stats()
}

// Observer returns a stats reader bound to the channel rather than to r.
func (r *Receiver[T]) Observer() Observer {
	return Observer{stats: r.must("Observer").stats}
}

// Move transfers the capability to a new Receiver and empties r.
func (r *Receiver[T]) Move() *Receiver[T] {
	c := r.must("Move")
	r.ch = nil
	return &Receiver[T]{ch: c}
}

// Clone returns another Receiver for the same channel. Each value is
// delivered to exactly one of the channel's receivers.
func (r *Receiver[T]) Clone() *Receiver[T] {
	return &Receiver[T]{ch: r.must("Clone")}
}

// Valid reports whether r still holds a channel.
func (r *Receiver[T]) Valid() bool {
	return r != nil && r.ch != nil
}

// All returns a sequence of received values. Ranging over it blocks like
// Recv and stops once the channel is closed and drained. Each range
// receives from the channel; values consumed by an earlier range are gone.
func (r *Receiver[T]) All() iter.Seq[T] {
	r.must("All")
	return func(yield func(T) bool) {
		for it := r.Iter(); !it.Done(); it.Advance() {
			if !yield(it.Value()) {
				return
			}
		}
	}
}
