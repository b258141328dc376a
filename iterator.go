package chanq

import "github.com/pkg/errors"

// Iterator is a single-pass cursor over a Receiver. It always holds the
// next value already received, so creating or advancing one blocks.
type Iterator[T any] struct {
	r   *Receiver[T] // nil once exhausted
	cur T
}

// Iter returns an iterator positioned on the first value, blocking until
// one arrives or the channel is closed and drained.
func (r *Receiver[T]) Iter() *Iterator[T] {
	r.must("Iter")
	it := &Iterator[T]{r: r}
	it.fetch()
	return it
}

// End returns an exhausted iterator.
func End[T any]() *Iterator[T] {
	return &Iterator[T]{}
}

func (it *Iterator[T]) fetch() {
	for it.r != nil {
		v, ok := it.r.Recv()
		if ok {
			it.cur = v
			return
		}
		if it.r.Closed() {
			var zero T
			it.r, it.cur = nil, zero
			return
		}
		// Empty result on an open channel: retry.
	}
}

// Done reports whether the iterator is exhausted.
func (it *Iterator[T]) Done() bool {
	return it == nil || it.r == nil
}

// Value returns the current value. It panics with ErrIteratorDone if the
// iterator is exhausted.
func (it *Iterator[T]) Value() T {
	if it.Done() {
		panic(errors.WithStack(ErrIteratorDone))
	}
	return it.cur
}

// Advance drops the current value and blocks for the next one. It does
// nothing on an exhausted iterator.
func (it *Iterator[T]) Advance() {
	if it.Done() {
		return
	}
	it.fetch()
}

// Equal reports whether both iterators are exhausted. Two live iterators
// are never equal.
func (it *Iterator[T]) Equal(other *Iterator[T]) bool {
	return it.Done() && other.Done()
}
