package cancel

import "sync/atomic"

// AtomicCanceler uses an atomic.Bool as a one-way latch.
//
// Each call to Done() performs a single atomic load, so it can be polled
// from inside a condition-variable predicate without taking another lock.
type AtomicCanceler struct {
	done atomic.Bool
}

// NewAtomic creates a new AtomicCanceler.
func NewAtomic() *AtomicCanceler {
	return &AtomicCanceler{}
}

// Done returns true if Cancel has been called.
func (a *AtomicCanceler) Done() bool {
	return a.done.Load()
}

// Cancel sets the latch.
//
// Safe to call multiple times; subsequent calls are no-ops.
func (a *AtomicCanceler) Cancel() {
	a.done.Store(true)
}

// Swap sets the latch and reports whether it was already set.
// Exactly one concurrent caller observes false.
func (a *AtomicCanceler) Swap() bool {
	return a.done.Swap(true)
}
