// Package cancel provides one-way stop signals used by blocking receives.
//
// This package offers two implementations of the Canceler interface:
//   - AtomicCanceler: a latch backed by atomic.Bool, used as a channel's
//     closed flag
//   - ContextCanceler: a signal derived from a context.Context, used by
//     cancellable receives
//
// Any combines several signals so a waiter can stop on whichever fires first.
package cancel

// Canceler provides a one-way stop signal to waiters.
//
// Implementations must be safe for concurrent use:
//   - Multiple goroutines may call Done() concurrently
//   - Cancel() may be called concurrently with Done()
//
// Once Done() reports true it never reports false again.
type Canceler interface {
	// Done returns true if the signal has fired.
	Done() bool

	// Cancel fires the signal. Safe to call multiple times.
	Cancel()
}

type anyOf []Canceler

// Any returns a Canceler that is done as soon as any of cs is done.
// Cancel on the result fires every member.
func Any(cs ...Canceler) Canceler {
	return anyOf(cs)
}

func (a anyOf) Done() bool {
	for _, c := range a {
		if c.Done() {
			return true
		}
	}
	return false
}

func (a anyOf) Cancel() {
	for _, c := range a {
		c.Cancel()
	}
}
