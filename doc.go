// Package chanq provides an unbounded, in-process MPMC message channel split
// into a send capability and a receive capability.
//
//	tx, rx := chanq.New[int]()
//	go func() {
//		tx.Send(1).Send(2).Send(3)
//		tx.Close()
//	}()
//	for v := range rx.All() {
//		fmt.Println(v)
//	}
//
// # Handles
//
// New is the only way to obtain a Sender and a Receiver. Both are thin
// handles onto one shared channel. A handle can be transferred with Move,
// which leaves the source empty; any later call on the source panics with
// an error wrapping ErrInvalidHandle. Clone yields an additional handle of
// the same kind for fan-in or fan-out. A single handle value must not be
// used from several goroutines at once, but any number of distinct handles
// may use the same channel concurrently.
//
// # Closing
//
// Close is one-way and idempotent. Blocked receivers are woken by Close and
// see the remaining values first; once the channel is closed and drained,
// Recv returns false and iteration ends.
//
// Sending after Close is accepted: the value is queued and delivered to any
// receiver still draining. Such sends are counted in Stats.LateSends.
//
// # Blocking
//
// Recv blocks without a timeout. Use RecvContext for a cancellable receive,
// TryRecv for a non-blocking one, or WithContext to close the channel when
// a context ends.
package chanq
