package chanq

// Sender is the send capability of a channel.
//
// A Sender must not be copied by value; share it by pointer or Clone it.
type Sender[T any] struct {
	_  noCopy
	ch *channel[T]
}

func (s *Sender[T]) must(op string) *channel[T] {
	if s == nil || s.ch == nil {
		panic(invalidHandle("Sender", op))
	}
	return s.ch
}

// Send queues v and returns s so sends can be chained. It never blocks
// beyond a short lock hold, regardless of whether anyone is receiving.
func (s *Sender[T]) Send(v T) *Sender[T] {
	s.must("Send").send(v)
	return s
}

// Close marks the channel closed and wakes every blocked receiver.
// Closing an already closed channel does nothing.
func (s *Sender[T]) Close() {
	s.must("Close").close()
}

// Closed reports whether the channel has been closed.
func (s *Sender[T]) Closed() bool {
	return s.must("Closed").isClosed()
}

// Stats returns a snapshot of the channel's counters.
func (s *Sender[T]) Stats() Stats {
	return s.must("Stats").stats()
}

// Observer returns a stats reader bound to the channel rather than to s.
func (s *Sender[T]) Observer() Observer {
	return Observer{stats: s.must("Observer").stats}
}

// Move transfers the capability to a new Sender and empties s.
func (s *Sender[T]) Move() *Sender[T] {
	c := s.must("Move")
	s.ch = nil
	return &Sender[T]{ch: c}
}

// Clone returns another Sender for the same channel.
func (s *Sender[T]) Clone() *Sender[T] {
	return &Sender[T]{ch: s.must("Clone")}
}

// Valid reports whether s still holds a channel.
func (s *Sender[T]) Valid() bool {
	return s != nil && s.ch != nil
}
