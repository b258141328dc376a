package chanq

// Stats is a point-in-time snapshot of a channel's counters. Fields are
// read independently, so under concurrent traffic they need not add up
// exactly.
type Stats struct {
	Name      string
	Sent      uint64
	Received  uint64
	LateSends uint64 // sends accepted after Close
	Pending   int
	Closed    bool
}

// Observer reads a channel's Stats independently of any handle. Moving or
// discarding the handle it came from does not invalidate it.
type Observer struct {
	stats func() Stats
}

// Stats returns a snapshot of the observed channel's counters.
func (o Observer) Stats() Stats {
	return o.stats()
}

func (c *channel[T]) stats() Stats {
	return Stats{
		Name:      c.name,
		Sent:      c.sent.Load(),
		Received:  c.received.Load(),
		LateSends: c.lateSends.Load(),
		Pending:   c.q.Len(),
		Closed:    c.closed.Done(),
	}
}
