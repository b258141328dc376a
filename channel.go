package chanq

import (
	"context"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/randomizedcoder/chanq/internal/cancel"
	"github.com/randomizedcoder/chanq/internal/queue"
)

// channel is the state shared by every handle of one New call.
//
// The closed flag is an atomic latch and receivers wait on it through the
// queue's own condition variable: close sets the latch, then broadcasts
// under the head lock, so no receiver can miss it.
type channel[T any] struct {
	q      *queue.Queue[T]
	closed *cancel.AtomicCanceler

	name string
	log  logrus.FieldLogger

	sent      atomic.Uint64
	received  atomic.Uint64
	lateSends atomic.Uint64

	// stopCtx detaches the WithContext hook. The hook may run before New
	// stores it.
	stopCtx atomic.Pointer[func() bool]
}

// New creates a channel and returns a Sender and a Receiver bound to it.
// Further handles can only be derived from these two via Clone.
func New[T any](opts ...Option) (*Sender[T], *Receiver[T]) {
	o := buildOptions(opts)
	c := &channel[T]{
		q:      queue.New[T](),
		closed: cancel.NewAtomic(),
		name:   o.name,
		log:    o.logger.WithField("channel", o.name),
	}
	if o.ctx != nil {
		stop := context.AfterFunc(o.ctx, func() {
			c.log.WithError(context.Cause(o.ctx)).Debug("context done, closing channel")
			c.close()
		})
		c.stopCtx.Store(&stop)
	}
	return &Sender[T]{ch: c}, &Receiver[T]{ch: c}
}

func (c *channel[T]) send(v T) {
	if c.closed.Done() {
		c.lateSends.Add(1)
		c.log.Debug("send on closed channel")
	}
	c.sent.Add(1)
	c.q.Push(v)
}

func (c *channel[T]) close() {
	if c.closed.Swap() {
		return
	}
	c.q.Wake()
	if stop := c.stopCtx.Load(); stop != nil {
		(*stop)()
	}
	c.log.WithField("pending", c.q.Len()).Debug("channel closed")
}

func (c *channel[T]) isClosed() bool {
	return c.closed.Done()
}

func (c *channel[T]) recv() (T, bool) {
	v, ok := c.q.WaitAndPopUntil(c.closed)
	if ok {
		c.received.Add(1)
	}
	return v, ok
}

func (c *channel[T]) recvContext(ctx context.Context) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	done := cancel.NewContext(ctx)
	defer done.Cancel()
	stop := done.AfterFunc(c.q.Wake)
	defer stop()

	v, ok := c.q.WaitAndPopUntil(cancel.Any(c.closed, done))
	if ok {
		c.received.Add(1)
		return v, nil
	}
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	return zero, ErrClosed
}

func (c *channel[T]) tryRecv() (T, bool) {
	v, ok := c.q.TryPop()
	if ok {
		c.received.Add(1)
	}
	return v, ok
}

// noCopy lets go vet's copylocks check flag handles copied by value.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
