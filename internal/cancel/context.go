package cancel

import "context"

// ContextCanceler reports a context.Context's cancellation as a Canceler.
type ContextCanceler struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// NewContext creates a ContextCanceler from a parent context.
func NewContext(parent context.Context) *ContextCanceler {
	ctx, cancel := context.WithCancel(parent)
	return &ContextCanceler{
		ctx:    ctx,
		cancel: cancel,
	}
}

// Done returns true if the context has been cancelled.
//
// This performs a non-blocking select on ctx.Done().
func (c *ContextCanceler) Done() bool {
	select {
	case <-c.ctx.Done():
		return true
	default:
		return false
	}
}

// Cancel cancels the derived context. It also releases the resources
// associated with it, so callers should call it when done waiting.
func (c *ContextCanceler) Cancel() {
	c.cancel()
}

// Context returns the derived context.
func (c *ContextCanceler) Context() context.Context {
	return c.ctx
}

// Err returns the derived context's error.
func (c *ContextCanceler) Err() error {
	return c.ctx.Err()
}

// AfterFunc arranges for f to run in its own goroutine once the context is
// done. The returned stop function behaves like context.AfterFunc's.
func (c *ContextCanceler) AfterFunc(f func()) (stop func() bool) {
	return context.AfterFunc(c.ctx, f)
}
