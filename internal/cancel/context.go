package cancel

import "context"

// ContextCanceler is a stop signal tied to a context.Context.
//
// Cancelling the parent context raises the signal as well, which lets a
// caller bound the lifetime of a queue's combiner by a request or process
// context. Done() is a non-blocking select on ctx.Done().
type ContextCanceler struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// NewContext creates a ContextCanceler from a parent context.
// A nil parent is treated as context.Background().
func NewContext(parent context.Context) *ContextCanceler {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	return &ContextCanceler{
		ctx:    ctx,
		cancel: cancel,
	}
}

// Done returns true if Cancel was called or the parent context ended.
func (c *ContextCanceler) Done() bool {
	select {
	case <-c.ctx.Done():
		return true
	default:
		return false
	}
}

// Cancel cancels the derived context.
func (c *ContextCanceler) Cancel() {
	c.cancel()
}

// Context returns the derived context, for passing to blocking calls that
// should end together with the signal.
func (c *ContextCanceler) Context() context.Context {
	return c.ctx
}

// Err returns the reason the signal was raised, or nil while it is not.
func (c *ContextCanceler) Err() error {
	return c.ctx.Err()
}
