package kesit

import (
	"context"
	"slices"
)

// Option configures a Context.
type Option func(*Context)

// WithLogger sets the logger for the context.
func WithLogger(logger Logger) Option {
	return func(c *Context) {
		c.logger = logger
	}
}

// WithContext sets the underlying context.Context.
func WithContext(ctx context.Context) Option {
	return func(c *Context) {
		c.ctx = ctx
	}
}

// WithTestingT sets the T interface (typically *testing.T).
// Without it failures panic.
func WithTestingT(t T) Option {
	return func(c *Context) {
		c.t = t
	}
}

// WithHooks sets the executor notified when sections are entered and left.
func WithHooks(hooks *HookExecutor) Option {
	return func(c *Context) {
		c.hooks = hooks
	}
}

// WithTest names the kesit test the context belongs to.
func WithTest(name string) Option {
	return func(c *Context) {
		c.test = name
	}
}

// WithPath installs the execution path of a generated case. The path is gated
// by a CountingGate unless WithGate is also given.
func WithPath(path Path) Option {
	return func(c *Context) {
		c.path = slices.Clone(path)
	}
}

// WithGate replaces the gate built from the path.
func WithGate(gate Gate) Option {
	return func(c *Context) {
		c.gate = gate
	}
}
