// Package kesit provides the execution context for sectioned, parameterized tests.
package kesit

import (
	"context"
	"slices"

	"github.com/google/uuid"
)

// Logger is the interface for structured logging within test bodies.
// Compatible with *slog.Logger and other structured loggers.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// T is the part of testing.TB used by test bodies and the runner.
// *testing.T satisfies it, and it satisfies require.TestingT.
type T interface {
	Helper()
	Errorf(format string, args ...any)
	FailNow()
	Failed() bool
	Logf(format string, args ...any)
	Name() string
}

// Context is handed to every kesit test body. It carries the execution path of
// the generated case and decides which sections run.
type Context struct {
	ctx    context.Context
	t      T
	logger Logger
	hooks  *HookExecutor
	id     string
	test   string
	path   Path
	gate   Gate
	next   int
	trail  []string
}

// New creates a new Context with the given options. Without a path or gate the
// context runs every section.
func New(opts ...Option) *Context {
	c := &Context{
		ctx: context.Background(),
		id:  uuid.NewString(),
	}
	for _, opt := range opts {
		opt(c)
	}
	// Set defaults if not provided
	if c.logger == nil {
		c.logger = &noopLogger{}
	}
	if c.t == nil {
		c.t = &panicT{}
	}
	if c.hooks == nil {
		c.hooks = NewHookExecutor()
	}
	if c.gate == nil {
		c.gate = NewCountingGate(c.path)
	}
	return c
}

// Section runs body when the gate of this context enables the next section.
// Sections must be declared unconditionally, in the same order on every run.
func (c *Context) Section(name string, body func(ctx *Context)) {
	index := c.next
	c.next++
	if !c.gate.EnabledOrEnter(index) {
		c.logger.Debug("section skipped", "test", c.test, "section", name, "index", index)
		return
	}

	child := &Context{
		ctx:    c.ctx,
		t:      c.t,
		logger: c.logger,
		hooks:  c.hooks,
		id:     c.id,
		test:   c.test,
		path:   c.path,
		gate:   c.gate.Child(index),
		trail:  append(slices.Clone(c.trail), name),
	}
	info := SectionInfo{
		Test:  c.test,
		Name:  name,
		Index: index,
		Trail: slices.Clone(child.trail),
	}

	c.logger.Debug("section entered", "test", c.test, "section", name, "index", index)
	c.hooks.ExecuteBeforeSection(info)
	defer c.hooks.ExecuteAfterSection(info)
	body(child)
}

// Context returns the underlying context.Context for library compatibility.
func (c *Context) Context() context.Context {
	return c.ctx
}

// WithContext updates the underlying context.Context.
// Use this for timeouts, cancellation, or storing values in the standard context.
func (c *Context) WithContext(ctx context.Context) {
	c.ctx = ctx
}

// Logger returns the logger instance.
func (c *Context) Logger() Logger {
	return c.logger
}

// T returns the test handle of the generated case.
func (c *Context) T() T {
	return c.t
}

// ID identifies one run of one generated case.
func (c *Context) ID() string {
	return c.id
}

// Test is the name of the kesit test being run.
func (c *Context) Test() string {
	return c.test
}

// Path is the execution path of the generated case.
func (c *Context) Path() Path {
	return slices.Clone(c.path)
}

// Trail lists the names of the sections entered to reach this context.
func (c *Context) Trail() []string {
	return slices.Clone(c.trail)
}

// NewNoopLogger returns a logger that discards all messages.
func NewNoopLogger() Logger {
	return &noopLogger{}
}

type noopLogger struct{}

func (n *noopLogger) Debug(msg string, args ...any) {}
func (n *noopLogger) Info(msg string, args ...any)  {}
func (n *noopLogger) Warn(msg string, args ...any)  {}
func (n *noopLogger) Error(msg string, args ...any) {}

// panicT panics on test failure. It stands in when no testing.T is attached.
type panicT struct {
	failed bool
}

func (p *panicT) Errorf(format string, args ...any) {
	p.failed = true
	panic("test failed: " + format)
}

func (p *panicT) FailNow() {
	p.failed = true
	panic("test failed")
}

func (p *panicT) Helper()                         {}
func (p *panicT) Failed() bool                    { return p.failed }
func (p *panicT) Logf(format string, args ...any) {}
func (p *panicT) Name() string                    { return "" }
