package kesit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// mockLogger is a mock implementation of Logger for testing
type mockLogger struct {
	debugMessages []string
	infoMessages  []string
	warnMessages  []string
	errorMessages []string
}

func (m *mockLogger) Debug(msg string, args ...any) {
	m.debugMessages = append(m.debugMessages, msg)
}

func (m *mockLogger) Info(msg string, args ...any) {
	m.infoMessages = append(m.infoMessages, msg)
}

func (m *mockLogger) Warn(msg string, args ...any) {
	m.warnMessages = append(m.warnMessages, msg)
}

func (m *mockLogger) Error(msg string, args ...any) {
	m.errorMessages = append(m.errorMessages, msg)
}

// recordingGate wraps a gate and records every query with its depth.
type recordingGate struct {
	inner   Gate
	depth   int
	queries *[]query
}

type query struct {
	depth, index int
}

func record(inner Gate) (*recordingGate, *[]query) {
	queries := &[]query{}
	return &recordingGate{inner: inner, queries: queries}, queries
}

func (g *recordingGate) EnabledOrEnter(index int) bool {
	*g.queries = append(*g.queries, query{depth: g.depth, index: index})
	return g.inner.EnabledOrEnter(index)
}

func (g *recordingGate) Child(index int) Gate {
	return &recordingGate{inner: g.inner.Child(index), depth: g.depth + 1, queries: g.queries}
}

// sampleBody is
//
//	setup
//	A
//	  A0 (leaf)
//	  A1
//	    A10 (leaf)
//	B (leaf)
//
// and records every statement it runs.
func sampleBody(ran *[]string) func(ctx *Context) {
	return func(ctx *Context) {
		*ran = append(*ran, "setup")
		ctx.Section("A", func(ctx *Context) {
			*ran = append(*ran, "A")
			ctx.Section("A0", func(ctx *Context) {
				*ran = append(*ran, "A0")
			})
			ctx.Section("A1", func(ctx *Context) {
				*ran = append(*ran, "A1")
				ctx.Section("A10", func(ctx *Context) {
					*ran = append(*ran, "A10")
				})
			})
		})
		ctx.Section("B", func(ctx *Context) {
			*ran = append(*ran, "B")
		})
	}
}

var samplePaths = []Path{{0, 0}, {0, 1, 0}, {1}}

// =============================================================================
// Context Tests
// =============================================================================

func TestNew(t *testing.T) {
	t.Run("creates context with defaults", func(t *testing.T) {
		ctx := New()
		require.NotNil(t, ctx)
		require.NotNil(t, ctx.Context())
		require.NotNil(t, ctx.Logger())
		require.NotNil(t, ctx.T())
		require.NotEmpty(t, ctx.ID())
		require.Empty(t, ctx.Path())
		require.Empty(t, ctx.Trail())
	})

	t.Run("creates context with custom logger", func(t *testing.T) {
		logger := &mockLogger{}
		ctx := New(WithLogger(logger))

		ctx.Logger().Info("test message")
		require.Equal(t, []string{"test message"}, logger.infoMessages)
	})

	t.Run("creates context with custom context.Context", func(t *testing.T) {
		type key struct{}
		stdCtx := context.WithValue(context.Background(), key{}, "value")
		ctx := New(WithContext(stdCtx))
		require.Equal(t, "value", ctx.Context().Value(key{}))
	})

	t.Run("gives every context its own id", func(t *testing.T) {
		require.NotEqual(t, New().ID(), New().ID())
	})

	t.Run("keeps test name and path", func(t *testing.T) {
		ctx := New(WithTest("sizes"), WithPath(Path{1, 0}), WithTestingT(t))
		require.Equal(t, "sizes", ctx.Test())
		require.Equal(t, Path{1, 0}, ctx.Path())
		require.Equal(t, t, ctx.T())
	})
}

func TestContext_Section(t *testing.T) {
	t.Run("should run every section without a path", func(t *testing.T) {
		var ran []string
		sampleBody(&ran)(New())
		require.Equal(t, []string{"setup", "A", "A0", "A1", "A10", "B"}, ran)
	})

	t.Run("should run exactly one chain per path", func(t *testing.T) {
		expected := map[string][]string{
			"[0 0]":   {"setup", "A", "A0"},
			"[0 1 0]": {"setup", "A", "A1", "A10"},
			"[1]":     {"setup", "B"},
		}
		for _, path := range samplePaths {
			var ran []string
			sampleBody(&ran)(New(WithPath(path)))
			require.Equal(t, expected[path.String()], ran, path.String())
		}
	})

	t.Run("should cover every leaf exactly once across paths", func(t *testing.T) {
		counts := map[string]int{}
		for _, path := range samplePaths {
			var ran []string
			sampleBody(&ran)(New(WithPath(path)))
			for _, statement := range ran {
				counts[statement]++
			}
		}
		require.Equal(t, 1, counts["A0"])
		require.Equal(t, 1, counts["A10"])
		require.Equal(t, 1, counts["B"])
		require.Equal(t, 3, counts["setup"])
	})

	t.Run("should never query the children of a skipped section", func(t *testing.T) {
		gate, queries := record(NewCountingGate(Path{1}))
		var ran []string
		sampleBody(&ran)(New(WithGate(gate)))

		require.Equal(t, []query{{depth: 0, index: 0}, {depth: 0, index: 1}}, *queries)
	})

	t.Run("should re-enable deeper sections once the path is consumed", func(t *testing.T) {
		var ran []string
		sampleBody(&ran)(New(WithPath(Path{0})))
		require.Equal(t, []string{"setup", "A", "A0", "A1", "A10"}, ran)
	})

	t.Run("should record the trail of entered sections", func(t *testing.T) {
		var trail []string
		ctx := New(WithPath(Path{0, 1}))
		ctx.Section("outer", func(ctx *Context) {
			ctx.Section("first", func(ctx *Context) {})
			ctx.Section("second", func(ctx *Context) {
				trail = ctx.Trail()
			})
		})
		require.Equal(t, []string{"outer", "second"}, trail)
	})

	t.Run("should log skipped and entered sections", func(t *testing.T) {
		logger := &mockLogger{}
		ctx := New(WithLogger(logger), WithPath(Path{1}))
		ctx.Section("a", func(ctx *Context) {})
		ctx.Section("b", func(ctx *Context) {})
		require.Equal(t, []string{"section skipped", "section entered"}, logger.debugMessages)
	})

	t.Run("should call section hooks around entered sections", func(t *testing.T) {
		var events []string
		hooks := NewHookExecutor(&Hooks{
			BeforeSection: func(info SectionInfo) { events = append(events, "before "+info.Name) },
			AfterSection:  func(info SectionInfo) { events = append(events, "after "+info.Name) },
		})
		ctx := New(WithHooks(hooks), WithPath(Path{0, 0}))
		ctx.Section("outer", func(ctx *Context) {
			ctx.Section("inner", func(ctx *Context) {
				events = append(events, "body")
			})
		})
		ctx.Section("skipped", func(ctx *Context) {})

		require.Equal(t, []string{"before outer", "before inner", "body", "after inner", "after outer"}, events)
	})
}

// =============================================================================
// Gate Tests
// =============================================================================

func TestGates(t *testing.T) {
	forms := map[string]func(Path) Gate{
		"counting": func(p Path) Gate { return NewCountingGate(p) },
		"prefix":   func(p Path) Gate { return NewPrefixGate(p) },
	}

	for name, newGate := range forms {
		t.Run(name+" gate should enable everything on the empty path", func(t *testing.T) {
			gate := newGate(Path{})
			require.True(t, gate.EnabledOrEnter(0))
			child := gate.Child(0)
			require.True(t, child.EnabledOrEnter(0))
			require.True(t, child.EnabledOrEnter(1))
		})

		t.Run(name+" gate should enable only the matching sibling", func(t *testing.T) {
			gate := newGate(Path{1, 0})
			require.False(t, gate.EnabledOrEnter(0))
			require.True(t, gate.EnabledOrEnter(1))
			require.False(t, gate.EnabledOrEnter(2))

			child := gate.Child(1)
			require.True(t, child.EnabledOrEnter(0))
			require.False(t, child.EnabledOrEnter(1))
		})

		t.Run(name+" gate should agree with the context walk", func(t *testing.T) {
			for _, path := range samplePaths {
				var viaCounting, viaForm []string
				sampleBody(&viaCounting)(New(WithPath(path)))
				sampleBody(&viaForm)(New(WithGate(newGate(path))))
				require.Equal(t, viaCounting, viaForm)
			}
		})
	}

	t.Run("counting gate should reject out of order queries", func(t *testing.T) {
		gate := NewCountingGate(Path{0})
		require.Panics(t, func() { gate.EnabledOrEnter(1) })
	})

	t.Run("counting gate should consume one element per level", func(t *testing.T) {
		gate := NewCountingGate(Path{0, 2, 1})
		require.True(t, gate.EnabledOrEnter(0))
		child := gate.Child(0).(*CountingGate)
		require.Equal(t, Path{2, 1}, child.Remaining())
		require.Equal(t, Path{0, 2, 1}, gate.Remaining())
	})

	t.Run("paths should match up to the shorter length", func(t *testing.T) {
		require.True(t, Path{0, 1}.Matches(Path{0}))
		require.True(t, Path{}.Matches(Path{3, 4}))
		require.False(t, Path{0, 1}.Matches(Path{0, 2, 5}))
	})
}
