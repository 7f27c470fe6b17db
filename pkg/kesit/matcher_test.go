package kesit

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// recordingT collects failures instead of stopping the test.
type recordingT struct {
	errors []string
}

func (r *recordingT) Helper()                           {}
func (r *recordingT) Errorf(format string, args ...any) { r.errors = append(r.errors, fmt.Sprintf(format, args...)) }
func (r *recordingT) FailNow()                          {}
func (r *recordingT) Failed() bool                      { return len(r.errors) > 0 }
func (r *recordingT) Logf(format string, args ...any)   {}
func (r *recordingT) Name() string                      { return "recording" }

func TestMatchers(t *testing.T) {
	tests := []struct {
		name    string
		matcher Matcher[int]
		value   int
		matches bool
		desc    string
	}{
		{"any", Any[int](), 7, true, "is anything"},
		{"eq", Eq(3), 3, true, "== 3"},
		{"eq mismatch", Eq(3), 4, false, "== 3"},
		{"ne", Ne(3), 4, true, "!= 3"},
		{"lt", Lt(3), 2, true, "< 3"},
		{"lt bound", Lt(3), 3, false, "< 3"},
		{"le bound", Le(3), 3, true, "<= 3"},
		{"gt", Gt(3), 4, true, "> 3"},
		{"ge bound", Ge(3), 3, true, ">= 3"},
		{"not", Not(Eq(3)), 3, false, "not == 3"},
		{"zero", IsZero[int](), 0, true, "is zero"},
		{"non-zero", IsNonZero[int](), 0, false, "is non-zero"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.matches, tt.matcher.Matches(tt.value))
			require.Equal(t, tt.desc, tt.matcher.String())
		})
	}

	t.Run("booleans", func(t *testing.T) {
		require.True(t, IsTrue().Matches(true))
		require.False(t, IsTrue().Matches(false))
		require.True(t, IsFalse().Matches(false))
	})

	t.Run("strings compare lexically", func(t *testing.T) {
		require.True(t, Lt("abc").Matches("abb"))
		require.True(t, IsNonZero[string]().Matches("x"))
	})
}

func TestCheck(t *testing.T) {
	t.Run("should pass silently", func(t *testing.T) {
		rt := &recordingT{}
		require.True(t, Check(rt, 5, Gt(2)))
		require.Empty(t, rt.errors)
	})

	t.Run("should report the expectation and the value", func(t *testing.T) {
		rt := &recordingT{}
		require.False(t, Check(rt, 1, Gt(2)))
		require.Equal(t, []string{"expected value > 2, got 1"}, rt.errors)
	})
}
