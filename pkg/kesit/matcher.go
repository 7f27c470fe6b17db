package kesit

import (
	"cmp"
	"fmt"
)

// Matcher is a small comparison predicate with a readable description.
type Matcher[V any] interface {
	Matches(value V) bool
	String() string
}

type matcherFunc[V any] struct {
	match func(V) bool
	desc  string
}

func (m matcherFunc[V]) Matches(value V) bool { return m.match(value) }
func (m matcherFunc[V]) String() string       { return m.desc }

func newMatcher[V any](desc string, match func(V) bool) Matcher[V] {
	return matcherFunc[V]{match: match, desc: desc}
}

// Any matches every value.
func Any[V any]() Matcher[V] {
	return newMatcher("is anything", func(V) bool { return true })
}

// Eq matches values equal to want.
func Eq[V comparable](want V) Matcher[V] {
	return newMatcher(fmt.Sprintf("== %v", want), func(v V) bool { return v == want })
}

// Ne matches values different from want.
func Ne[V comparable](want V) Matcher[V] {
	return newMatcher(fmt.Sprintf("!= %v", want), func(v V) bool { return v != want })
}

// Lt matches values below bound.
func Lt[V cmp.Ordered](bound V) Matcher[V] {
	return newMatcher(fmt.Sprintf("< %v", bound), func(v V) bool { return v < bound })
}

// Le matches values at or below bound.
func Le[V cmp.Ordered](bound V) Matcher[V] {
	return newMatcher(fmt.Sprintf("<= %v", bound), func(v V) bool { return v <= bound })
}

// Gt matches values above bound.
func Gt[V cmp.Ordered](bound V) Matcher[V] {
	return newMatcher(fmt.Sprintf("> %v", bound), func(v V) bool { return v > bound })
}

// Ge matches values at or above bound.
func Ge[V cmp.Ordered](bound V) Matcher[V] {
	return newMatcher(fmt.Sprintf(">= %v", bound), func(v V) bool { return v >= bound })
}

// Not inverts m.
func Not[V any](m Matcher[V]) Matcher[V] {
	return newMatcher("not "+m.String(), func(v V) bool { return !m.Matches(v) })
}

// IsTrue matches true.
func IsTrue() Matcher[bool] {
	return newMatcher("is true", func(v bool) bool { return v })
}

// IsFalse matches false.
func IsFalse() Matcher[bool] {
	return newMatcher("is false", func(v bool) bool { return !v })
}

// IsZero matches the zero value of V, the counterpart of a falsey value.
func IsZero[V comparable]() Matcher[V] {
	var zero V
	return newMatcher("is zero", func(v V) bool { return v == zero })
}

// IsNonZero matches anything but the zero value of V.
func IsNonZero[V comparable]() Matcher[V] {
	zero := IsZero[V]()
	return newMatcher("is non-zero", func(v V) bool { return !zero.Matches(v) })
}

// Check reports a failure on t when value does not match.
func Check[V any](t T, value V, m Matcher[V]) bool {
	t.Helper()
	if m.Matches(value) {
		return true
	}
	t.Errorf("expected value %s, got %v", m, value)
	return false
}
