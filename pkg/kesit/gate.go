package kesit

import (
	"fmt"
	"slices"
)

// Path is the sequence of sibling indices from the test body to one leaf
// section. The empty path enables every section.
type Path []int

// Matches compares two paths element by element up to the shorter length.
func (p Path) Matches(other Path) bool {
	n := min(len(p), len(other))
	return slices.Equal(p[:n], other[:n])
}

func (p Path) String() string {
	return fmt.Sprint([]int(p))
}

// Gate decides which sections run during one pass over a test body.
//
// EnabledOrEnter is asked once for every section reached, with the index of the
// section among its siblings. An exhausted path enables everything; otherwise
// only the section whose index equals the next path element is enabled. Child
// returns the gate that answers for the body of an enabled section.
type Gate interface {
	EnabledOrEnter(index int) bool
	Child(index int) Gate
}

// CountingGate counts the queries issued at its level and consumes one path
// element per level entered.
type CountingGate struct {
	remaining Path
	queries   int
}

func NewCountingGate(path Path) *CountingGate {
	return &CountingGate{remaining: slices.Clone(path)}
}

// EnabledOrEnter panics when index is not the number of earlier queries at this
// level, since sections are always reached in declaration order.
func (g *CountingGate) EnabledOrEnter(index int) bool {
	current := g.queries
	g.queries++
	if index != current {
		panic(fmt.Sprintf("kesit: section %d reached as query %d", index, current))
	}
	if len(g.remaining) == 0 {
		return true
	}
	return g.remaining[0] == current
}

func (g *CountingGate) Child(int) Gate {
	if len(g.remaining) == 0 {
		return &CountingGate{}
	}
	return &CountingGate{remaining: g.remaining[1:]}
}

// Remaining returns the path elements not consumed yet.
func (g *CountingGate) Remaining() Path {
	return slices.Clone(g.remaining)
}

// PrefixGate holds the full path and the sub-path of the level it answers for.
// It never mutates.
type PrefixGate struct {
	path Path
	at   Path
}

func NewPrefixGate(path Path) PrefixGate {
	return PrefixGate{path: slices.Clone(path)}
}

func (g PrefixGate) EnabledOrEnter(index int) bool {
	return g.path.Matches(g.extend(index))
}

func (g PrefixGate) Child(index int) Gate {
	return PrefixGate{path: g.path, at: g.extend(index)}
}

func (g PrefixGate) extend(index int) Path {
	sub := make(Path, len(g.at), len(g.at)+1)
	copy(sub, g.at)
	return append(sub, index)
}
