// Package sections discovers the tree of nested ctx.Section calls in a test body.
package sections

import (
	"fmt"
	"go/token"
	"strconv"
	"strings"
	"unicode"
)

const MarkerMethod = "Section"

type (
	// Node is one discovered section. Index is its position among its siblings.
	Node struct {
		Name     string
		Label    string // unique among siblings, as `go test` names the subtest
		Index    int
		Pos      token.Position
		Children []*Node
	}

	// Tree is the root of a test body. It has no name of its own.
	Tree struct {
		Children []*Node
	}

	// Path is a sequence of sibling indices from the root to a leaf.
	Path []int
)

// IsLeaf reports whether the node has no nested sections.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Len is the number of nodes in the tree.
func (t *Tree) Len() int {
	count := 0
	var walk func([]*Node)
	walk = func(nodes []*Node) {
		for _, n := range nodes {
			count++
			walk(n.Children)
		}
	}
	walk(t.Children)
	return count
}

// Leaves counts the leaf sections.
func (t *Tree) Leaves() int {
	return len(t.Paths()) - t.emptyPath()
}

func (t *Tree) emptyPath() int {
	if len(t.Children) == 0 {
		return 1
	}
	return 0
}

// Paths enumerates one path per leaf in depth-first order, or the single empty
// path when the tree has no sections.
func (t *Tree) Paths() []Path {
	if len(t.Children) == 0 {
		return []Path{{}}
	}
	paths := make([]Path, 0)
	var walk func(prefix Path, nodes []*Node)
	walk = func(prefix Path, nodes []*Node) {
		for _, n := range nodes {
			current := append(append(Path{}, prefix...), n.Index)
			if n.IsLeaf() {
				paths = append(paths, current)
				continue
			}
			walk(current, n.Children)
		}
	}
	walk(Path{}, t.Children)
	return paths
}

// Resolve returns the chain of nodes a path walks through.
func (t *Tree) Resolve(path Path) ([]*Node, error) {
	chain := make([]*Node, 0, len(path))
	level := t.Children
	for depth, index := range path {
		if index < 0 || index >= len(level) {
			return nil, fmt.Errorf("path %v does not resolve at depth %d", path, depth)
		}
		node := level[index]
		chain = append(chain, node)
		level = node.Children
	}
	return chain, nil
}

// Labels returns the subtest names along a path.
func (t *Tree) Labels(path Path) ([]string, error) {
	chain, err := t.Resolve(path)
	if err != nil {
		return nil, err
	}
	labels := make([]string, len(chain))
	for i, n := range chain {
		labels[i] = n.Label
	}
	return labels, nil
}

// assignLabels gives siblings unique labels. Duplicates get a #NN suffix in the
// order `go test` would assign them.
func assignLabels(nodes []*Node) {
	counts := make(map[string]int)
	for _, n := range nodes {
		label := RewriteName(n.Name)
		for {
			next, exists := counts[label]
			if !exists {
				counts[label] = 1
				break
			}
			counts[label] = next + 1
			label = fmt.Sprintf("%s#%02d", label, next)
		}
		n.Label = label
	}
}

// RewriteName turns a subtest name into the form `go test` reports.
func RewriteName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsSpace(r):
			b.WriteByte('_')
		case !strconv.IsPrint(r):
			quoted := strconv.QuoteRune(r)
			b.WriteString(quoted[1 : len(quoted)-1])
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
