// Package plan turns a test declaration into the list of generated cases.
package plan

import (
	"fmt"
	"strings"

	"github.com/denizgursoy/kesit/internal/matrix"
	"github.com/denizgursoy/kesit/internal/model"
	"github.com/denizgursoy/kesit/internal/sections"
)

type (
	// Entry is one generated case: a binding and the path of one leaf section.
	Entry struct {
		// Name is the subtest name below the generated go test function.
		Name string
		// Segments are the names below the test, binding first then labels.
		Segments []string
		Binding  matrix.Binding
		Path     sections.Path
		Labels   []string
	}

	// Test is a validated declaration with its expansion.
	Test struct {
		Decl     *model.Test
		Fixture  *Fixture
		Axes     matrix.Axes
		Tree     *sections.Tree
		Bindings []matrix.Binding
		Entries  []Entry
	}
)

// Build validates a declaration and enumerates its cases. Bindings are the
// outer loop and section paths the inner one.
func Build(decl *model.Test) (*Test, error) {
	axes, fixture, err := validate(decl)
	if err != nil {
		return nil, err
	}

	tree, err := sections.Discover(decl.Fset, decl.Name, decl.Body, decl.ContextName())
	if err != nil {
		return nil, err
	}

	bindings := matrix.Expand(axes)
	paths := tree.Paths()
	entries := make([]Entry, 0, len(bindings)*len(paths))
	for _, binding := range bindings {
		for _, path := range paths {
			labels, err := tree.Labels(path)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", decl.Name, err)
			}
			segments := make([]string, 0, len(labels)+1)
			if name := binding.Name(); name != "" {
				segments = append(segments, name)
			}
			segments = append(segments, labels...)
			entries = append(entries, Entry{
				Name:     strings.Join(append([]string{decl.Name}, segments...), "/"),
				Segments: segments,
				Binding:  binding,
				Path:     path,
				Labels:   labels,
			})
		}
	}

	return &Test{
		Decl:     decl,
		Fixture:  fixture,
		Axes:     axes,
		Tree:     tree,
		Bindings: bindings,
		Entries:  entries,
	}, nil
}

// BuildAll builds every test of a suite and collects one error per failing test.
func BuildAll(suite *model.Suite) ([]*Test, []error) {
	tests := make([]*Test, 0, len(suite.Tests))
	errs := make([]error, 0)
	for _, decl := range suite.Tests {
		test, err := Build(decl)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		tests = append(tests, test)
	}
	return tests, errs
}
