package kesit

import (
	"slices"
	"strings"
)

type (
	// Binding is one parameter of a generated case, rendered as source.
	Binding struct {
		Name  string `yaml:"name"`
		Value string `yaml:"value"`
	}

	// Case is one generated, independently runnable test case.
	Case struct {
		// Name holds the subtest names below the test, binding first then
		// sections. Empty for a test without parameters or sections.
		Name     []string
		Path     Path
		Bindings []Binding
		Body     Body
	}

	// CaseInfo describes a case to hooks.
	CaseInfo struct {
		ID       string
		Test     string
		Name     string
		Tags     []string
		Path     Path
		Bindings []Binding
	}

	// SectionInfo describes an entered section to hooks.
	SectionInfo struct {
		Test  string
		Name  string
		Index int
		Trail []string
	}
)

// FullName is the name `go test` reports for the case below the test function.
func (c Case) FullName(test string) string {
	return strings.Join(append([]string{test}, c.Name...), "/")
}

// HasTag reports whether the case carries the given tag.
func (i CaseInfo) HasTag(tag string) bool {
	return slices.Contains(i.Tags, tag)
}
