// Package model holds the declarations recovered from annotated Go source.
package model

import (
	"go/ast"
	"go/token"
)

type (
	// Value is one candidate expression of an axis. Source is the expression
	// as written in the directive.
	Value struct {
		Expr   ast.Expr
		Source string
	}

	// Axis is a named parameter bound to an ordered list of values.
	Axis struct {
		Name   string
		Pos    token.Position
		Values []Value
	}

	// Fixture is the type named by a `fixture = T` directive.
	Fixture struct {
		Type   ast.Expr
		Source string
		Pos    token.Position
	}

	// Param is a single parameter or type parameter of a test signature.
	Param struct {
		Name  string
		Type  ast.Expr
		Index int
		Pos   token.Position
	}

	Signature struct {
		TypeParams   []Param
		Params       []Param
		ContextParam int // -1 when the test takes no *kesit.Context
		ReturnsError bool
		Results      int
		Receiver     bool
	}

	// Test is one function carrying @kesit directives.
	Test struct {
		Name      string
		Pos       token.Position
		Fixture   *Fixture
		Params    []Axis
		Consts    []Axis
		Types     []Axis
		Tags      []string
		Signature Signature
		Body      *ast.BlockStmt
		Fset      *token.FileSet
		// Imports maps the local name of every import of the declaring file to its path.
		Imports map[string]string
	}

	// FunctionLocator points at a provider function such as one returning *kesit.Config.
	FunctionLocator struct {
		FullPackageName string
		FunctionName    string
	}

	// Suite is everything discovered in one package directory.
	Suite struct {
		Dir             string
		PackageName     string
		PackagePath     string
		Tests           []*Test
		ConfigFunctions []*FunctionLocator
		HooksFunctions  []*FunctionLocator
	}
)

// ContextName returns the identifier of the *kesit.Context parameter or "".
func (t *Test) ContextName() string {
	if t.Signature.ContextParam < 0 || t.Signature.ContextParam >= len(t.Signature.Params) {
		return ""
	}
	return t.Signature.Params[t.Signature.ContextParam].Name
}

// Position resolves a token.Pos against the file set of the test.
func (t *Test) Position(pos token.Pos) token.Position {
	if t.Fset == nil {
		return token.Position{}
	}
	return t.Fset.Position(pos)
}
