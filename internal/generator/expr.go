package generator

import (
	"bytes"
	"go/ast"
	"go/printer"
	"go/token"

	"github.com/dave/jennifer/jen"
)

// exprConverter rewrites expressions written in a test file into jennifer code,
// qualifying package selectors so the generated file imports what they use.
type exprConverter struct {
	imports map[string]string
}

func (c exprConverter) codes(exprs []ast.Expr) []jen.Code {
	codes := make([]jen.Code, len(exprs))
	for i, e := range exprs {
		codes[i] = c.code(e)
	}
	return codes
}

func (c exprConverter) code(expr ast.Expr) *jen.Statement {
	switch e := expr.(type) {
	case *ast.BasicLit:
		return jen.Id(e.Value)
	case *ast.Ident:
		return jen.Id(e.Name)
	case *ast.SelectorExpr:
		if pkg, ok := e.X.(*ast.Ident); ok {
			if importPath, imported := c.imports[pkg.Name]; imported {
				return jen.Qual(importPath, e.Sel.Name)
			}
		}
		return c.code(e.X).Dot(e.Sel.Name)
	case *ast.StarExpr:
		return jen.Op("*").Add(c.code(e.X))
	case *ast.UnaryExpr:
		return jen.Op(e.Op.String()).Add(c.code(e.X))
	case *ast.BinaryExpr:
		return c.code(e.X).Op(e.Op.String()).Add(c.code(e.Y))
	case *ast.ParenExpr:
		return jen.Parens(c.code(e.X))
	case *ast.CallExpr:
		args := c.codes(e.Args)
		if e.Ellipsis.IsValid() && len(args) > 0 {
			args[len(args)-1] = jen.Add(args[len(args)-1]).Op("...")
		}
		return c.code(e.Fun).Call(args...)
	case *ast.CompositeLit:
		elts := c.codes(e.Elts)
		if e.Type == nil {
			return jen.Values(elts...)
		}
		return c.code(e.Type).Values(elts...)
	case *ast.KeyValueExpr:
		return c.code(e.Key).Op(":").Add(c.code(e.Value))
	case *ast.ArrayType:
		switch {
		case e.Len == nil:
			return jen.Index().Add(c.code(e.Elt))
		case isEllipsis(e.Len):
			return jen.Index(jen.Op("...")).Add(c.code(e.Elt))
		default:
			return jen.Index(c.code(e.Len)).Add(c.code(e.Elt))
		}
	case *ast.MapType:
		return jen.Map(c.code(e.Key)).Add(c.code(e.Value))
	case *ast.IndexExpr:
		return c.code(e.X).Index(c.code(e.Index))
	case *ast.IndexListExpr:
		return c.code(e.X).Types(c.codes(e.Indices)...)
	case *ast.InterfaceType:
		if e.Methods == nil || len(e.Methods.List) == 0 {
			return jen.Interface()
		}
	case *ast.StructType:
		if e.Fields == nil || len(e.Fields.List) == 0 {
			return jen.Struct()
		}
	}
	return jen.Id(printed(expr))
}

func isEllipsis(expr ast.Expr) bool {
	_, ok := expr.(*ast.Ellipsis)
	return ok
}

func printed(expr ast.Expr) string {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, token.NewFileSet(), expr); err != nil {
		return "nil"
	}
	return buf.String()
}
