// Package directive parses `// @kesit key = value` comment lines.
package directive

import (
	"bytes"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"strings"
	"unicode"

	"github.com/samber/lo"

	"github.com/denizgursoy/kesit/internal/model"
)

const (
	Prefix = "@kesit"

	KeyFixture        = "fixture"
	KeyParameter      = "parameter"
	KeyTypeParameter  = "type_parameter"
	KeyConstParameter = "const_parameter"
	KeyTags           = "tags"
)

type (
	// Line is a single @kesit comment line with the text after the prefix.
	Line struct {
		Text string
		Pos  token.Position
	}

	// Directives is what the doc comment of one function declares.
	Directives struct {
		Fixture *model.Fixture
		Params  []model.Axis
		Consts  []model.Axis
		Types   []model.Axis
		Tags    []string
	}
)

// Lines returns the @kesit lines of a doc comment. The second result is false
// when the function is not marked at all.
func Lines(fset *token.FileSet, doc *ast.CommentGroup) ([]Line, bool) {
	if doc == nil {
		return nil, false
	}
	lines := make([]Line, 0)
	prefix := "// " + Prefix
	for _, comment := range doc.List {
		text := comment.Text
		if !strings.HasPrefix(text, prefix) {
			continue
		}
		rest := text[len(prefix):]
		// `// @kesitfoo` is a different word
		if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
			continue
		}
		lines = append(lines, Line{
			Text: strings.TrimSpace(rest),
			Pos:  fset.Position(comment.Slash),
		})
	}
	return lines, len(lines) > 0
}

// Parse interprets the lines of one function. test is used only for diagnostics.
func Parse(test string, lines []Line) (*Directives, error) {
	d := &Directives{}
	for _, line := range lines {
		if line.Text == "" {
			continue
		}
		if err := d.apply(test, line); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (d *Directives) apply(test string, line Line) error {
	key, value, found := strings.Cut(line.Text, "=")
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if !found {
		return model.Errorf(line.Pos, test, model.ErrInvalidDirective, "expected `key = value`, got '%s'", line.Text)
	}

	switch key {
	case KeyFixture:
		if d.Fixture != nil {
			return model.Errorf(line.Pos, test, model.ErrDuplicateFixture, "fixture argument can only be specified once")
		}
		fixture, err := parseFixture(line, test, value)
		if err != nil {
			return err
		}
		d.Fixture = fixture
	case KeyParameter:
		axis, err := parseAxis(line, test, value)
		if err != nil {
			return err
		}
		d.Params = append(d.Params, *axis)
	case KeyConstParameter:
		axis, err := parseAxis(line, test, value)
		if err != nil {
			return err
		}
		d.Consts = append(d.Consts, *axis)
	case KeyTypeParameter:
		axis, err := parseAxis(line, test, value)
		if err != nil {
			return err
		}
		d.Types = append(d.Types, *axis)
	case KeyTags:
		d.Tags = append(d.Tags, parseTags(value)...)
	default:
		return model.Errorf(line.Pos, test, model.ErrInvalidDirective, "unknown argument '%s'", key)
	}
	return nil
}

func parseFixture(line Line, test, value string) (*model.Fixture, error) {
	fset := token.NewFileSet()
	expr, err := parser.ParseExprFrom(fset, "", value, 0)
	if err != nil {
		return nil, model.Errorf(line.Pos, test, model.ErrInvalidDirective, "fixture '%s' is not a type: %v", value, err)
	}
	switch expr.(type) {
	case *ast.Ident, *ast.SelectorExpr:
	default:
		return nil, model.Errorf(line.Pos, test, model.ErrInvalidDirective, "fixture '%s' must name a type", value)
	}
	return &model.Fixture{Type: expr, Source: value, Pos: line.Pos}, nil
}

// parseAxis reads `name as [v1, v2, ...]`.
func parseAxis(line Line, test, value string) (*model.Axis, error) {
	name, list, found := strings.Cut(value, " as ")
	name = strings.TrimSpace(name)
	list = strings.TrimSpace(list)
	if !found || !token.IsIdentifier(name) {
		return nil, model.Errorf(line.Pos, test, model.ErrInvalidDirective, "expected `name as [values]`, got '%s'", value)
	}
	if !strings.HasPrefix(list, "[") || !strings.HasSuffix(list, "]") {
		return nil, model.Errorf(line.Pos, test, model.ErrInvalidDirective, "values of '%s' must be enclosed in []", name)
	}
	inner := strings.TrimSpace(list[1 : len(list)-1])
	if inner == "" {
		return nil, model.Errorf(line.Pos, test, model.ErrEmptyAxis, "test input '%s' has no values", name)
	}

	// call arguments accept both expressions and types
	fset := token.NewFileSet()
	expr, err := parser.ParseExprFrom(fset, "", "_("+inner+")", 0)
	if err != nil {
		return nil, model.Errorf(line.Pos, test, model.ErrInvalidDirective, "cannot parse values of '%s': %v", name, err)
	}
	call, ok := expr.(*ast.CallExpr)
	if !ok || call.Ellipsis.IsValid() {
		return nil, model.Errorf(line.Pos, test, model.ErrInvalidDirective, "cannot parse values of '%s'", name)
	}

	values := lo.Map(call.Args, func(arg ast.Expr, _ int) model.Value {
		return model.Value{Expr: arg, Source: render(fset, arg)}
	})
	return &model.Axis{Name: name, Pos: line.Pos, Values: values}, nil
}

func parseTags(value string) []string {
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return unicode.IsSpace(r) || r == ','
	})
	return lo.Map(fields, func(tag string, _ int) string {
		if strings.HasPrefix(tag, "@") {
			return tag
		}
		return "@" + tag
	})
}

func render(fset *token.FileSet, expr ast.Expr) string {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, fset, expr); err != nil {
		return ""
	}
	return buf.String()
}
