package plan

import (
	"bytes"
	"go/ast"
	"go/printer"
	"go/token"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/denizgursoy/kesit/internal/matrix"
	"github.com/denizgursoy/kesit/internal/model"
)

const testingImportPath = "testing"

// Fixture tells how the fixture parameter is declared.
type Fixture struct {
	Param     model.Param
	ByPointer bool
}

// validate checks the signature of a test against its directives and returns
// the axes reordered to signature order.
func validate(test *model.Test) (matrix.Axes, *Fixture, error) {
	sig := test.Signature
	if sig.Receiver {
		return matrix.Axes{}, nil, model.Errorf(test.Pos, test.Name, model.ErrInvalidSignature,
			"kesit test '%s' cannot be a method", test.Name)
	}
	if isGoTest(test) {
		return matrix.Axes{}, nil, model.Errorf(test.Pos, test.Name, model.ErrInvalidSignature,
			"'%s' is a go test function and cannot be a kesit test", test.Name)
	}
	if sig.Results > 1 || (sig.Results == 1 && !sig.ReturnsError) {
		return matrix.Axes{}, nil, model.Errorf(test.Pos, test.Name, model.ErrInvalidSignature,
			"kesit test '%s' must return nothing or a single error", test.Name)
	}

	bindable := lo.Filter(sig.Params, func(p model.Param, i int) bool {
		return i != sig.ContextParam
	})

	var fixture *Fixture
	if test.Fixture != nil {
		if len(bindable) == 0 {
			return matrix.Axes{}, nil, missingFixture(test)
		}
		byPointer, ok := fixtureShape(test.Fixture.Type, bindable[0].Type)
		if !ok {
			return matrix.Axes{}, nil, missingFixture(test)
		}
		fixture = &Fixture{Param: bindable[0], ByPointer: byPointer}
		bindable = bindable[1:]
	}

	if err := checkNames(test, test.Types, "test input '%s' specified more than once"); err != nil {
		return matrix.Axes{}, nil, err
	}
	if err := checkNames(test, append(slices.Clone(test.Params), test.Consts...), "test input '%s' specified more than once"); err != nil {
		return matrix.Axes{}, nil, err
	}

	params, err := order(test, test.Params, bindable, "test input '%s' is not a valid function parameter")
	if err != nil {
		return matrix.Axes{}, nil, err
	}
	consts, err := order(test, test.Consts, bindable, "test input '%s' is not a valid function parameter")
	if err != nil {
		return matrix.Axes{}, nil, err
	}
	types, err := order(test, test.Types, sig.TypeParams, "test type input '%s' is not a type parameter of the function")
	if err != nil {
		return matrix.Axes{}, nil, err
	}

	for _, p := range bindable {
		if !bound(p.Name, test.Params, test.Consts) {
			return matrix.Axes{}, nil, model.Errorf(p.Pos, test.Name, model.ErrUnboundParameter,
				"test function parameter '%s' is not bound to test input. Use `parameter = %s as [...]`", p.Name, p.Name)
		}
	}
	for _, p := range sig.TypeParams {
		if !bound(p.Name, test.Types) {
			return matrix.Axes{}, nil, model.Errorf(p.Pos, test.Name, model.ErrUnboundParameter,
				"test type parameter '%s' is not bound to test input. Use `type_parameter = %s as [...]`", p.Name, p.Name)
		}
	}

	for _, axis := range consts {
		for _, value := range axis.Values {
			if !isConstant(value.Expr) {
				return matrix.Axes{}, nil, model.Errorf(axis.Pos, test.Name, model.ErrNotConstant,
					"const parameter '%s' value '%s' is not a constant expression", axis.Name, value.Source)
			}
		}
	}

	return matrix.Axes{Types: types, Consts: consts, Params: params}, fixture, nil
}

func missingFixture(test *model.Test) error {
	return model.Errorf(test.Pos, test.Name, model.ErrMissingFixtureArgument,
		"test fixture function missing %s fixture as first argument", test.Fixture.Source)
}

func checkNames(test *model.Test, axes []model.Axis, format string) error {
	seen := make(map[string]bool, len(axes))
	for _, axis := range axes {
		if seen[axis.Name] {
			return model.Errorf(axis.Pos, test.Name, model.ErrDuplicateParameter, format, axis.Name)
		}
		seen[axis.Name] = true
	}
	return nil
}

// order sorts axes by the position of the parameter they bind.
func order(test *model.Test, axes []model.Axis, params []model.Param, unknown string) ([]model.Axis, error) {
	index := make(map[string]int, len(params))
	for i, p := range params {
		index[p.Name] = i
	}
	for _, axis := range axes {
		if _, ok := index[axis.Name]; !ok || axis.Name == "_" {
			return nil, model.Errorf(axis.Pos, test.Name, model.ErrUnknownParameter, unknown, axis.Name)
		}
	}
	ordered := slices.Clone(axes)
	slices.SortStableFunc(ordered, func(a, b model.Axis) int {
		return index[a.Name] - index[b.Name]
	})
	return ordered, nil
}

func bound(name string, groups ...[]model.Axis) bool {
	for _, group := range groups {
		if lo.ContainsBy(group, func(axis model.Axis) bool { return axis.Name == name }) {
			return true
		}
	}
	return false
}

// fixtureShape reports whether param is declared as the fixture type F or *F.
func fixtureShape(fixture, param ast.Expr) (byPointer bool, ok bool) {
	want := source(fixture)
	if star, isStar := param.(*ast.StarExpr); isStar {
		return true, source(star.X) == want
	}
	return false, source(param) == want
}

// isGoTest reports whether the test looks like func TestXxx(*testing.T).
func isGoTest(test *model.Test) bool {
	if !strings.HasPrefix(test.Name, "Test") {
		return false
	}
	return lo.ContainsBy(test.Signature.Params, func(p model.Param) bool {
		star, ok := p.Type.(*ast.StarExpr)
		if !ok {
			return false
		}
		sel, ok := star.X.(*ast.SelectorExpr)
		if !ok || sel.Sel.Name != "T" {
			return false
		}
		pkg, ok := sel.X.(*ast.Ident)
		return ok && test.Imports[pkg.Name] == testingImportPath
	})
}

// isConstant reports whether expr can appear on the right of a const
// declaration. Identifiers and selectors are accepted and left to the compiler.
func isConstant(expr ast.Expr) bool {
	switch e := expr.(type) {
	case *ast.BasicLit:
		return true
	case *ast.Ident:
		return e.Name != "nil"
	case *ast.SelectorExpr:
		return true
	case *ast.UnaryExpr:
		switch e.Op {
		case token.SUB, token.ADD, token.XOR, token.NOT:
			return isConstant(e.X)
		}
		return false
	case *ast.BinaryExpr:
		return isConstant(e.X) && isConstant(e.Y)
	case *ast.ParenExpr:
		return isConstant(e.X)
	case *ast.CallExpr:
		// conversion such as time.Duration(5)
		return len(e.Args) == 1 && isConstant(e.Args[0]) && isConstant(e.Fun)
	default:
		return false
	}
}

func source(expr ast.Expr) string {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, token.NewFileSet(), expr); err != nil {
		return ""
	}
	return buf.String()
}
