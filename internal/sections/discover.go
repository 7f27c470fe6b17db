package sections

import (
	"go/ast"
	"go/token"
	"strconv"

	"github.com/samber/lo"

	"github.com/denizgursoy/kesit/internal/model"
)

// Discover walks a test body and returns its section tree. contextName is the
// identifier of the test's *kesit.Context parameter; without one no section can
// be declared and the tree is empty.
func Discover(fset *token.FileSet, test string, body *ast.BlockStmt, contextName string) (*Tree, error) {
	tree := &Tree{}
	if body == nil || contextName == "" || contextName == "_" {
		return tree, nil
	}
	w := &walker{fset: fset, test: test, contexts: []string{contextName}}
	children, err := w.block(body.List, "")
	if err != nil {
		return nil, err
	}
	tree.Children = children
	return tree, nil
}

type walker struct {
	fset *token.FileSet
	test string
	// contexts is the stack of context identifiers in scope, innermost last.
	contexts []string
}

// block discovers the sections of a statement list. guard names the enclosing
// control-flow construct, "" when the statements run unconditionally.
func (w *walker) block(stmts []ast.Stmt, guard string) ([]*Node, error) {
	nodes := make([]*Node, 0)
	for _, stmt := range stmts {
		found, err := w.stmt(stmt, guard)
		if err != nil {
			return nil, err
		}
		for _, n := range found {
			n.Index = len(nodes)
			nodes = append(nodes, n)
		}
	}
	assignLabels(nodes)
	return nodes, nil
}

func (w *walker) stmt(stmt ast.Stmt, guard string) ([]*Node, error) {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		call, ok := s.X.(*ast.CallExpr)
		if ok && w.isMarker(call) {
			if guard != "" {
				return nil, w.conditional(call, guard)
			}
			node, err := w.section(call)
			if err != nil {
				return nil, err
			}
			return []*Node{node}, nil
		}
		return nil, w.forbid(s, "closure")
	case *ast.BlockStmt:
		return w.block(s.List, guard)
	case *ast.LabeledStmt:
		return w.stmt(s.Stmt, guard)
	case *ast.IfStmt:
		if err := w.forbid(s.Init, "if"); err != nil {
			return nil, err
		}
		if err := w.forbid(s.Cond, "if"); err != nil {
			return nil, err
		}
		if _, err := w.block(s.Body.List, "if"); err != nil {
			return nil, err
		}
		if s.Else != nil {
			if _, err := w.stmt(s.Else, "if"); err != nil {
				return nil, err
			}
		}
		return nil, nil
	case *ast.ForStmt:
		return nil, w.nested(s.Body, "for", s.Init, s.Cond, s.Post)
	case *ast.RangeStmt:
		return nil, w.nested(s.Body, "for", s.X)
	case *ast.SwitchStmt:
		return nil, w.clauses(s.Body, "switch", s.Init, s.Tag)
	case *ast.TypeSwitchStmt:
		return nil, w.clauses(s.Body, "switch", s.Init, s.Assign)
	case *ast.SelectStmt:
		return nil, w.clauses(s.Body, "select")
	case *ast.DeferStmt:
		return nil, w.deferred(s.Call, "defer")
	case *ast.GoStmt:
		return nil, w.deferred(s.Call, "go")
	default:
		// assignments, declarations, returns and the like may still hide a
		// section inside a function literal
		return nil, w.forbid(stmt, "closure")
	}
}

func (w *walker) nested(body *ast.BlockStmt, guard string, headers ...ast.Node) error {
	for _, header := range headers {
		if err := w.forbid(header, guard); err != nil {
			return err
		}
	}
	_, err := w.block(body.List, guard)
	return err
}

func (w *walker) clauses(body *ast.BlockStmt, guard string, headers ...ast.Node) error {
	for _, header := range headers {
		if err := w.forbid(header, guard); err != nil {
			return err
		}
	}
	for _, clause := range body.List {
		switch c := clause.(type) {
		case *ast.CaseClause:
			for _, e := range c.List {
				if err := w.forbid(e, guard); err != nil {
					return err
				}
			}
			if _, err := w.block(c.Body, guard); err != nil {
				return err
			}
		case *ast.CommClause:
			if err := w.forbid(c.Comm, guard); err != nil {
				return err
			}
			if _, err := w.block(c.Body, guard); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *walker) deferred(call *ast.CallExpr, guard string) error {
	if w.isMarker(call) {
		return w.conditional(call, guard)
	}
	return w.forbid(call, guard)
}

// forbid fails when node contains any section marker. Markers found below a
// function literal that is not a section body are reported with the "closure"
// construct.
func (w *walker) forbid(node ast.Node, guard string) error {
	if node == nil {
		return nil
	}
	var found error
	ast.Inspect(node, func(n ast.Node) bool {
		if found != nil {
			return false
		}
		switch x := n.(type) {
		case *ast.FuncLit:
			if guard != "closure" {
				found = w.forbid(x.Body, "closure")
				return false
			}
		case *ast.CallExpr:
			if w.isMarker(x) {
				found = w.conditional(x, guard)
				return false
			}
		}
		return true
	})
	return found
}

func (w *walker) conditional(call *ast.CallExpr, guard string) error {
	return model.Errorf(w.fset.Position(call.Pos()), w.test, model.ErrConditionalSection,
		"sections cannot be defined in control-flow blocks like %s. They must not be conditional", guard)
}

// isMarker reports whether call is `<ctx>.Section(...)` on any context in scope.
func (w *walker) isMarker(call *ast.CallExpr) bool {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != MarkerMethod {
		return false
	}
	ident, ok := sel.X.(*ast.Ident)
	return ok && lo.Contains(w.contexts, ident.Name)
}

// section validates a marker and discovers its body.
func (w *walker) section(call *ast.CallExpr) (*Node, error) {
	pos := w.fset.Position(call.Pos())
	receiver := call.Fun.(*ast.SelectorExpr).X.(*ast.Ident).Name
	if receiver != w.contexts[len(w.contexts)-1] {
		return nil, model.Errorf(pos, w.test, model.ErrMalformedSection,
			"section must be declared on the innermost context '%s', not '%s'", w.contexts[len(w.contexts)-1], receiver)
	}
	if len(call.Args) != 2 {
		return nil, model.Errorf(pos, w.test, model.ErrMalformedSection, "section expects a name and a function literal")
	}

	lit, ok := call.Args[0].(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return nil, model.Errorf(pos, w.test, model.ErrMalformedSection, "section name must be a string literal")
	}
	name, err := strconv.Unquote(lit.Value)
	if err != nil || name == "" {
		return nil, model.Errorf(pos, w.test, model.ErrMalformedSection, "section name must be a non-empty string literal")
	}

	fn, ok := call.Args[1].(*ast.FuncLit)
	if !ok {
		return nil, model.Errorf(pos, w.test, model.ErrMalformedSection, "body of section '%s' must be a function literal", name)
	}
	params := fn.Type.Params.List
	if len(params) != 1 || len(params[0].Names) > 1 {
		return nil, model.Errorf(pos, w.test, model.ErrMalformedSection, "body of section '%s' must take exactly one context", name)
	}

	child := "_"
	if len(params[0].Names) == 1 {
		child = params[0].Names[0].Name
	}
	w.contexts = append(w.contexts, child)
	children, err := w.block(fn.Body.List, "")
	w.contexts = w.contexts[:len(w.contexts)-1]
	if err != nil {
		return nil, err
	}

	return &Node{Name: name, Pos: pos, Children: children}, nil
}
