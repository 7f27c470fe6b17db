package comment_parser

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/samber/lo"

	"github.com/denizgursoy/kesit/internal/directive"
	"github.com/denizgursoy/kesit/internal/model"
)

const (
	KesitImportPath   = "github.com/denizgursoy/kesit/pkg/kesit"
	DefaultPattern    = "*_test.go"
	GeneratedFileName = "kesit_test.go"

	configTypeName = "Config"
	hooksTypeName  = "Hooks"
)

var majorVersion = regexp.MustCompile(`^v[0-9]+$`)

type GoSourceFileParser struct {
	generatedFile string
	exclude       []string
}

type ParserOption func(*GoSourceFileParser)

// WithGeneratedFile names the file the generator writes so it is never parsed.
func WithGeneratedFile(name string) ParserOption {
	return func(g *GoSourceFileParser) {
		g.generatedFile = name
	}
}

// WithExclude skips files matching any of the doublestar patterns.
func WithExclude(patterns ...string) ParserOption {
	return func(g *GoSourceFileParser) {
		g.exclude = append(g.exclude, patterns...)
	}
}

func NewGoSourceFileParser(opts ...ParserOption) *GoSourceFileParser {
	g := &GoSourceFileParser{generatedFile: GeneratedFileName}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ParseDirectory parses the files of dir matching pattern and returns the
// declarations found in them.
func (g *GoSourceFileParser) ParseDirectory(ctx context.Context, dir, pattern string) (*model.Suite, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	matches, err := doublestar.Glob(os.DirFS(dir), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("cannot list %s in %s: %w", pattern, dir, err)
	}
	slices.Sort(matches)

	suite := &model.Suite{
		Dir:             dir,
		Tests:           make([]*model.Test, 0),
		ConfigFunctions: make([]*model.FunctionLocator, 0),
		HooksFunctions:  make([]*model.FunctionLocator, 0),
	}

	fset := token.NewFileSet()
	errs := make([]error, 0)
	for _, name := range matches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if path.Base(name) == g.generatedFile || g.excluded(name) {
			continue
		}

		file, err := parser.ParseFile(fset, filepath.Join(dir, filepath.FromSlash(name)), nil, parser.ParseComments)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		found, err := g.parseFile(fset, file, suite)
		if err != nil {
			errs = append(errs, err)
		}
		if !found {
			continue
		}
		if suite.PackageName != "" && suite.PackageName != file.Name.Name {
			return nil, fmt.Errorf("kesit declarations in %s span packages %s and %s", dir, suite.PackageName, file.Name.Name)
		}
		suite.PackageName = file.Name.Name
	}

	if len(errs) > 0 {
		return suite, errors.Join(errs...)
	}
	return suite, nil
}

func (g *GoSourceFileParser) excluded(name string) bool {
	return lo.ContainsBy(g.exclude, func(pattern string) bool {
		matched, err := doublestar.Match(pattern, name)
		return err == nil && matched
	})
}

// parseFile adds the tests and providers of one file to the suite and reports
// whether it declared any. Invalid tests are left out and their diagnostics
// returned.
func (g *GoSourceFileParser) parseFile(fset *token.FileSet, file *ast.File, suite *model.Suite) (bool, error) {
	tests, testErr := ParseFile(fset, file)
	suite.Tests = append(suite.Tests, tests...)
	found := len(tests) > 0 || testErr != nil

	imports := Imports(file)
	for _, dec := range file.Decls {
		decl, ok := dec.(*ast.FuncDecl)
		if !ok {
			continue
		}
		if _, marked := directive.Lines(fset, decl.Doc); marked {
			continue
		}
		switch providerOf(decl, imports) {
		case configTypeName:
			suite.ConfigFunctions = append(suite.ConfigFunctions, &model.FunctionLocator{FunctionName: decl.Name.Name})
			found = true
		case hooksTypeName:
			suite.HooksFunctions = append(suite.HooksFunctions, &model.FunctionLocator{FunctionName: decl.Name.Name})
			found = true
		}
	}
	return found, testErr
}

// ParseFile returns the functions of a file that carry @kesit directives.
// A test with malformed directives is skipped; the diagnostics of all of them
// are joined into the error.
func ParseFile(fset *token.FileSet, file *ast.File) ([]*model.Test, error) {
	imports := Imports(file)
	tests := make([]*model.Test, 0)
	errs := make([]error, 0)
	for _, dec := range file.Decls {
		decl, ok := dec.(*ast.FuncDecl)
		if !ok {
			continue
		}
		lines, marked := directive.Lines(fset, decl.Doc)
		if !marked {
			continue
		}

		name := decl.Name.Name
		directives, err := directive.Parse(name, lines)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		tests = append(tests, &model.Test{
			Name:      name,
			Pos:       fset.Position(decl.Name.Pos()),
			Fixture:   directives.Fixture,
			Params:    directives.Params,
			Consts:    directives.Consts,
			Types:     directives.Types,
			Tags:      directives.Tags,
			Signature: signatureOf(fset, decl, imports),
			Body:      decl.Body,
			Fset:      fset,
			Imports:   imports,
		})
	}
	return tests, errors.Join(errs...)
}

// Imports maps the local name of every import of the file to its path. Blank
// and dot imports are left out.
func Imports(file *ast.File) map[string]string {
	imports := make(map[string]string, len(file.Imports))
	for _, spec := range file.Imports {
		importPath, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		if spec.Name != nil {
			if spec.Name.Name != "_" && spec.Name.Name != "." {
				imports[spec.Name.Name] = importPath
			}
			continue
		}
		imports[defaultImportName(importPath)] = importPath
	}
	return imports
}

// defaultImportName guesses the package name of an import path the way most
// packages are named: the last element, skipping a major version suffix.
func defaultImportName(importPath string) string {
	elems := strings.Split(importPath, "/")
	name := elems[len(elems)-1]
	if majorVersion.MatchString(name) && len(elems) > 1 {
		name = elems[len(elems)-2]
	}
	name = strings.TrimPrefix(name, "go-")
	if i := strings.IndexAny(name, ".-"); i >= 0 {
		name = name[:i]
	}
	return name
}

func signatureOf(fset *token.FileSet, decl *ast.FuncDecl, imports map[string]string) model.Signature {
	sig := model.Signature{
		ContextParam: -1,
		Receiver:     decl.Recv != nil,
	}
	sig.TypeParams = paramsOf(fset, decl.Type.TypeParams)
	sig.Params = paramsOf(fset, decl.Type.Params)
	for i, p := range sig.Params {
		if isKesitPointer(p.Type, "Context", imports) {
			sig.ContextParam = i
			break
		}
	}

	if decl.Type.Results != nil {
		for _, field := range decl.Type.Results.List {
			sig.Results += max(len(field.Names), 1)
		}
		if sig.Results == 1 {
			ident, ok := decl.Type.Results.List[0].Type.(*ast.Ident)
			sig.ReturnsError = ok && ident.Name == "error"
		}
	}
	return sig
}

func paramsOf(fset *token.FileSet, fields *ast.FieldList) []model.Param {
	params := make([]model.Param, 0)
	if fields == nil {
		return params
	}
	for _, field := range fields.List {
		if len(field.Names) == 0 {
			params = append(params, model.Param{
				Type:  field.Type,
				Index: len(params),
				Pos:   fset.Position(field.Pos()),
			})
			continue
		}
		for _, name := range field.Names {
			params = append(params, model.Param{
				Name:  name.Name,
				Type:  field.Type,
				Index: len(params),
				Pos:   fset.Position(name.Pos()),
			})
		}
	}
	return params
}

// providerOf returns the kesit type a provider function such as
// `func Config() *kesit.Config` returns, or "".
func providerOf(decl *ast.FuncDecl, imports map[string]string) string {
	if decl.Recv != nil || decl.Type.TypeParams != nil || decl.Type.Params.NumFields() != 0 {
		return ""
	}
	if decl.Type.Results == nil || len(decl.Type.Results.List) != 1 || len(decl.Type.Results.List[0].Names) > 1 {
		return ""
	}
	result := decl.Type.Results.List[0].Type
	for _, typeName := range []string{configTypeName, hooksTypeName} {
		if isKesitPointer(result, typeName, imports) {
			return typeName
		}
	}
	return ""
}

// isKesitPointer reports whether expr is *kesit.<typeName> under any import name.
func isKesitPointer(expr ast.Expr, typeName string, imports map[string]string) bool {
	star, ok := expr.(*ast.StarExpr)
	if !ok {
		return false
	}
	sel, ok := star.X.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != typeName {
		return false
	}
	pkg, ok := sel.X.(*ast.Ident)
	return ok && imports[pkg.Name] == KesitImportPath
}

// Directories returns every directory below root holding a file that matches
// pattern. Directories the go tool ignores are skipped.
func (g *GoSourceFileParser) Directories(root, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	dirs := make([]string, 0)
	err := doublestar.GlobWalk(os.DirFS(root), "**/"+pattern, func(match string, d fs.DirEntry) error {
		if d.IsDir() || ignoredByGo(match) || g.excluded(match) {
			return nil
		}
		dirs = append(dirs, path.Dir(match))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cannot walk %s: %w", root, err)
	}

	dirs = lo.Uniq(dirs)
	slices.Sort(dirs)
	return lo.Map(dirs, func(dir string, _ int) string {
		return filepath.Join(root, filepath.FromSlash(dir))
	}), nil
}

func ignoredByGo(match string) bool {
	elems := strings.Split(path.Dir(match), "/")
	return lo.ContainsBy(elems, func(elem string) bool {
		return elem == "testdata" || elem == "vendor" ||
			strings.HasPrefix(elem, "_") || (strings.HasPrefix(elem, ".") && elem != ".")
	})
}
