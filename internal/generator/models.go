package generator

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dave/jennifer/jen"
	"github.com/samber/lo"

	"github.com/denizgursoy/kesit/internal/matrix"
	"github.com/denizgursoy/kesit/internal/model"
	"github.com/denizgursoy/kesit/internal/plan"
)

const (
	kesitPackage  = "github.com/denizgursoy/kesit/pkg/kesit"
	runnerPackage = "github.com/denizgursoy/kesit/pkg/runner"

	TestFunctionName = "TestKesit"

	ctxParam     = "kesitCtx"
	fixtureParam = "kesitFixture"
	constPrefix  = "kesit_"
)

type Output struct {
	ConfigFunctions    []*model.FunctionLocator // Functions returning *kesit.Config
	HooksFunctions     []*model.FunctionLocator // Functions returning *kesit.Hooks
	Tests              []*plan.Test
	Dir                string
	CurrentPackagePath string // Full import path of the package where the test file is generated
	PackageName        string // Short package name; if empty, defaults to "main"
}

// filePath is the import path of the package the generated file belongs to.
// An external test package gets its own path so selectors into the package
// under test keep their qualifier.
func (o *Output) filePath() string {
	if o.CurrentPackagePath != "" && strings.HasSuffix(o.PackageName, "_test") &&
		!strings.HasSuffix(o.CurrentPackagePath, "_test") {
		return o.CurrentPackagePath + "_test"
	}
	return o.CurrentPackagePath
}

// isSamePackage returns true when the function is in the same package as the
// generated test file and therefore should be called without an import qualifier.
func (o *Output) isSamePackage(fullPkg string) bool {
	return fullPkg == "" || (o.CurrentPackagePath != "" && fullPkg == o.filePath())
}

// qualOrLocal returns a jen.Statement that either qualifies the function call with
// its package path (for external packages) or calls it directly (for same-package).
func (o *Output) qualOrLocal(fullPkg, funcName string) *jen.Statement {
	if o.isSamePackage(fullPkg) {
		return jen.Id(funcName)
	}
	return jen.Qual(fullPkg, funcName)
}

func (o *Output) Generate(writer io.Writer) error {
	pkgName := o.PackageName
	if pkgName == "" {
		pkgName = "main"
	}
	mainFile := jen.NewFilePathName(o.filePath(), pkgName)
	mainFile.HeaderComment("Code generated by kesit. DO NOT EDIT.")

	var statements []jen.Code

	// kesitConfig := kesit.MergeConfigs(...)
	if len(o.ConfigFunctions) > 0 {
		configCalls := lo.Map(o.ConfigFunctions, func(cf *model.FunctionLocator, _ int) jen.Code {
			return o.qualOrLocal(cf.FullPackageName, cf.FunctionName).Call()
		})
		statements = append(statements,
			jen.Id("kesitConfig").Op(":=").Qual(kesitPackage, "MergeConfigs").Call(configCalls...),
		)
	}

	// kesitHooks := []*kesit.Hooks{...}
	if len(o.HooksFunctions) > 0 {
		hooksCalls := lo.Map(o.HooksFunctions, func(hf *model.FunctionLocator, _ int) jen.Code {
			return o.qualOrLocal(hf.FullPackageName, hf.FunctionName).Call()
		})
		statements = append(statements,
			jen.Id("kesitHooks").Op(":=").Index().Op("*").Qual(kesitPackage, "Hooks").Values(hooksCalls...),
		)
	}

	runnerChain := jen.Id("err").Op(":=").Qual(runnerPackage, "New").Call(jen.Id("t")).Id(".").Line()
	if len(o.ConfigFunctions) > 0 {
		runnerChain.Id("WithConfig").Call(jen.Id("kesitConfig")).Id(".").Line()
	}
	if len(o.HooksFunctions) > 0 {
		runnerChain.Id("WithHooks").Call(jen.Id("kesitHooks").Op("...")).Id(".").Line()
	}
	for _, test := range o.Tests {
		runnerChain.Id("Register").Call(o.registration(test)).Id(".").Line()
	}
	runnerChain.Id("Run").Call()
	statements = append(statements, runnerChain)

	statements = append(statements,
		jen.If(jen.Id("err").Op("!=").Nil()).Block(
			jen.Id("t").Dot("Fatal").Call(jen.Id("err")),
		),
	)

	mainFile.Func().Id(TestFunctionName).Params(
		jen.Id("t").Op("*").Qual("testing", "T"),
	).Block(statements...)

	return mainFile.Render(writer)
}

// registration renders the runner.Test literal of one kesit test.
func (o *Output) registration(test *plan.Test) jen.Code {
	fields := jen.Dict{
		jen.Id("Name"): jen.Lit(test.Decl.Name),
		jen.Id("Cases"): jen.Index().Qual(kesitPackage, "Case").ValuesFunc(func(g *jen.Group) {
			for _, entry := range test.Entries {
				g.Add(o.caseLiteral(test, entry))
			}
		}),
	}
	if len(test.Decl.Tags) > 0 {
		fields[jen.Id("Tags")] = jen.Index().String().ValuesFunc(func(g *jen.Group) {
			for _, tag := range test.Decl.Tags {
				g.Lit(tag)
			}
		})
	}
	if source := sourceOf(test.Decl); source != "" {
		fields[jen.Id("Source")] = jen.Lit(source)
	}
	return jen.Qual(runnerPackage, "Test").Values(fields)
}

// sourceOf is the file:line of a declaration, without the directory.
func sourceOf(decl *model.Test) string {
	if !decl.Pos.IsValid() {
		return ""
	}
	return fmt.Sprintf("%s:%d", filepath.Base(decl.Pos.Filename), decl.Pos.Line)
}

func (o *Output) caseLiteral(test *plan.Test, entry plan.Entry) jen.Code {
	fields := jen.Dict{
		jen.Id("Body"): o.body(test, entry.Binding),
	}
	if len(entry.Segments) > 0 {
		fields[jen.Id("Name")] = jen.Index().String().ValuesFunc(func(g *jen.Group) {
			for _, segment := range entry.Segments {
				g.Lit(segment)
			}
		})
	}
	if len(entry.Path) > 0 {
		fields[jen.Id("Path")] = jen.Qual(kesitPackage, "Path").ValuesFunc(func(g *jen.Group) {
			for _, index := range entry.Path {
				g.Lit(index)
			}
		})
	}
	if assignments := entry.Binding.All(); len(assignments) > 0 {
		fields[jen.Id("Bindings")] = jen.Index().Qual(kesitPackage, "Binding").ValuesFunc(func(g *jen.Group) {
			for _, a := range assignments {
				g.Values(jen.Dict{
					jen.Id("Name"):  jen.Lit(a.Axis),
					jen.Id("Value"): jen.Lit(a.Value.Source),
				})
			}
		})
	}
	return jen.Values(fields)
}

// body renders the closure invoking the test function with one binding.
//
//	func(kesitCtx *kesit.Context) error {
//		const kesit_n = 8
//		return widths[int](kesitCtx, kesit_n)
//	}
//
// Tests with a fixture are wrapped in kesit.WithFixture.
func (o *Output) body(test *plan.Test, binding matrix.Binding) jen.Code {
	decl := test.Decl
	conv := exprConverter{imports: decl.Imports}

	var stmts []jen.Code
	for _, a := range binding.Consts {
		stmts = append(stmts, jen.Const().Id(constPrefix+a.Axis).Op("=").Add(conv.code(a.Value.Expr)))
	}

	callee := jen.Id(decl.Name)
	if len(binding.Types) > 0 {
		callee = callee.Types(lo.Map(binding.Types, func(a matrix.Assignment, _ int) jen.Code {
			return conv.code(a.Value.Expr)
		})...)
	}
	call := callee.Call(o.arguments(test, binding, conv)...)

	if decl.Signature.ReturnsError {
		stmts = append(stmts, jen.Return(call))
	} else {
		stmts = append(stmts, call, jen.Return(jen.Nil()))
	}

	params := []jen.Code{jen.Id(ctxParam).Op("*").Qual(kesitPackage, "Context")}
	if test.Fixture == nil {
		return jen.Func().Params(params...).Error().Block(stmts...)
	}

	fixtureType := conv.code(decl.Fixture.Type)
	params = append(params, jen.Id(fixtureParam).Op("*").Add(fixtureType))
	return jen.Qual(kesitPackage, "WithFixture").Call(
		jen.Func().Params(params...).Error().Block(stmts...),
	)
}

// arguments follows the declared parameter order.
func (o *Output) arguments(test *plan.Test, binding matrix.Binding, conv exprConverter) []jen.Code {
	sig := test.Decl.Signature
	args := make([]jen.Code, 0, len(sig.Params))
	for i, p := range sig.Params {
		switch {
		case i == sig.ContextParam:
			args = append(args, jen.Id(ctxParam))
		case test.Fixture != nil && i == test.Fixture.Param.Index:
			if test.Fixture.ByPointer {
				args = append(args, jen.Id(fixtureParam))
			} else {
				args = append(args, jen.Op("*").Id(fixtureParam))
			}
		default:
			if lo.ContainsBy(binding.Consts, func(a matrix.Assignment) bool { return a.Axis == p.Name }) {
				args = append(args, jen.Id(constPrefix+p.Name))
				continue
			}
			a, _ := binding.Lookup(p.Name)
			args = append(args, conv.code(a.Value.Expr))
		}
	}
	return args
}
