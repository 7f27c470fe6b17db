package generator

import (
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/denizgursoy/kesit/internal/comment_parser"
	"github.com/denizgursoy/kesit/internal/model"
	"github.com/denizgursoy/kesit/internal/plan"
)

const sampleSource = `package sample

import (
	"errors"
	"time"

	"github.com/denizgursoy/kesit/pkg/kesit"
)

type Database struct{}

// @kesit fixture = Database
// @kesit parameter = a as [1, 2]
// @kesit parameter = b as ["3"]
// @kesit tags = @db
func sizes(db *Database, ctx *kesit.Context, a int, b string) error {
	ctx.Section("stored", func(ctx *kesit.Context) {})
	ctx.Section("parsed", func(ctx *kesit.Context) {})
	return nil
}

// @kesit
// @kesit type_parameter = T as [int, int64]
// @kesit const_parameter = n as [8]
// @kesit parameter = d as [time.Second * 2]
func widths[T int | int64](ctx *kesit.Context, n T, d time.Duration) {
}

// @kesit fixture = Database
func values(db Database) error {
	return errors.New("unused")
}
`

const externalSource = `package detected_test

import (
	"example.com/detected"
	"github.com/denizgursoy/kesit/pkg/kesit"
)

func Config() *kesit.Config { return &kesit.Config{} }

// @kesit fixture = detected.DB
// @kesit parameter = limit as [detected.Size]
func stored(db *detected.DB, limit int) error {
	return nil
}
`

// sampleSuite parses src the way the parser would and keeps the positions.
func sampleSuite(t *testing.T, src string) *model.Suite {
	t.Helper()
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "sample_test.go", src, parser.ParseComments)
	require.NoError(t, err)
	tests, err := comment_parser.ParseFile(fset, file)
	require.NoError(t, err)
	return &model.Suite{
		PackageName: "sample",
		PackagePath: "example.com/sample",
		Tests:       tests,
	}
}

func sampleOutput(t *testing.T) *Output {
	t.Helper()
	suite := sampleSuite(t, sampleSource)
	tests, errs := plan.BuildAll(suite)
	require.Empty(t, errs)
	return &Output{
		ConfigFunctions:    []*model.FunctionLocator{{FunctionName: "Config"}},
		HooksFunctions:     []*model.FunctionLocator{{FunctionName: "Hooks"}, {FullPackageName: "example.com/shared", FunctionName: "Tracing"}},
		Tests:              tests,
		CurrentPackagePath: suite.PackagePath,
		PackageName:        suite.PackageName,
	}
}

func generate(t *testing.T, output *Output) string {
	t.Helper()
	builder := &strings.Builder{}
	require.NoError(t, output.Generate(builder))

	_, err := parser.ParseFile(token.NewFileSet(), "kesit_test.go", builder.String(), 0)
	require.NoError(t, err, builder.String())
	return builder.String()
}

// =============================================================================
// Generate Tests
// =============================================================================

func TestOutput_Generate(t *testing.T) {
	t.Run("should generate the test function", func(t *testing.T) {
		code := generate(t, sampleOutput(t))

		require.True(t, strings.HasPrefix(code, "// Code generated by kesit. DO NOT EDIT.\n"))
		require.Contains(t, code, "package sample")
		require.Contains(t, code, "func TestKesit(t *testing.T) {")
		require.Contains(t, code, "kesitConfig := kesit.MergeConfigs(Config())")
		require.Contains(t, code, "kesitHooks := []*kesit.Hooks{Hooks(), shared.Tracing()}")
		require.Contains(t, code, "err := runner.New(t).")
		require.Contains(t, code, "WithConfig(kesitConfig).")
		require.Contains(t, code, "WithHooks(kesitHooks...).")
		require.Contains(t, code, "Run()")
		require.Contains(t, code, "t.Fatal(err)")
		require.Contains(t, code, `"github.com/denizgursoy/kesit/pkg/runner"`)
		require.Contains(t, code, `"time"`)
	})

	t.Run("should register every test with tags and source", func(t *testing.T) {
		code := generate(t, sampleOutput(t))

		require.Equal(t, 3, strings.Count(code, "Register(runner.Test{"))
		require.Regexp(t, `Name:\s+"sizes"`, code)
		require.Regexp(t, `Tags:\s+\[\]string\{"@db"\}`, code)
		require.Regexp(t, `Source:\s+"sample_test.go:16"`, code)
	})

	t.Run("should emit one case per entry", func(t *testing.T) {
		code := generate(t, sampleOutput(t))

		require.Regexp(t, `Name:\s+\[\]string\{"inputs_0_0", "stored"\}`, code)
		require.Regexp(t, `Name:\s+\[\]string\{"inputs_1_0", "parsed"\}`, code)
		require.Regexp(t, `Path:\s+kesit.Path\{1\}`, code)
		require.Regexp(t, `Name:\s+"a",\s+Value:\s+"1"`, code)
		require.Regexp(t, `Name:\s+"b",\s+Value:\s+"\\"3\\""`, code)
	})

	t.Run("should call the test with its fixture", func(t *testing.T) {
		code := generate(t, sampleOutput(t))

		require.Contains(t, code, "kesit.WithFixture(func(kesitCtx *kesit.Context, kesitFixture *Database) error {")
		require.Contains(t, code, `return sizes(kesitFixture, kesitCtx, 2, "3")`)
		require.Contains(t, code, "return values(*kesitFixture)")
	})

	t.Run("should instantiate generics and declare consts", func(t *testing.T) {
		code := generate(t, sampleOutput(t))

		require.Contains(t, code, "const kesit_n = 8")
		require.Contains(t, code, "widths[int64](kesitCtx, kesit_n, time.Second*2)")
		require.Contains(t, code, "return nil")
		require.Regexp(t, `Name:\s+\[\]string\{"type_1_const_0_input_0"\}`, code)
	})

	t.Run("should skip the runner options without providers", func(t *testing.T) {
		output := sampleOutput(t)
		output.ConfigFunctions = nil
		output.HooksFunctions = nil
		code := generate(t, output)

		require.NotContains(t, code, "WithConfig")
		require.NotContains(t, code, "WithHooks")
	})

	t.Run("should qualify the package under test from an external test package", func(t *testing.T) {
		suite := sampleSuite(t, externalSource)
		tests, errs := plan.BuildAll(suite)
		require.Empty(t, errs)

		code := generate(t, &Output{
			ConfigFunctions:    []*model.FunctionLocator{{FunctionName: "Config"}},
			Tests:              tests,
			CurrentPackagePath: "example.com/detected",
			PackageName:        "detected_test",
		})

		require.Contains(t, code, "package detected_test")
		require.Contains(t, code, `"example.com/detected"`)
		require.Contains(t, code, "kesitFixture *detected.DB")
		require.Contains(t, code, "return stored(kesitFixture, detected.Size)")
		require.Contains(t, code, "kesitConfig := kesit.MergeConfigs(Config())")
	})

	t.Run("should default to package main", func(t *testing.T) {
		code := generate(t, &Output{})
		require.Contains(t, code, "package main")
		require.Regexp(t, `err := runner\.New\(t\)\.\s+Run\(\)`, code)
	})
}

// =============================================================================
// Expression Tests
// =============================================================================

func TestExprConverter(t *testing.T) {
	conv := exprConverter{imports: map[string]string{
		"time": "time",
		"y":    "gopkg.in/yaml.v3",
	}}

	tests := []struct {
		src      string
		expected string
	}{
		{`42`, `42`},
		{"`raw`", "`raw`"},
		{`-x`, `-x`},
		{`time.Second * 3`, `time.Second * 3`},
		{`y.Node{Kind: y.ScalarNode}`, `yaml.Node{Kind: yaml.ScalarNode}`},
		{`[]int{1, 2}`, `[]int{1, 2}`},
		{`[...]string{"a"}`, `[...]string{"a"}`},
		{`map[string]int{"a": 1}`, `map[string]int{"a": 1}`},
		{`&point{X: 1}`, `&point{X: 1}`},
		{`fmt.Sprint(a, b...)`, `fmt.Sprint(a, b...)`},
		{`pair[int, string]{}`, `pair[int, string]{}`},
		{`list[0]`, `list[0]`},
		{`(1 + 2)`, `(1 + 2)`},
		{`[]interface{}{nil}`, `[]interface{}{nil}`},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			expr, err := parser.ParseExpr(tt.src)
			require.NoError(t, err)
			require.Equal(t, tt.expected, conv.code(expr).GoString())
		})
	}
}
