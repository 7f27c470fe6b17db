package app

import (
	"bytes"
	"context"
	"go/parser"
	"go/token"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/denizgursoy/kesit/internal/comment_parser"
	"github.com/denizgursoy/kesit/internal/config"
	"github.com/denizgursoy/kesit/internal/generator"
	"github.com/denizgursoy/kesit/internal/model"
)

const source = `package sample

import "github.com/denizgursoy/kesit/pkg/kesit"

// @kesit parameter = n as [1, 2]
func counts(ctx *kesit.Context, n int) {
	ctx.Section("empty", func(ctx *kesit.Context) {})
}
`

func suite(t *testing.T) *model.Suite {
	t.Helper()
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "counts_test.go", source, parser.ParseComments)
	require.NoError(t, err)
	tests, err := comment_parser.ParseFile(fset, file)
	require.NoError(t, err)
	return &model.Suite{PackageName: "sample", PackagePath: "example.com/sample", Tests: tests}
}

func run(t *testing.T, mockParser generator.SourceParser, args ...string) (string, *config.Config, error) {
	t.Helper()
	var loaded *config.Config
	factory := func(cfg *config.Config) generator.SourceParser {
		loaded = cfg
		return mockParser
	}
	stdout := &bytes.Buffer{}
	err := StartApplication(context.Background(), factory, args, stdout)
	return stdout.String(), loaded, err
}

func TestStartApplication(t *testing.T) {
	t.Run("should print the generated code in dry run", func(t *testing.T) {
		controller := gomock.NewController(t)
		mockParser := generator.NewMockSourceParser(controller)
		dir := t.TempDir()

		mockParser.
			EXPECT().
			ParseDirectory(gomock.Any(), dir, config.DefaultPattern).
			Return(suite(t), nil).
			Times(1)

		stdout, cfg, err := run(t, mockParser, "generate", "--dry-run", dir)
		require.NoError(t, err)
		require.True(t, cfg.DryRun)
		require.Contains(t, stdout, "// "+filepath.Join(dir, config.DefaultOutput))
		require.Contains(t, stdout, "func TestKesit(t *testing.T)")
		require.NoFileExists(t, filepath.Join(dir, config.DefaultOutput))
	})

	t.Run("should pass flags to the configuration", func(t *testing.T) {
		controller := gomock.NewController(t)
		mockParser := generator.NewMockSourceParser(controller)
		dir := t.TempDir()

		mockParser.EXPECT().ParseDirectory(gomock.Any(), dir, "*_kesit_test.go").Return(suite(t), nil)

		_, cfg, err := run(t, mockParser, "generate", "-o", "zz_generated_test.go", "-p", "*_kesit_test.go", "-e", "legacy/**", dir)
		require.NoError(t, err)
		require.Equal(t, "zz_generated_test.go", cfg.Output)
		require.Contains(t, cfg.Exclude, "legacy/**")
		require.FileExists(t, filepath.Join(dir, "zz_generated_test.go"))
	})

	t.Run("should walk directories for the go tool pattern", func(t *testing.T) {
		controller := gomock.NewController(t)
		mockParser := generator.NewMockSourceParser(controller)
		root := t.TempDir()

		mockParser.EXPECT().Directories(root, config.DefaultPattern).Return([]string{}, nil)

		_, cfg, err := run(t, mockParser, "list", root+"/...")
		require.NoError(t, err)
		require.True(t, cfg.Recursive)
	})

	t.Run("should list cases as text", func(t *testing.T) {
		controller := gomock.NewController(t)
		mockParser := generator.NewMockSourceParser(controller)
		dir := t.TempDir()

		mockParser.EXPECT().ParseDirectory(gomock.Any(), dir, gomock.Any()).Return(suite(t), nil)

		stdout, _, err := run(t, mockParser, "list", "--format", "text", dir)
		require.NoError(t, err)
		require.Equal(t, "example.com/sample\tTestKesit/counts/input_0/empty\nexample.com/sample\tTestKesit/counts/input_1/empty\n", stdout)
	})

	t.Run("should list cases as yaml", func(t *testing.T) {
		controller := gomock.NewController(t)
		mockParser := generator.NewMockSourceParser(controller)
		dir := t.TempDir()

		mockParser.EXPECT().ParseDirectory(gomock.Any(), dir, gomock.Any()).Return(suite(t), nil)

		stdout, _, err := run(t, mockParser, "list", dir)
		require.NoError(t, err)
		require.Contains(t, stdout, "package: example.com/sample\n")
		require.Contains(t, stdout, "name: TestKesit/counts/input_1/empty\n")
	})

	t.Run("should reject an unknown list format", func(t *testing.T) {
		controller := gomock.NewController(t)
		mockParser := generator.NewMockSourceParser(controller)

		_, _, err := run(t, mockParser, "list", "--format", "json")
		require.ErrorContains(t, err, `unknown format "json"`)
	})

	t.Run("should fail for a missing config file", func(t *testing.T) {
		controller := gomock.NewController(t)
		mockParser := generator.NewMockSourceParser(controller)

		_, _, err := run(t, mockParser, "generate", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
		require.ErrorContains(t, err, "cannot read config")
	})
}

func TestDirectories(t *testing.T) {
	tests := []struct {
		args      []string
		dirs      []string
		recursive bool
	}{
		{nil, []string{}, false},
		{[]string{"pkg", "cmd"}, []string{"pkg", "cmd"}, false},
		{[]string{"./..."}, []string{"."}, true},
		{[]string{"..."}, []string{"."}, true},
		{[]string{"internal/...", "cmd"}, []string{"internal", "cmd"}, true},
	}

	for _, tt := range tests {
		dirs, recursive := directories(tt.args)
		require.Equal(t, tt.dirs, dirs)
		require.Equal(t, tt.recursive, recursive)
	}
}
