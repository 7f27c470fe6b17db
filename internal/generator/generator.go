package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"go/parser"
	"go/token"
	"io"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/semver"

	"github.com/denizgursoy/kesit/internal/config"
	"github.com/denizgursoy/kesit/internal/plan"
)

// StartGenerator writes one test file into every package directory holding
// kesit tests. Nothing is written when any test is invalid.
func StartGenerator(ctx context.Context, cfg *config.Config, codeParser SourceParser, dirs []string, stdout io.Writer) error {
	outputs, err := Collect(ctx, cfg, codeParser, dirs)
	if err != nil {
		return err
	}

	for _, output := range outputs {
		if err := write(cfg, output, stdout); err != nil {
			log.Println(err.Error())
			return err
		}
	}
	return nil
}

// Collect parses and plans every directory without writing anything. The
// diagnostics of all invalid tests are joined into the returned error.
func Collect(ctx context.Context, cfg *config.Config, codeParser SourceParser, dirs []string) ([]*Output, error) {
	sources, err := sourceDirectories(cfg, codeParser, dirs)
	if err != nil {
		return nil, err
	}

	outputs := make([]*Output, 0, len(sources))
	errs := make([]error, 0)
	for _, dir := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		suite, err := codeParser.ParseDirectory(ctx, dir, cfg.Pattern)
		if err != nil {
			errs = append(errs, err)
			if suite == nil {
				continue
			}
		}
		if len(suite.Tests) == 0 {
			log.Printf("warning: no kesit tests in %s", dir)
			continue
		}

		tests, testErrs := plan.BuildAll(suite)
		errs = append(errs, testErrs...)

		output := &Output{
			ConfigFunctions:    suite.ConfigFunctions,
			HooksFunctions:     suite.HooksFunctions,
			Tests:              tests,
			Dir:                dir,
			PackageName:        suite.PackageName,
			CurrentPackagePath: suite.PackagePath,
		}
		if err := output.detectPackage(cfg.Output); err != nil {
			log.Printf("warning: could not detect package: %v", err)
		}
		outputs = append(outputs, output)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return outputs, nil
}

// CaseCount is the number of generated cases.
func (o *Output) CaseCount() int {
	return lo.SumBy(o.Tests, func(test *plan.Test) int {
		return len(test.Entries)
	})
}

func sourceDirectories(cfg *config.Config, codeParser SourceParser, dirs []string) ([]string, error) {
	if len(dirs) == 0 {
		directory, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dirs = []string{directory}
	}
	if !cfg.Recursive {
		return dirs, nil
	}

	sources := make([]string, 0)
	for _, root := range dirs {
		found, err := codeParser.Directories(root, cfg.Pattern)
		if err != nil {
			return nil, err
		}
		sources = append(sources, found...)
	}
	return lo.Uniq(sources), nil
}

func write(cfg *config.Config, output *Output, stdout io.Writer) error {
	target := filepath.Join(output.Dir, cfg.Output)

	var buf bytes.Buffer
	if err := output.Generate(&buf); err != nil {
		return fmt.Errorf("cannot generate %s: %w", target, err)
	}

	if cfg.DryRun {
		_, err := fmt.Fprintf(stdout, "// %s\n%s", target, buf.String())
		return err
	}
	if err := os.WriteFile(target, buf.Bytes(), 0o644); err != nil {
		return err
	}
	log.Printf("%s: %d test(s), %d case(s)", target, len(output.Tests), output.CaseCount())
	return nil
}

// detectPackage fills the package name and the full import path the parser
// left empty. generated is skipped when reading package clauses.
func (o *Output) detectPackage(generated string) error {
	if o.PackageName == "" {
		pkgName, err := detectPackageName(o.Dir, generated)
		if err != nil {
			return err
		}
		o.PackageName = pkgName
	}

	if o.CurrentPackagePath == "" {
		pkgPath, err := detectImportPath(o.Dir)
		if err != nil {
			return err
		}
		o.CurrentPackagePath = pkgPath
	}
	return nil
}

// detectPackageName detects the Go package name for the given directory.
// It first tries to read the package clause from existing Go files.
// If no Go files exist, it falls back to deriving the name from the directory
// path (or the module path for the module root).
func detectPackageName(dir, generated string) (string, error) {
	fset := token.NewFileSet()
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("cannot read directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") {
			continue
		}
		// Skip the files we generate
		if name == generated {
			continue
		}

		filePath := filepath.Join(dir, name)
		f, parseErr := parser.ParseFile(fset, filePath, nil, parser.PackageClauseOnly)
		if parseErr != nil {
			continue
		}
		if f.Name != nil && f.Name.Name != "" {
			return f.Name.Name, nil
		}
	}

	// No Go files found, derive package name from directory or module path.
	return packageNameFromDir(dir)
}

// packageNameFromDir names a package without Go files after its directory, or
// after the module path at the module root.
func packageNameFromDir(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	raw := filepath.Base(absDir)
	if root, modulePath, err := findModule(absDir); err == nil && root == absDir {
		raw = moduleBase(modulePath)
	}
	if name := sanitizePackageName(raw); name != "" {
		return name, nil
	}
	return "", fmt.Errorf("cannot derive package name from directory %s", dir)
}

// moduleBase is the last element of a module path that is not a major version
// suffix.
func moduleBase(modulePath string) string {
	elems := strings.Split(modulePath, "/")
	last := elems[len(elems)-1]
	if len(elems) > 1 && semver.IsValid(last) && semver.Major(last) == last {
		return elems[len(elems)-2]
	}
	return last
}

// sanitizePackageName lowercases raw and keeps what a package name allows.
// Hyphens and dots become underscores; a leading digit gets an underscore.
func sanitizePackageName(raw string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r == '-' || r == '.':
			return '_'
		case r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r - 'A' + 'a'
		}
		return -1
	}, strings.TrimLeft(raw, "-."))

	if name != "" && name[0] >= '0' && name[0] <= '9' {
		name = "_" + name
	}
	return name
}

// detectImportPath is the module path joined with the directory relative to
// the module root.
func detectImportPath(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	root, modulePath, err := findModule(absDir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(root, absDir)
	if err != nil {
		return "", err
	}
	return path.Join(modulePath, filepath.ToSlash(rel)), nil
}

// findModule returns the directory of the closest go.mod at or above absDir
// and the module path it declares.
func findModule(absDir string) (string, string, error) {
	for current := absDir; ; {
		goModPath := filepath.Join(current, "go.mod")
		data, err := os.ReadFile(goModPath)
		if err == nil {
			modulePath := modfile.ModulePath(data)
			if modulePath == "" {
				return "", "", fmt.Errorf("cannot parse go.mod: no module path in %s", goModPath)
			}
			return current, modulePath, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", "", fmt.Errorf("go.mod not found in any parent of %s", absDir)
		}
		current = parent
	}
}
