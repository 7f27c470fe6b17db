package generator

import (
	"fmt"
	"io"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/denizgursoy/kesit/internal/matrix"
	"github.com/denizgursoy/kesit/internal/plan"
	"github.com/denizgursoy/kesit/pkg/kesit"
)

type (
	// Manifest lists every generated case without running anything.
	Manifest struct {
		Packages []PackageManifest `yaml:"packages"`
	}

	PackageManifest struct {
		Package string         `yaml:"package"`
		Dir     string         `yaml:"dir"`
		Tests   []TestManifest `yaml:"tests"`
	}

	TestManifest struct {
		Name    string          `yaml:"name"`
		Source  string          `yaml:"source,omitempty"`
		Tags    []string        `yaml:"tags,omitempty"`
		Entries []EntryManifest `yaml:"entries"`
	}

	EntryManifest struct {
		Name     string          `yaml:"name"`
		Bindings []kesit.Binding `yaml:"bindings,omitempty"`
		Path     kesit.Path      `yaml:"path,flow,omitempty"`
	}
)

func NewManifest(outputs []*Output) *Manifest {
	return &Manifest{
		Packages: lo.Map(outputs, func(o *Output, _ int) PackageManifest {
			return PackageManifest{
				Package: o.CurrentPackagePath,
				Dir:     o.Dir,
				Tests:   lo.Map(o.Tests, func(t *plan.Test, _ int) TestManifest { return testManifest(t) }),
			}
		}),
	}
}

func testManifest(test *plan.Test) TestManifest {
	return TestManifest{
		Name:   test.Decl.Name,
		Source: sourceOf(test.Decl),
		Tags:   test.Decl.Tags,
		Entries: lo.Map(test.Entries, func(e plan.Entry, _ int) EntryManifest {
			return EntryManifest{
				Name: TestFunctionName + "/" + e.Name,
				Bindings: lo.Map(e.Binding.All(), func(a matrix.Assignment, _ int) kesit.Binding {
					return kesit.Binding{Name: a.Axis, Value: a.Value.Source}
				}),
				Path: kesit.Path(e.Path),
			}
		}),
	}
}

// WriteYAML encodes the manifest as a YAML document.
func (m *Manifest) WriteYAML(w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(m); err != nil {
		return fmt.Errorf("cannot encode manifest: %w", err)
	}
	return encoder.Close()
}

// WriteText prints one `go test -run` name per line.
func (m *Manifest) WriteText(w io.Writer) error {
	for _, pkg := range m.Packages {
		for _, test := range pkg.Tests {
			for _, entry := range test.Entries {
				if _, err := fmt.Fprintf(w, "%s\t%s\n", pkg.Package, entry.Name); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
