package generator

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestManifest(t *testing.T) {
	output := sampleOutput(t)
	output.Dir = "/src/sample"
	manifest := NewManifest([]*Output{output})

	t.Run("should list every entry", func(t *testing.T) {
		require.Len(t, manifest.Packages, 1)
		pkg := manifest.Packages[0]
		require.Equal(t, "example.com/sample", pkg.Package)
		require.Equal(t, "/src/sample", pkg.Dir)
		require.Len(t, pkg.Tests, 3)

		sizes := pkg.Tests[0]
		require.Equal(t, "sizes", sizes.Name)
		require.Equal(t, "sample_test.go:16", sizes.Source)
		require.Equal(t, []string{"@db"}, sizes.Tags)
		require.Len(t, sizes.Entries, 4)
		require.Equal(t, "TestKesit/sizes/inputs_0_0/stored", sizes.Entries[0].Name)
		require.Equal(t, "a", sizes.Entries[0].Bindings[0].Name)
		require.Equal(t, "1", sizes.Entries[0].Bindings[0].Value)

		values := pkg.Tests[2]
		require.Equal(t, []string{"TestKesit/values"}, []string{values.Entries[0].Name})
		require.Empty(t, values.Entries[0].Bindings)
		require.Empty(t, values.Entries[0].Path)
	})

	t.Run("should encode yaml", func(t *testing.T) {
		buf := &bytes.Buffer{}
		require.NoError(t, manifest.WriteYAML(buf))
		require.Contains(t, buf.String(), "name: TestKesit/sizes/inputs_1_0/parsed\n")
		require.Contains(t, buf.String(), "path: [1]\n")

		decoded := &Manifest{}
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), decoded))
		require.Len(t, decoded.Packages, 1)
		require.Len(t, decoded.Packages[0].Tests, 3)
		require.Equal(t, manifest.Packages[0].Tests[0].Entries, decoded.Packages[0].Tests[0].Entries)
	})

	t.Run("should print one run name per line", func(t *testing.T) {
		buf := &bytes.Buffer{}
		require.NoError(t, manifest.WriteText(buf))
		require.Equal(t, `example.com/sample	TestKesit/sizes/inputs_0_0/stored
example.com/sample	TestKesit/sizes/inputs_0_0/parsed
example.com/sample	TestKesit/sizes/inputs_1_0/stored
example.com/sample	TestKesit/sizes/inputs_1_0/parsed
example.com/sample	TestKesit/widths/type_0_const_0_input_0
example.com/sample	TestKesit/widths/type_1_const_0_input_0
example.com/sample	TestKesit/values
`, buf.String())
	})
}
