// Package app wires the kesit command line.
package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/denizgursoy/kesit/internal/config"
	"github.com/denizgursoy/kesit/internal/generator"
)

const (
	formatYAML = "yaml"
	formatText = "text"
)

// StartApplication runs the kesit command line with args.
func StartApplication(ctx context.Context, newParser ParserFactory, args []string, stdout io.Writer) error {
	root := NewRootCommand(newParser)
	root.SetArgs(args)
	root.SetOut(stdout)
	return root.ExecuteContext(ctx)
}

// NewRootCommand builds `kesit` with its generate and list commands.
func NewRootCommand(newParser ParserFactory) *cobra.Command {
	flags := &config.Flags{}

	root := &cobra.Command{
		Use:   "kesit",
		Short: "Generate go tests from sectioned, parameterized kesit tests",
		Long: `kesit reads functions annotated with // @kesit directives and writes a
test file that runs every parameter binding and every leaf section as its
own go subtest.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&flags.Config, "config", "c", "", "configuration file (default "+config.DefaultFile+")")
	root.PersistentFlags().BoolVarP(&flags.Recursive, "recursive", "r", false, "walk every package below the given directories")
	root.PersistentFlags().StringVarP(&flags.Pattern, "pattern", "p", "", "files parsed in a package (default "+config.DefaultPattern+")")
	root.PersistentFlags().StringSliceVarP(&flags.Exclude, "exclude", "e", nil, "doublestar patterns of files to skip")
	root.PersistentFlags().StringVarP(&flags.Output, "output", "o", "", "generated file name (default "+config.DefaultOutput+")")

	root.AddCommand(newGenerateCommand(flags, newParser), newListCommand(flags, newParser))

	return root
}

func newGenerateCommand(flags *config.Flags, newParser ParserFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [directories...]",
		Short: "Write the generated test file into every package with kesit tests",
		Long: `Write the generated test file into every package with kesit tests.

Without directories the working directory is used. Nothing is written when any
kesit test is invalid; every diagnostic is printed.

Examples:
  # Generate for the current package
  kesit generate

  # Generate for every package of the module
  kesit generate ./...`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dirs, recursive := directories(args)
			flags.Recursive = flags.Recursive || recursive
			cfg, err := config.Load(*flags)
			if err != nil {
				return err
			}
			return generator.StartGenerator(cmd.Context(), cfg, newParser(cfg), dirs, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "print the generated code instead of writing it")

	return cmd
}

func newListCommand(flags *config.Flags, newParser ParserFactory) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list [directories...]",
		Short: "List every generated case without writing anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatYAML && format != formatText {
				return fmt.Errorf("unknown format %q, use %s or %s", format, formatYAML, formatText)
			}
			dirs, recursive := directories(args)
			flags.Recursive = flags.Recursive || recursive
			cfg, err := config.Load(*flags)
			if err != nil {
				return err
			}
			outputs, err := generator.Collect(cmd.Context(), cfg, newParser(cfg), dirs)
			if err != nil {
				return err
			}

			manifest := generator.NewManifest(outputs)
			if format == formatText {
				return manifest.WriteText(cmd.OutOrStdout())
			}
			return manifest.WriteYAML(cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatYAML, "output format, yaml or text")

	return cmd
}

// directories accepts the go tool's `dir/...` form, which asks for a
// recursive walk of dir.
func directories(args []string) ([]string, bool) {
	dirs := make([]string, 0, len(args))
	recursive := false
	for _, arg := range args {
		if trimmed, ok := strings.CutSuffix(arg, "..."); ok {
			recursive = true
			arg = strings.TrimSuffix(trimmed, "/")
			if arg == "" {
				arg = "."
			}
		}
		dirs = append(dirs, arg)
	}
	return dirs, recursive
}
