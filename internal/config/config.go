package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Config holds the configuration of the kesit command
type Config struct {
	// Output is the file written into every package with kesit tests
	Output string `yaml:"output"`
	// Pattern selects the files parsed in a package directory
	Pattern string `yaml:"pattern"`
	// Recursive generates for every package below the given directories
	Recursive bool `yaml:"recursive"`
	// Exclude lists doublestar patterns of files to skip
	Exclude []string `yaml:"exclude"`

	// DryRun prints the generated code instead of writing it. Flag only.
	DryRun bool `yaml:"-"`
}

// Flags holds command-line flags. Zero values leave the loaded settings alone.
type Flags struct {
	Config    string
	Output    string
	Pattern   string
	Recursive bool
	Exclude   []string
	DryRun    bool
}

// New creates a new Config with defaults
func New() *Config {
	return &Config{
		Output:  DefaultOutput,
		Pattern: DefaultPattern,
		Exclude: slices.Clone(DefaultExclude),
	}
}

// Load reads the configuration file named by the flags, or DefaultFile when it
// exists, and applies the flags on top.
func Load(flags Flags) (*Config, error) {
	cfg := New()

	path, required := flags.Config, true
	if path == "" {
		path, required = DefaultFile, false
	}
	if err := cfg.readFile(path); err != nil {
		if required || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	if flags.Output != "" {
		cfg.Output = flags.Output
	}
	if flags.Pattern != "" {
		cfg.Pattern = flags.Pattern
	}
	if flags.Recursive {
		cfg.Recursive = true
	}
	if len(flags.Exclude) > 0 {
		cfg.Exclude = append(cfg.Exclude, flags.Exclude...)
	}
	cfg.DryRun = flags.DryRun

	return cfg, cfg.Validate()
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("cannot parse config %s: %w", path, err)
	}
	return nil
}

// Validate rejects settings the generator cannot work with
func (c *Config) Validate() error {
	if c.Output == "" {
		return errors.New("output file name must not be empty")
	}
	if c.Pattern == "" {
		return errors.New("file pattern must not be empty")
	}
	return nil
}
