package kesit

// Config holds runtime configuration settings for kesit.
// Settings are merged from all discovered config functions (last wins).
// The --tags command line argument always overrides Tags.
type Config struct {
	// FailFast skips the remaining cases after the first failed or aborted one.
	FailFast bool

	// NoColor disables colored output.
	NoColor bool

	// DisableLog disables the structured logger (ctx.Logger()) used within
	// test bodies. When true, a no-op logger that discards all messages
	// is injected instead of the default slog logger.
	DisableLog bool

	// DisableReporter disables the case and summary lines of the reporter.
	DisableReporter bool

	// Parallel runs every leaf case with t.Parallel().
	Parallel bool

	// StatelessGates gates sections with PrefixGate instead of CountingGate.
	StatelessGates bool

	// Tags is a tag expression such as "@smoke and not @slow".
	Tags string

	// ReportFile receives the YAML run report when set.
	ReportFile string

	// HTMLReportFile receives a self-contained HTML report when set.
	HTMLReportFile string

	// Logger sets a custom logger. If nil, default slog logger is used.
	Logger Logger
}

// MergeConfigs combines multiple configs into one.
// Later configs override earlier ones (last wins).
func MergeConfigs(configs ...*Config) *Config {
	result := &Config{}

	for _, cfg := range configs {
		if cfg == nil {
			continue
		}

		if cfg.FailFast {
			result.FailFast = true
		}
		if cfg.NoColor {
			result.NoColor = true
		}
		if cfg.DisableLog {
			result.DisableLog = true
		}
		if cfg.DisableReporter {
			result.DisableReporter = true
		}
		if cfg.Parallel {
			result.Parallel = true
		}
		if cfg.StatelessGates {
			result.StatelessGates = true
		}
		if cfg.Tags != "" {
			result.Tags = cfg.Tags
		}
		if cfg.ReportFile != "" {
			result.ReportFile = cfg.ReportFile
		}
		if cfg.HTMLReportFile != "" {
			result.HTMLReportFile = cfg.HTMLReportFile
		}
		if cfg.Logger != nil {
			result.Logger = cfg.Logger
		}
	}

	return result
}

// NewGate builds the gate the configuration asks for.
func (c *Config) NewGate(path Path) Gate {
	if c != nil && c.StatelessGates {
		return NewPrefixGate(path)
	}
	return NewCountingGate(path)
}
