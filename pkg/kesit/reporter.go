//go:generate mockgen -source=reporter.go -destination=reporter_mock.go -package=kesit
package kesit

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Symbols for case status
const (
	symbolPass  = "✓"
	symbolFail  = "✗"
	symbolAbort = "!"
	symbolSkip  = "-"
)

// Reporter handles test execution output
type Reporter interface {
	TestStart(name string)

	CasePassed(name string, duration time.Duration)
	CaseFailed(name string, errMsg string, duration time.Duration)
	CaseAborted(name string, errMsg string)
	CaseSkipped(name string)

	// Summary
	AddCaseResult(status CaseStatus)

	// Output control
	Flush()
}

// ReporterSummary tracks test execution statistics
type ReporterSummary struct {
	CasesTotal   int `yaml:"total"`
	CasesPassed  int `yaml:"passed"`
	CasesFailed  int `yaml:"failed"`
	CasesAborted int `yaml:"aborted"`
	CasesSkipped int `yaml:"skipped"`
}

// ConsoleReporter prints colored lines. Lines are written whole under a lock so
// parallel cases do not interleave.
type ConsoleReporter struct {
	out      io.Writer
	disabled bool
	mu       sync.Mutex
	summary  ReporterSummary

	test    *color.Color
	passed  *color.Color
	failed  *color.Color
	aborted *color.Color
	skipped *color.Color
}

// NewConsoleReporter creates a reporter that prints directly to stdout
func NewConsoleReporter(useColors bool) *ConsoleReporter {
	return NewWriterReporter(os.Stdout, useColors)
}

// NewWriterReporter creates a reporter printing to out.
func NewWriterReporter(out io.Writer, useColors bool) *ConsoleReporter {
	r := &ConsoleReporter{
		out:     out,
		test:    color.New(color.FgHiWhite, color.Bold),
		passed:  color.New(color.FgGreen),
		failed:  color.New(color.FgRed),
		aborted: color.New(color.FgMagenta),
		skipped: color.New(color.FgYellow),
	}
	for _, c := range []*color.Color{r.test, r.passed, r.failed, r.aborted, r.skipped} {
		if useColors {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// NewNoopConsoleReporter creates a ConsoleReporter that suppresses all output.
// Summary statistics are still tracked.
func NewNoopConsoleReporter() *ConsoleReporter {
	r := NewWriterReporter(io.Discard, false)
	r.disabled = true
	return r
}

func (r *ConsoleReporter) writeln(s string) {
	if r.disabled {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.out, s)
}

// TestStart prints the test header
func (r *ConsoleReporter) TestStart(name string) {
	r.writeln("")
	r.writeln(r.test.Sprint(name))
}

func (r *ConsoleReporter) CasePassed(name string, duration time.Duration) {
	r.writeln(fmt.Sprintf("  %s %s %s", r.passed.Sprint(symbolPass), name, formatDuration(duration)))
}

// CaseFailed prints a failed case with its error message indented below it
func (r *ConsoleReporter) CaseFailed(name string, errMsg string, duration time.Duration) {
	r.writeln(fmt.Sprintf("  %s %s %s", r.failed.Sprint(symbolFail), name, formatDuration(duration)))
	r.writeIndented(r.failed, errMsg)
}

func (r *ConsoleReporter) CaseAborted(name string, errMsg string) {
	r.writeln(fmt.Sprintf("  %s %s", r.aborted.Sprint(symbolAbort), name))
	r.writeIndented(r.aborted, errMsg)
}

func (r *ConsoleReporter) CaseSkipped(name string) {
	r.writeln(fmt.Sprintf("  %s %s", r.skipped.Sprint(symbolSkip), r.skipped.Sprint(name)))
}

func (r *ConsoleReporter) writeIndented(c *color.Color, msg string) {
	if msg == "" {
		return
	}
	for _, line := range strings.Split(msg, "\n") {
		r.writeln(c.Sprint("      " + line))
	}
}

// AddCaseResult tracks case outcomes for the summary
func (r *ConsoleReporter) AddCaseResult(status CaseStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.summary.CasesTotal++
	switch status {
	case CasePassed:
		r.summary.CasesPassed++
	case CaseFailed:
		r.summary.CasesFailed++
	case CaseAborted:
		r.summary.CasesAborted++
	case CaseSkipped:
		r.summary.CasesSkipped++
	}
}

// GetSummary returns the current summary statistics
func (r *ConsoleReporter) GetSummary() ReporterSummary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.summary
}

// PrintSummary prints the final test summary
func (r *ConsoleReporter) PrintSummary() {
	summary := r.GetSummary()

	r.writeln("")
	line := fmt.Sprintf("%d case(s)", summary.CasesTotal)
	if summary.CasesTotal > 0 {
		parts := []string{}
		if summary.CasesPassed > 0 {
			parts = append(parts, r.passed.Sprintf("%d passed", summary.CasesPassed))
		}
		if summary.CasesFailed > 0 {
			parts = append(parts, r.failed.Sprintf("%d failed", summary.CasesFailed))
		}
		if summary.CasesAborted > 0 {
			parts = append(parts, r.aborted.Sprintf("%d aborted", summary.CasesAborted))
		}
		if summary.CasesSkipped > 0 {
			parts = append(parts, r.skipped.Sprintf("%d skipped", summary.CasesSkipped))
		}
		if len(parts) > 0 {
			line += " (" + strings.Join(parts, ", ") + ")"
		}
	}
	r.writeln(line)
}

func (r *ConsoleReporter) Flush() {
	if f, ok := r.out.(interface{ Sync() error }); ok {
		_ = f.Sync()
	}
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("(%s)", d.Round(time.Millisecond))
}

// noopReporter discards all output
type noopReporter struct{}

// NewNoopReporter creates a reporter that discards all output
func NewNoopReporter() Reporter {
	return &noopReporter{}
}

func (r *noopReporter) TestStart(name string)                                         {}
func (r *noopReporter) CasePassed(name string, duration time.Duration)                {}
func (r *noopReporter) CaseFailed(name string, errMsg string, duration time.Duration) {}
func (r *noopReporter) CaseAborted(name string, errMsg string)                        {}
func (r *noopReporter) CaseSkipped(name string)                                       {}
func (r *noopReporter) AddCaseResult(status CaseStatus)                               {}
func (r *noopReporter) Flush()                                                        {}
