// Package runner executes the cases generated for kesit tests as go subtests.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	tagexpressions "github.com/cucumber/tag-expressions/go/v6"

	"github.com/denizgursoy/kesit/pkg/kesit"
)

var errAssertionFailed = errors.New("assertion failed")

type (
	// Test is one kesit test and every case generated for it.
	Test struct {
		Name   string
		Tags   []string
		Source string
		Cases  []kesit.Case
	}

	KesitRunner struct {
		t        TestingT
		config   *kesit.Config
		hooks    []*kesit.Hooks
		tests    []*Test
		names    map[string]bool
		errs     []error
		reporter kesit.Reporter

		ready    bool
		logger   kesit.Logger
		executor *kesit.HookExecutor
		halted   atomic.Bool

		mu        sync.Mutex
		results   []kesit.CaseResult
		startedAt time.Time
	}
)

func New(t TestingT) *KesitRunner {
	return &KesitRunner{
		t:      t,
		config: &kesit.Config{},
		names:  make(map[string]bool),
	}
}

func (r *KesitRunner) WithConfig(config *kesit.Config) *KesitRunner {
	if config != nil {
		r.config = config
	}

	return r
}

func (r *KesitRunner) WithHooks(hooks ...*kesit.Hooks) *KesitRunner {
	r.hooks = append(r.hooks, hooks...)

	return r
}

// WithReporter replaces the console reporter chosen from the config.
func (r *KesitRunner) WithReporter(reporter kesit.Reporter) *KesitRunner {
	r.reporter = reporter

	return r
}

func (r *KesitRunner) Register(test Test) *KesitRunner {
	if r.names[test.Name] {
		r.errs = append(r.errs, fmt.Errorf("kesit test %s registered more than once", test.Name))
		return r
	}
	r.names[test.Name] = true
	r.tests = append(r.tests, &test)

	return r
}

// Run starts one subtest per registered test. Cases whose test does not match
// the tag expression are recorded as skipped. The summary, the AfterAll hooks
// and the report run once every subtest, parallel ones included, finished.
func (r *KesitRunner) Run() error {
	if len(r.errs) > 0 {
		return errors.Join(r.errs...)
	}

	expression := parseTagsFromArgs()
	if expression == "" {
		expression = r.config.Tags
	}
	matches := func([]string) bool { return true }
	if expression != "" {
		evaluator, err := tagexpressions.Parse(expression)
		if err != nil {
			return fmt.Errorf("invalid tag expression %q: %w", expression, err)
		}
		matches = evaluator.Evaluate
	}

	r.setup()
	r.startedAt = time.Now()
	r.executor.ExecuteBeforeAll()
	r.t.Cleanup(r.finish)

	for _, test := range r.tests {
		if !matches(test.Tags) {
			r.logger.Debug("test filtered by tags", "test", test.Name, "tags", expression)
			for _, c := range test.Cases {
				r.skip(test, c)
			}
			continue
		}

		r.reporter.TestStart(test.Name)
		r.t.Run(test.Name, func(t *testing.T) {
			r.runLevel(t, test, test.Cases, 0)
		})
	}

	return nil
}

// Result returns the results recorded so far.
func (r *KesitRunner) Result() kesit.RunResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := kesit.RunResult{
		Cases:     append([]kesit.CaseResult(nil), r.results...),
		StartedAt: r.startedAt,
	}
	if !r.startedAt.IsZero() {
		result.Duration = time.Since(r.startedAt)
	}
	for _, c := range r.results {
		result.Summary.CasesTotal++
		switch c.Status {
		case kesit.CasePassed:
			result.Summary.CasesPassed++
		case kesit.CaseFailed:
			result.Summary.CasesFailed++
		case kesit.CaseAborted:
			result.Summary.CasesAborted++
		case kesit.CaseSkipped:
			result.Summary.CasesSkipped++
		}
	}
	return result
}

func (r *KesitRunner) setup() {
	if r.ready {
		return
	}
	r.ready = true

	switch {
	case r.config.Logger != nil:
		r.logger = r.config.Logger
	case r.config.DisableLog:
		r.logger = kesit.NewNoopLogger()
	default:
		r.logger = slog.New(slog.NewTextHandler(os.Stdout, nil))
	}

	if r.reporter == nil {
		if r.config.DisableReporter {
			r.reporter = kesit.NewNoopConsoleReporter()
		} else {
			r.reporter = kesit.NewConsoleReporter(!r.config.NoColor)
		}
	}

	r.executor = kesit.NewHookExecutor(r.hooks...)
}

// runLevel creates one subtest per distinct name segment at depth, keeping the
// order in which the cases were generated.
func (r *KesitRunner) runLevel(t *testing.T, test *Test, cases []kesit.Case, depth int) {
	order := make([]string, 0)
	groups := make(map[string][]kesit.Case)
	for _, c := range cases {
		if len(c.Name) == depth {
			r.runLeaf(t, test, c)
			continue
		}
		segment := c.Name[depth]
		if _, ok := groups[segment]; !ok {
			order = append(order, segment)
		}
		groups[segment] = append(groups[segment], c)
	}

	for _, segment := range order {
		group := groups[segment]
		t.Run(segment, func(t *testing.T) {
			r.runLevel(t, test, group, depth+1)
		})
	}
}

func (r *KesitRunner) runLeaf(t *testing.T, test *Test, c kesit.Case) {
	if r.config.Parallel {
		t.Parallel()
	}
	if r.halted.Load() {
		r.skip(test, c)
		t.Skip("skipped after an earlier failure")
		return
	}
	r.dispatch(t, test, c)
}

// dispatch runs the body of one case and records its outcome. The outcome is
// recorded from a deferred function because FailNow unwinds the body with
// runtime.Goexit.
func (r *KesitRunner) dispatch(t kesit.T, test *Test, c kesit.Case) {
	started := time.Now()
	base := context.Background()
	if withContext, ok := t.(interface{ Context() context.Context }); ok {
		base = withContext.Context()
	}

	ctx := kesit.New(
		kesit.WithContext(base),
		kesit.WithTestingT(t),
		kesit.WithLogger(r.logger),
		kesit.WithHooks(r.executor),
		kesit.WithTest(test.Name),
		kesit.WithPath(c.Path),
		kesit.WithGate(r.config.NewGate(c.Path)),
	)
	info := kesit.CaseInfo{
		ID:       ctx.ID(),
		Test:     test.Name,
		Name:     c.FullName(test.Name),
		Tags:     test.Tags,
		Path:     c.Path,
		Bindings: c.Bindings,
	}

	var err error
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("panic: %v", recovered)
		}

		status, caseErr := outcome(t, err)
		if err != nil {
			if test.Source != "" {
				t.Errorf("%s: %v\n\tdeclared at %s", info.Name, err, test.Source)
			} else {
				t.Errorf("%s: %v", info.Name, err)
			}
		}
		r.executor.ExecuteAfterCase(info, caseErr)

		duration := time.Since(started)
		label := caseLabel(test, c)
		switch status {
		case kesit.CasePassed:
			r.reporter.CasePassed(label, duration)
		case kesit.CaseFailed:
			r.reporter.CaseFailed(label, caseErr.Error(), duration)
		case kesit.CaseAborted:
			r.reporter.CaseAborted(label, caseErr.Error())
		}
		if status != kesit.CasePassed && r.config.FailFast {
			r.halted.Store(true)
		}

		result := kesit.CaseResult{
			ID:        info.ID,
			Test:      test.Name,
			Name:      info.Name,
			Tags:      test.Tags,
			Path:      c.Path,
			Bindings:  c.Bindings,
			Status:    status,
			Duration:  duration,
			StartedAt: started,
		}
		if caseErr != nil {
			result.Error = caseErr.Error()
		}
		r.record(result)
	}()

	r.executor.ExecuteBeforeCase(info)
	if c.Body == nil {
		return
	}
	err = c.Body(ctx)
}

func outcome(t kesit.T, err error) (kesit.CaseStatus, error) {
	var fixtureErr *kesit.FixtureError
	switch {
	case errors.As(err, &fixtureErr):
		return kesit.CaseAborted, err
	case err != nil:
		return kesit.CaseFailed, err
	case t.Failed():
		return kesit.CaseFailed, errAssertionFailed
	default:
		return kesit.CasePassed, nil
	}
}

func (r *KesitRunner) skip(test *Test, c kesit.Case) {
	r.reporter.CaseSkipped(caseLabel(test, c))
	r.record(kesit.CaseResult{
		Test:     test.Name,
		Name:     c.FullName(test.Name),
		Tags:     test.Tags,
		Path:     c.Path,
		Bindings: c.Bindings,
		Status:   kesit.CaseSkipped,
	})
}

func (r *KesitRunner) record(result kesit.CaseResult) {
	r.reporter.AddCaseResult(result.Status)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, result)
}

func (r *KesitRunner) finish() {
	r.executor.ExecuteAfterAll()

	if printer, ok := r.reporter.(interface{ PrintSummary() }); ok {
		printer.PrintSummary()
	}
	r.reporter.Flush()

	if r.config.ReportFile == "" && r.config.HTMLReportFile == "" {
		return
	}
	result := r.Result()
	if r.config.ReportFile != "" {
		if err := result.WriteReport(r.config.ReportFile); err != nil {
			r.t.Errorf("%v", err)
		}
	}
	if r.config.HTMLReportFile != "" {
		if err := kesit.GenerateHTMLReport(r.config.HTMLReportFile, result); err != nil {
			r.t.Errorf("%v", err)
		}
	}
}

// caseLabel is the case name printed below the test header.
func caseLabel(test *Test, c kesit.Case) string {
	if len(c.Name) == 0 {
		return test.Name
	}
	return strings.Join(c.Name, "/")
}

// parseTagsFromArgs reads --tags from the command line, in either the
// `--tags expr` or the `--tags=expr` form.
func parseTagsFromArgs() string {
	args := os.Args[1:]
	for i, arg := range args {
		if value, ok := strings.CutPrefix(arg, "--tags="); ok {
			return value
		}
		if arg == "--tags" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}
