package kesit

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// testGroup holds the cases of one kesit test.
type testGroup struct {
	Test     string
	Tags     []string
	Count    int
	Duration time.Duration
	Cases    []CaseResult
}

// statusSection holds the cases sharing one status, grouped by test.
type statusSection struct {
	Label    string
	CSSClass string
	Count    int
	Duration time.Duration
	Tests    []testGroup
}

// reportData is the view model passed to the HTML template.
type reportData struct {
	Summary       ReporterSummary
	TotalDuration time.Duration
	ExecutedAt    time.Time
	Sections      []statusSection
}

func sumDurations(cases []CaseResult) time.Duration {
	var total time.Duration
	for _, c := range cases {
		total += c.Duration
	}
	return total
}

// buildReportData orders sections failed, aborted, passed then skipped.
func buildReportData(result RunResult) reportData {
	byStatus := make(map[CaseStatus][]CaseResult)
	for _, c := range result.Cases {
		byStatus[c.Status] = append(byStatus[c.Status], c)
	}

	var sections []statusSection
	for _, status := range []CaseStatus{CaseFailed, CaseAborted, CasePassed, CaseSkipped} {
		cases := byStatus[status]
		if len(cases) == 0 {
			continue
		}
		sections = append(sections, statusSection{
			Label:    statusLabel(status),
			CSSClass: status.String(),
			Count:    len(cases),
			Duration: sumDurations(cases),
			Tests:    groupByTest(cases),
		})
	}

	return reportData{
		Summary:       result.Summary,
		TotalDuration: result.Duration,
		ExecutedAt:    result.StartedAt,
		Sections:      sections,
	}
}

func statusLabel(status CaseStatus) string {
	switch status {
	case CaseFailed:
		return "Failed Cases"
	case CaseAborted:
		return "Aborted Cases"
	case CaseSkipped:
		return "Skipped Cases"
	default:
		return "Passed Cases"
	}
}

// groupByTest keeps the run order of cases inside a test and sorts the tests
// by name.
func groupByTest(cases []CaseResult) []testGroup {
	groups := make(map[string][]CaseResult)
	for _, c := range cases {
		groups[c.Test] = append(groups[c.Test], c)
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]testGroup, 0, len(names))
	for _, name := range names {
		cases := groups[name]
		result = append(result, testGroup{
			Test:     name,
			Tags:     cases[0].Tags,
			Count:    len(cases),
			Duration: sumDurations(cases),
			Cases:    cases,
		})
	}
	return result
}

func reportDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.0fµs", float64(d)/float64(time.Microsecond))
	}
	if d < time.Second {
		return fmt.Sprintf("%.0fms", float64(d)/float64(time.Millisecond))
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}

// GenerateHTMLReport writes a self-contained HTML report of a run to path.
func GenerateHTMLReport(path string, result RunResult) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("could not create report directory %q: %w", dir, err)
		}
	}

	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"formatDuration": reportDuration,
		"summaryClass": func(s ReporterSummary) string {
			if s.CasesFailed+s.CasesAborted > 0 {
				return "has-failures"
			}
			return "all-passed"
		},
		"formatTime": func(t time.Time) string {
			return t.Format("2006-01-02 15:04:05")
		},
	}).Parse(htmlTemplate)
	if err != nil {
		return fmt.Errorf("could not parse HTML template: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create report file %q: %w", path, err)
	}
	defer f.Close()

	if err := tmpl.Execute(f, buildReportData(result)); err != nil {
		return fmt.Errorf("could not render HTML report: %w", err)
	}
	return nil
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>kesit report</title>
<style>
  *, *::before, *::after { box-sizing: border-box; margin: 0; padding: 0; }
  body {
    font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
    background: #f8f9fa; color: #212529; line-height: 1.6; padding: 2rem;
  }
  h1 { font-size: 1.5rem; margin-bottom: 0.25rem; font-weight: 700; }
  .executed-at { font-size: 0.8rem; color: #868e96; margin-bottom: 1.5rem; }
  .summary {
    display: flex; gap: 1rem; flex-wrap: wrap; margin-bottom: 2rem;
    padding: 1rem 1.25rem; background: #fff; border-radius: 10px;
  }
  .summary.all-passed { border: 2px solid #2b8a3e; background: #f6fef7; }
  .summary.has-failures { border: 2px solid #c92a2a; background: #fff5f5; }
  .summary-item { text-align: center; min-width: 90px; }
  .summary-item .number { font-size: 1.8rem; font-weight: 700; }
  .summary-item .label { font-size: 0.7rem; text-transform: uppercase; color: #868e96; }
  .number.green { color: #2b8a3e; }
  .number.red { color: #c92a2a; }
  .number.magenta { color: #ae3ec9; }
  .number.yellow { color: #e67700; }
  .number.blue { color: #1864ab; }
  .section { margin-bottom: 2rem; }
  .section-header {
    font-size: 1.1rem; font-weight: 700; margin-bottom: 0.75rem;
    padding-bottom: 0.4rem; border-bottom: 2px solid #dee2e6;
  }
  .section-meta { font-size: 0.8rem; font-weight: 500; color: #868e96; }
  .section.failed .section-header { color: #c92a2a; }
  .section.aborted .section-header { color: #ae3ec9; }
  .section.passed .section-header { color: #2b8a3e; }
  .section.skipped .section-header { color: #e67700; }
  .test { margin-bottom: 1.25rem; }
  .test-label { font-size: 0.9rem; font-weight: 600; color: #495057; margin-bottom: 0.4rem; }
  .test-meta { font-size: 0.75rem; font-weight: 400; color: #868e96; }
  .tag {
    background: #e9ecef; border-radius: 4px; padding: 0.1rem 0.45rem;
    font-size: 0.68rem; color: #495057; font-weight: 500;
  }
  .case {
    margin-bottom: 0.5rem; background: #fff; border-radius: 8px;
    border: 1px solid #e9ecef; padding: 0.6rem 1rem;
  }
  .case.passed { border-left: 4px solid #69db7c; }
  .case.failed { border-left: 4px solid #ff6b6b; }
  .case.aborted { border-left: 4px solid #da77f2; }
  .case.skipped { border-left: 4px solid #ffd43b; }
  .case-header { display: flex; justify-content: space-between; }
  .case-name { font-weight: 600; font-size: 0.85rem; font-family: "SF Mono", monospace; }
  .case-meta { font-size: 0.78rem; color: #868e96; }
  .binding { font-family: "SF Mono", monospace; font-size: 0.78rem; color: #1864ab; margin-right: 0.75rem; }
  .case-error {
    color: #ff4444; background: #2c1a1a; border-radius: 4px; margin-top: 0.3rem;
    padding: 0.3rem 0.5rem; font-size: 0.78rem; white-space: pre-wrap;
  }
  .empty-msg { color: #868e96; font-style: italic; padding: 1rem 0; text-align: center; }
</style>
</head>
<body>
<h1>kesit report</h1>
{{if not .ExecutedAt.IsZero}}<div class="executed-at">Executed at {{formatTime .ExecutedAt}}</div>{{end}}

<div class="summary {{summaryClass .Summary}}">
  <div class="summary-item"><div class="number blue">{{.Summary.CasesTotal}}</div><div class="label">Cases</div></div>
  <div class="summary-item"><div class="number green">{{.Summary.CasesPassed}}</div><div class="label">Passed</div></div>
  <div class="summary-item"><div class="number red">{{.Summary.CasesFailed}}</div><div class="label">Failed</div></div>
  <div class="summary-item"><div class="number magenta">{{.Summary.CasesAborted}}</div><div class="label">Aborted</div></div>
  <div class="summary-item"><div class="number yellow">{{.Summary.CasesSkipped}}</div><div class="label">Skipped</div></div>
  <div class="summary-item"><div class="number blue">{{formatDuration .TotalDuration}}</div><div class="label">Duration</div></div>
</div>

{{if not .Sections}}<div class="empty-msg">No cases were executed.</div>{{end}}

{{range .Sections}}
<div class="section {{.CSSClass}}">
  <div class="section-header">{{.Label}} <span class="section-meta">{{.Count}} cases, {{formatDuration .Duration}}</span></div>
  {{range .Tests}}
  <div class="test">
    <div class="test-label">{{.Test}} <span class="test-meta">({{.Count}} cases, {{formatDuration .Duration}})</span> {{range .Tags}}<span class="tag">{{.}}</span> {{end}}</div>
    {{range .Cases}}
    <div class="case {{.Status}}">
      <div class="case-header">
        <span class="case-name">{{.Name}}</span>
        <span class="case-meta">path {{.Path}} &middot; {{formatDuration .Duration}}</span>
      </div>
      {{range .Bindings}}<span class="binding">{{.Name}} = {{.Value}}</span>{{end}}
      {{if .Error}}<div class="case-error">{{.Error}}</div>{{end}}
    </div>
    {{end}}
  </div>
  {{end}}
</div>
{{end}}
</body>
</html>
`
