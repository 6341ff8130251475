package replay

import (
	"fmt"
	"strings"

	"github.com/danielpatrickdp/behavior-twin/internal/behavior"
	"github.com/danielpatrickdp/behavior-twin/internal/cluster"
	"github.com/danielpatrickdp/behavior-twin/internal/feature"
	"github.com/danielpatrickdp/behavior-twin/internal/forecast"
	"github.com/danielpatrickdp/behavior-twin/internal/twin"
)

// #region report

// Check is one fixture assertion's outcome.
type Check struct {
	Name   string
	Pass   bool
	Detail string
}

// Report bundles all checks from a fixture run.
type Report struct {
	Checks []Check
	Passed bool
}

// Lines renders the report for terminal output.
func (r Report) Lines() []string {
	lines := make([]string, 0, len(r.Checks))
	for _, c := range r.Checks {
		status := "PASS"
		if !c.Pass {
			status = "FAIL"
		}
		lines = append(lines, fmt.Sprintf("[%s] %s: %s", status, c.Name, c.Detail))
	}
	return lines
}

// #endregion report

// #region run

// Run replays a fixture through the default batch pipeline and compares
// the outcome against the fixture's expectations.
func Run(f Fixture) Report {
	obs := f.Observations
	analysis := behavior.Analyze(obs, cluster.DefaultEngine())
	features := feature.Build(obs, analysis.Labels)
	hourAhead := forecast.NewChain(forecast.DefaultConfig()).Run(features)
	t := twin.Build(obs, analysis, hourAhead, twin.DefaultConfig())

	report := Report{Passed: true}
	record := func(name string, pass bool, detail string) {
		report.Checks = append(report.Checks, Check{Name: name, Pass: pass, Detail: detail})
		if !pass {
			report.Passed = false
		}
	}

	if f.Expected.Algorithm != "" {
		pass := strings.HasPrefix(analysis.Algorithm, f.Expected.Algorithm)
		record("algorithm", pass,
			fmt.Sprintf("want prefix %q, got %q", f.Expected.Algorithm, analysis.Algorithm))
	}

	if len(f.Expected.Archetypes) > 0 {
		present := make(map[string]bool, len(analysis.Clusters))
		for _, p := range analysis.Clusters {
			present[p.Label] = true
		}
		for _, want := range f.Expected.Archetypes {
			record("archetype:"+want, present[want],
				fmt.Sprintf("archetypes present: %s", archetypeList(present)))
		}
	}

	if f.Expected.Predicted != "" {
		pass := t.ShortTerm.Predicted == f.Expected.Predicted
		record("predicted", pass,
			fmt.Sprintf("want %q, got %q", f.Expected.Predicted, t.ShortTerm.Predicted))
	}

	if f.Expected.MinInsights > 0 {
		pass := len(t.Insights) >= f.Expected.MinInsights
		record("insights", pass,
			fmt.Sprintf("want >= %d lines, got %d", f.Expected.MinInsights, len(t.Insights)))
	}

	return report
}

func archetypeList(present map[string]bool) string {
	names := make([]string, 0, len(present))
	for name := range present {
		names = append(names, name)
	}
	return strings.Join(names, ", ")
}

// #endregion run
