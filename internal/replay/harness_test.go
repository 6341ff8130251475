package replay

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/danielpatrickdp/behavior-twin/internal/observation"
)

// #region fixtures

func alternatingFixture() Fixture {
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	obs := make([]observation.Observation, 8)
	for i := range obs {
		obs[i].TS = base.Add(time.Duration(i) * time.Minute)
		if i%2 == 0 {
			obs[i].Mode = "video"
			obs[i].Exe = "chrome.exe"
			obs[i].Title = "youtube video feed shorts"
		} else {
			obs[i].Mode = "coding"
			obs[i].Exe = "code.exe"
			obs[i].Title = "vscode debug refactor analysis"
		}
	}
	return Fixture{
		Description:  "alternating distraction and focus",
		Observations: obs,
		Expected: Expected{
			Algorithm:   "dbscan",
			Archetypes:  []string{"dopamine_scrolling", "deep_work"},
			MinInsights: 3,
		},
	}
}

// #endregion fixtures

// #region run-tests

func TestRun_PassingFixture(t *testing.T) {
	report := Run(alternatingFixture())
	if !report.Passed {
		t.Fatalf("fixture failed:\n%s", strings.Join(report.Lines(), "\n"))
	}
	if len(report.Checks) != 4 {
		t.Errorf("expected 4 checks, got %d", len(report.Checks))
	}
}

func TestRun_FailingExpectationReported(t *testing.T) {
	f := alternatingFixture()
	f.Expected.Archetypes = []string{"gaming_focus"}

	report := Run(f)
	if report.Passed {
		t.Fatal("expected the fixture to fail")
	}
	failed := 0
	for _, c := range report.Checks {
		if !c.Pass {
			failed++
			if c.Name != "archetype:gaming_focus" {
				t.Errorf("unexpected failing check %q", c.Name)
			}
		}
	}
	if failed != 1 {
		t.Errorf("expected exactly one failing check, got %d", failed)
	}
}

func TestRun_ZeroExpectationsAlwaysPass(t *testing.T) {
	f := alternatingFixture()
	f.Expected = Expected{}

	report := Run(f)
	if !report.Passed || len(report.Checks) != 0 {
		t.Errorf("expected an empty passing report, got %+v", report)
	}
}

func TestReport_Lines(t *testing.T) {
	r := Report{Checks: []Check{
		{Name: "algorithm", Pass: true, Detail: "ok"},
		{Name: "predicted", Pass: false, Detail: "mismatch"},
	}}
	lines := r.Lines()
	if lines[0] != "[PASS] algorithm: ok" || lines[1] != "[FAIL] predicted: mismatch" {
		t.Errorf("unexpected lines: %v", lines)
	}
}

// #endregion run-tests

// #region load-tests

func TestLoadFixture_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.json")
	body := `{
  "description": "smoke",
  "observations": [
    {"ts": "2026-03-14T09:00:00", "mode": "coding", "exe": "code.exe", "title": "main.go"},
    {"ts": "2026-03-14T09:01:00", "mode": "coding", "exe": "code.exe", "title": "main.go"}
  ],
  "expected": {"predicted": "0", "min_insights": 1}
}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := LoadFixture(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if f.Description != "smoke" || len(f.Observations) != 2 {
		t.Errorf("unexpected fixture: %+v", f)
	}
	if f.Expected.Predicted != "0" || f.Expected.MinInsights != 1 {
		t.Errorf("unexpected expectations: %+v", f.Expected)
	}

	report := Run(f)
	if !report.Passed {
		t.Errorf("smoke fixture failed:\n%s", strings.Join(report.Lines(), "\n"))
	}
}

func TestLoadFixture_Missing(t *testing.T) {
	if _, err := LoadFixture(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected an error for a missing fixture")
	}
}

// #endregion load-tests
