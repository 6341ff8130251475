package runlog

import (
	"path/filepath"
	"testing"
	"time"
)

// #region record-tests

func TestRecordAndRecent_RoundTrip(t *testing.T) {
	log, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer log.Close()

	run := Run{
		Day:          "2026-03-14",
		Observations: 42,
		Algorithm:    "dbscan",
		Clusters:     3,
		Flow:         0.55,
		Predicted:    "0",
		Insights:     []string{"first insight", "second insight"},
	}
	if err := log.Record(run); err != nil {
		t.Fatalf("record: %v", err)
	}

	runs, err := log.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	got := runs[0]
	if got.RunID == "" {
		t.Error("run id not filled in")
	}
	if got.CreatedAt.IsZero() {
		t.Error("created_at not filled in")
	}
	if got.Day != run.Day || got.Observations != 42 || got.Algorithm != "dbscan" ||
		got.Clusters != 3 || got.Flow != 0.55 || got.Predicted != "0" {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if len(got.Insights) != 2 || got.Insights[0] != "first insight" || got.Insights[1] != "second insight" {
		t.Errorf("insights out of order: %v", got.Insights)
	}
}

func TestRecent_NewestFirstAndLimited(t *testing.T) {
	log, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer log.Close()

	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		run := Run{
			Day:       "2026-03-14",
			Algorithm: "dbscan",
			Predicted: string(rune('a' + i)),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		if err := log.Record(run); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}

	runs, err := log.Recent(2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Predicted != "c" || runs[1].Predicted != "b" {
		t.Errorf("unexpected order: %q, %q", runs[0].Predicted, runs[1].Predicted)
	}
}

func TestRecent_EmptyLog(t *testing.T) {
	log, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer log.Close()

	runs, err := log.Recent(5)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

// #endregion record-tests
