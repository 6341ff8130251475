package twin

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/danielpatrickdp/behavior-twin/internal/behavior"
	"github.com/danielpatrickdp/behavior-twin/internal/cluster"
	"github.com/danielpatrickdp/behavior-twin/internal/feature"
	"github.com/danielpatrickdp/behavior-twin/internal/forecast"
	"github.com/danielpatrickdp/behavior-twin/internal/observation"
	"github.com/danielpatrickdp/behavior-twin/internal/profile"
	"github.com/danielpatrickdp/behavior-twin/internal/transition"
)

// #region fixtures

func batchOf(n int, step time.Duration, fill func(i int, o *observation.Observation)) []observation.Observation {
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	obs := make([]observation.Observation, n)
	for i := 0; i < n; i++ {
		obs[i].TS = base.Add(time.Duration(i) * step)
		fill(i, &obs[i])
	}
	return obs
}

func buildTwin(t *testing.T, obs []observation.Observation) Twin {
	t.Helper()
	analysis := behavior.Analyze(obs, cluster.DefaultEngine())
	features := feature.Build(obs, analysis.Labels)
	hourAhead := forecast.NewChain(forecast.DefaultConfig()).Run(features)
	return Build(obs, analysis, hourAhead, DefaultConfig())
}

// #endregion fixtures

// #region build-tests

func TestBuild_EmptyBatchNeutral(t *testing.T) {
	tw := Build(nil, behavior.Analysis{}, forecast.Result{}, DefaultConfig())
	if tw.Stress.Band != StressLow {
		t.Errorf("stress band = %q, want low", tw.Stress.Band)
	}
	if tw.Alignment.Trend != TrendNeutral {
		t.Errorf("alignment trend = %q, want neutral", tw.Alignment.Trend)
	}
	if tw.ShortTerm.Algorithm != "none" || len(tw.Insights) != 0 {
		t.Errorf("unexpected empty-batch twin: %+v", tw)
	}
}

func TestBuild_IdenticalPairCertainForecast(t *testing.T) {
	// Cue-free text keeps goal/dopamine drift at zero, so no synthetic
	// state takes mass and the lone cluster gets certainty.
	obs := batchOf(2, time.Minute, func(i int, o *observation.Observation) {
		o.Mode = "unknown"
		o.Exe = "shell.exe"
		o.Title = "main window"
	})
	tw := buildTwin(t, obs)

	if tw.ShortTerm.Predicted != "0" || tw.ShortTerm.Distribution["0"] != 1.0 {
		t.Errorf("unexpected short-term forecast: %+v", tw.ShortTerm)
	}
	if tw.HourAhead.Predicted != "0" {
		t.Errorf("unexpected hour-ahead prediction %q", tw.HourAhead.Predicted)
	}
}

func TestBuild_GoalCueTextSplitsMass(t *testing.T) {
	// "coding" is a goal cue, so the drift bias hands some mass to the
	// goal_prone synthetic state while the cluster keeps the argmax.
	obs := batchOf(2, time.Minute, func(i int, o *observation.Observation) {
		o.Mode = "coding"
		o.Exe = "code.exe"
		o.Title = "main.go"
	})
	tw := buildTwin(t, obs)

	if tw.ShortTerm.Predicted != "0" {
		t.Errorf("predicted %q, want 0", tw.ShortTerm.Predicted)
	}
	if tw.ShortTerm.Distribution[forecast.StateGoalProne] <= 0 {
		t.Errorf("expected goal_prone mass, got %v", tw.ShortTerm.Distribution)
	}
	if tw.ShortTerm.Distribution["0"] >= 1.0 {
		t.Errorf("cluster 0 holds full mass despite drift: %v", tw.ShortTerm.Distribution)
	}
}

// #endregion build-tests

// #region stress-tests

func TestStressEstimate_HighBand(t *testing.T) {
	// 21 observations alternating clusters over 10 minutes: 20 switches,
	// rate 2.0/min.
	features := make([]feature.Feature, 21)
	labels := make([]int, 21)
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	for i := range features {
		features[i].TS = base.Add(time.Duration(i) * 30 * time.Second)
		labels[i] = i % 2
		features[i].Cluster = labels[i]
	}
	_, counts := transition.Build(labels)

	stress := stressEstimate(features, counts, DefaultConfig())
	if math.Abs(stress.SwitchRate-2.0) > 1e-9 {
		t.Errorf("switch rate = %f, want 2.0", stress.SwitchRate)
	}
	if stress.Band != StressHigh {
		t.Errorf("band = %q, want high", stress.Band)
	}
}

func TestStressEstimate_ZeroDurationClamped(t *testing.T) {
	ts := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	features := []feature.Feature{{TS: ts}, {TS: ts}}
	_, counts := transition.Build([]int{0, 0})

	stress := stressEstimate(features, counts, DefaultConfig())
	if stress.SwitchRate != 1.0 {
		t.Errorf("switch rate = %f, want 1.0 over the clamped minute", stress.SwitchRate)
	}
}

// #endregion stress-tests

// #region alignment-tests

func TestGoalAlignment_Bands(t *testing.T) {
	cases := []struct {
		name  string
		goal  float64
		dop   float64
		trend string
	}{
		{"on_track", 0.8, 0.1, TrendOnTrack},
		{"drifting", 0.1, 0.8, TrendDrifting},
		{"neutral", 0.4, 0.4, TrendNeutral},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			features := []feature.Feature{{GoalScore: tc.goal, DopamineScore: tc.dop}}
			a := goalAlignment(features, DefaultConfig())
			if a.Trend != tc.trend {
				t.Errorf("trend = %q, want %q (score %f)", a.Trend, tc.trend, a.Score)
			}
		})
	}
}

func TestGoalAlignment_ScoreClamped(t *testing.T) {
	features := []feature.Feature{{GoalScore: 0.0, DopamineScore: 1.0}}
	a := goalAlignment(features, DefaultConfig())
	if a.Score != 0 {
		t.Errorf("score = %f, want 0 after clamping", a.Score)
	}
}

// #endregion alignment-tests

// #region window-trigger-tests

func TestProductivityWindows_Ordering(t *testing.T) {
	at := func(hour int, prod float64) feature.Feature {
		return feature.Feature{
			TS:           time.Date(2026, 3, 14, hour, 0, 0, 0, time.UTC),
			Productivity: prod,
		}
	}
	features := []feature.Feature{at(9, 0.9), at(11, 0.5), at(14, 0.1), at(16, 0.7)}

	best, worst := productivityWindows(features, 3)
	if best[0].Hour != 9 || best[1].Hour != 16 || best[2].Hour != 11 {
		t.Errorf("unexpected best hours: %+v", best)
	}
	if worst[0].Hour != 14 {
		t.Errorf("unexpected worst hour: %+v", worst)
	}
	if len(best) != 3 || len(worst) != 3 {
		t.Errorf("window limit not applied: %d / %d", len(best), len(worst))
	}
}

func TestProcrastinationTriggers(t *testing.T) {
	features := []feature.Feature{
		{Exe: "chrome.exe", Title: "YouTube shorts feed", DopamineScore: 0.8, GoalScore: 0.1},
		{Exe: "chrome.exe", Title: "reddit front page", DopamineScore: 0.7, GoalScore: 0.1},
		{Exe: "code.exe", Title: "main.go", DopamineScore: 0.0, GoalScore: 0.8},
	}

	apps, contexts := procrastinationTriggers(features, 5)
	if len(apps) == 0 || apps[0].Name != "chrome.exe" || apps[0].Count != 2 {
		t.Fatalf("unexpected trigger apps: %+v", apps)
	}
	found := map[string]bool{}
	for _, c := range contexts {
		found[c.Name] = true
	}
	if !found["youtube"] || !found["reddit"] || !found["shorts"] {
		t.Errorf("expected cue keyword triggers, got %+v", contexts)
	}
}

// #endregion window-trigger-tests

// #region insight-tests

func TestInsights_OrderAndContent(t *testing.T) {
	obs := batchOf(8, time.Minute, func(i int, o *observation.Observation) {
		if i%2 == 0 {
			o.Mode = "video"
			o.Exe = "chrome.exe"
			o.Title = "youtube video feed shorts"
		} else {
			o.Mode = "coding"
			o.Exe = "code.exe"
			o.Title = "vscode debug refactor analysis"
		}
	})
	tw := buildTwin(t, obs)

	if len(tw.Insights) < 3 {
		t.Fatalf("expected several insights, got %v", tw.Insights)
	}
	if !strings.HasPrefix(tw.Insights[0], "Next 30 minutes likely in ") {
		t.Errorf("first insight = %q", tw.Insights[0])
	}
	if !strings.HasPrefix(tw.Insights[1], "Next hour forecast: ") {
		t.Errorf("second insight = %q", tw.Insights[1])
	}
	joined := strings.Join(tw.Insights, "\n")
	if !strings.Contains(joined, "Distraction frequently triggered by chrome.exe") {
		t.Errorf("missing trigger insight in %q", joined)
	}
}

func TestStateName_Resolution(t *testing.T) {
	tw := Twin{Clusters: map[int]profile.Profile{0: {Label: profile.DeepWork}}}
	if got := tw.stateName("0"); got != profile.DeepWork {
		t.Errorf("stateName(0) = %q", got)
	}
	if got := tw.stateName("7"); got != "cluster_7" {
		t.Errorf("stateName(7) = %q", got)
	}
	if got := tw.stateName(forecast.StateDopamineProne); got != forecast.StateDopamineProne {
		t.Errorf("stateName(dopamine_prone) = %q", got)
	}
}

// #endregion insight-tests
