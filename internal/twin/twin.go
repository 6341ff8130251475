package twin

import (
	"sort"
	"strings"

	"github.com/danielpatrickdp/behavior-twin/internal/behavior"
	"github.com/danielpatrickdp/behavior-twin/internal/feature"
	"github.com/danielpatrickdp/behavior-twin/internal/forecast"
	"github.com/danielpatrickdp/behavior-twin/internal/observation"
	"github.com/danielpatrickdp/behavior-twin/internal/profile"
	"github.com/danielpatrickdp/behavior-twin/internal/signals"
	"github.com/danielpatrickdp/behavior-twin/internal/transition"
)

// #region config

// Stress bands and alignment trends.
const (
	StressLow    = "low"
	StressMedium = "medium"
	StressHigh   = "high"

	TrendOnTrack  = "on_track"
	TrendDrifting = "drifting"
	TrendNeutral  = "neutral"
)

// Config names the aggregation thresholds; values are design constants
// pinned by tests.
type Config struct {
	StressMediumRate float64 // switches per minute
	StressHighRate   float64
	AlignOnTrack     float64 // alignment score thresholds
	AlignDrifting    float64
	TopWindows       int
	TopTriggers      int
	Forecast         forecast.Config
}

// DefaultConfig returns the reference thresholds.
func DefaultConfig() Config {
	return Config{
		StressMediumRate: 0.4,
		StressHighRate:   0.8,
		AlignOnTrack:     0.65,
		AlignDrifting:    0.35,
		TopWindows:       3,
		TopTriggers:      5,
		Forecast:         forecast.DefaultConfig(),
	}
}

// #endregion config

// #region types

// Window is one hour-of-day with its average productivity score.
type Window struct {
	Hour  int
	Score float64
}

// Trigger is an app or context keyword frequent in distraction episodes.
type Trigger struct {
	Name  string
	Count int
}

// Stress is the switch-rate fragmentation estimate.
type Stress struct {
	SwitchRate float64
	Band       string
}

// Alignment is the goal-versus-dopamine balance over the batch.
type Alignment struct {
	Score    float64
	Trend    string
	Goal     float64
	Dopamine float64
}

// Twin is the aggregate behavioral view derived from one batch pass.
type Twin struct {
	Features            []feature.Feature
	Matrix              transition.Matrix
	Counts              transition.Counts
	Hourly              map[int]map[int]int
	ShortTerm           forecast.Result
	HourAhead           forecast.Result
	BestHours           []Window
	WorstHours          []Window
	TriggerApps         []Trigger
	TriggerContexts     []Trigger
	Stress              Stress
	Alignment           Alignment
	Clusters            map[int]profile.Profile
	FlowStateLikelihood float64
	AnomalyIndices      []int
	Insights            []string
}

// #endregion types

// #region build

// Build combines an analysis with its forecasts into the derived
// analytics and insight strings. hourAhead is the hour-horizon forecast
// computed by the caller's chain; the short-term forecast is derived
// here.
func Build(obs []observation.Observation, analysis behavior.Analysis, hourAhead forecast.Result, cfg Config) Twin {
	if len(obs) == 0 {
		return Twin{
			Matrix:    transition.Matrix{},
			Counts:    transition.Counts{},
			Hourly:    map[int]map[int]int{},
			ShortTerm: forecast.Result{Distribution: map[string]float64{}, Algorithm: "none"},
			HourAhead: hourAhead,
			Stress:    Stress{Band: StressLow},
			Alignment: Alignment{Trend: TrendNeutral},
			Clusters:  map[int]profile.Profile{},
			Insights:  []string{},
		}
	}

	features := feature.Build(obs, analysis.Labels)
	hourly := transition.HourlyDistribution(features)
	shortTerm := forecast.ShortTerm(features, analysis.Matrix, hourly, cfg.Forecast)
	best, worst := productivityWindows(features, cfg.TopWindows)
	apps, contexts := procrastinationTriggers(features, cfg.TopTriggers)
	stress := stressEstimate(features, analysis.Counts, cfg)
	alignment := goalAlignment(features, cfg)

	t := Twin{
		Features:            features,
		Matrix:              analysis.Matrix,
		Counts:              analysis.Counts,
		Hourly:              hourly,
		ShortTerm:           shortTerm,
		HourAhead:           hourAhead,
		BestHours:           best,
		WorstHours:          worst,
		TriggerApps:         apps,
		TriggerContexts:     contexts,
		Stress:              stress,
		Alignment:           alignment,
		Clusters:            analysis.Clusters,
		FlowStateLikelihood: analysis.FlowStateLikelihood,
		AnomalyIndices:      analysis.AnomalyIndices,
	}
	t.Insights = insights(t)
	return t
}

// #endregion build

// #region windows

// productivityWindows returns the top and bottom n hours by average
// productivity.
func productivityWindows(features []feature.Feature, n int) ([]Window, []Window) {
	sums := make(map[int]float64)
	counts := make(map[int]int)
	for _, f := range features {
		sums[f.TS.Hour()] += f.Productivity
		counts[f.TS.Hour()]++
	}

	windows := make([]Window, 0, len(sums))
	for hour, sum := range sums {
		windows = append(windows, Window{Hour: hour, Score: sum / float64(counts[hour])})
	}

	best := append([]Window(nil), windows...)
	sort.Slice(best, func(i, j int) bool {
		if best[i].Score != best[j].Score {
			return best[i].Score > best[j].Score
		}
		return best[i].Hour < best[j].Hour
	})
	worst := append([]Window(nil), windows...)
	sort.Slice(worst, func(i, j int) bool {
		if worst[i].Score != worst[j].Score {
			return worst[i].Score < worst[j].Score
		}
		return worst[i].Hour < worst[j].Hour
	})

	if len(best) > n {
		best = best[:n]
	}
	if len(worst) > n {
		worst = worst[:n]
	}
	return best, worst
}

// #endregion windows

// #region triggers

// procrastinationTriggers counts apps and dopamine-cue title keywords
// over observations where distraction outweighed goal focus.
func procrastinationTriggers(features []feature.Feature, n int) ([]Trigger, []Trigger) {
	apps := make(map[string]int)
	contexts := make(map[string]int)
	for _, f := range features {
		if f.DopamineScore <= f.GoalScore {
			continue
		}
		if f.Exe != "" {
			apps[f.Exe]++
		}
		title := strings.ToLower(f.Title)
		for cue := range signals.DopamineCues {
			if strings.Contains(title, cue) {
				contexts[cue]++
			}
		}
	}
	return toTriggers(profile.TopCounts(apps, n)), toTriggers(profile.TopCounts(contexts, n))
}

func toTriggers(counts []profile.Count) []Trigger {
	triggers := make([]Trigger, len(counts))
	for i, c := range counts {
		triggers[i] = Trigger{Name: c.Key, Count: c.N}
	}
	return triggers
}

// #endregion triggers

// #region stress

// stressEstimate divides counted cluster transitions by elapsed minutes
// and bands the rate. A zero-duration batch counts as one minute.
func stressEstimate(features []feature.Feature, counts transition.Counts, cfg Config) Stress {
	elapsed := features[len(features)-1].TS.Sub(features[0].TS).Minutes()
	if elapsed <= 0 {
		elapsed = 1
	}
	rate := float64(transition.TotalTransitions(counts)) / elapsed

	band := StressLow
	if rate > cfg.StressHighRate {
		band = StressHigh
	} else if rate > cfg.StressMediumRate {
		band = StressMedium
	}
	return Stress{SwitchRate: rate, Band: band}
}

// #endregion stress

// #region alignment

// goalAlignment scores the goal-versus-dopamine balance and thresholds
// it into a trend.
func goalAlignment(features []feature.Feature, cfg Config) Alignment {
	var goal, dopamine float64
	for _, f := range features {
		goal += f.GoalScore
		dopamine += f.DopamineScore
	}
	n := float64(len(features))
	goal /= n
	dopamine /= n

	score := 0.5 + goal - dopamine
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	trend := TrendNeutral
	if score >= cfg.AlignOnTrack {
		trend = TrendOnTrack
	} else if score <= cfg.AlignDrifting {
		trend = TrendDrifting
	}
	return Alignment{Score: score, Trend: trend, Goal: goal, Dopamine: dopamine}
}

// #endregion alignment
