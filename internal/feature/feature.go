package feature

import (
	"math"
	"time"

	"github.com/danielpatrickdp/behavior-twin/internal/cluster"
	"github.com/danielpatrickdp/behavior-twin/internal/embedding"
	"github.com/danielpatrickdp/behavior-twin/internal/observation"
	"github.com/danielpatrickdp/behavior-twin/internal/signals"
)

// #region types

// TimeFeatures encodes hour-of-day and day-of-week cyclically, so the
// distance between 23:00 and 01:00 is small. Kept on every feature row
// for future model-based forecasters.
type TimeFeatures struct {
	HourSin float64
	HourCos float64
	DowSin  float64
	DowCos  float64
}

// Feature is one observation's derived row shared by the forecaster and
// the twin aggregator.
type Feature struct {
	TS            time.Time
	Cluster       int
	Productivity  float64
	DopamineScore float64
	GoalScore     float64
	CognitiveLoad float64
	EmotionalTone float64
	Exe           string
	Title         string
	SessionLen    float64 // minutes since the previous observation
	Time          TimeFeatures
}

// #endregion types

// #region build

// Build derives a feature row per observation, memoizing embeddings onto
// the observations as it goes. Observations missing a cluster label get
// the noise label.
func Build(obs []observation.Observation, labels []int) []Feature {
	features := make([]Feature, 0, len(obs))
	var lastTS time.Time

	for i := range obs {
		_, sig := embedding.Ensure(&obs[i])

		sessionLen := 0.0
		if !lastTS.IsZero() {
			sessionLen = obs[i].TS.Sub(lastTS).Minutes()
		}
		lastTS = obs[i].TS

		lbl := cluster.Noise
		if i < len(labels) {
			lbl = labels[i]
		}

		features = append(features, Feature{
			TS:            obs[i].TS,
			Cluster:       lbl,
			Productivity:  signals.ProductivityScore(sig),
			DopamineScore: sig.DopamineScore,
			GoalScore:     sig.GoalScore,
			CognitiveLoad: sig.CognitiveLoad,
			EmotionalTone: sig.EmotionalTone,
			Exe:           sig.Exe,
			Title:         obs[i].Title,
			SessionLen:    sessionLen,
			Time:          cyclicalTime(obs[i].TS),
		})
	}
	return features
}

// cyclicalTime projects a timestamp onto the unit circles for hour and
// weekday. The weekday circle starts at Monday.
func cyclicalTime(ts time.Time) TimeFeatures {
	hour := float64(ts.Hour()) + float64(ts.Minute())/60.0
	dow := float64((int(ts.Weekday()) + 6) % 7)
	return TimeFeatures{
		HourSin: math.Sin(2 * math.Pi * hour / 24),
		HourCos: math.Cos(2 * math.Pi * hour / 24),
		DowSin:  math.Sin(2 * math.Pi * dow / 7),
		DowCos:  math.Cos(2 * math.Pi * dow / 7),
	}
}

// #endregion build
