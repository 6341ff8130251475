package forecast

import (
	"errors"

	"github.com/danielpatrickdp/behavior-twin/internal/cluster"
	"github.com/danielpatrickdp/behavior-twin/internal/feature"
)

// #region chain

// ErrUnavailable reports that a forecaster cannot serve the request and
// the chain should move on.
var ErrUnavailable = errors.New("forecaster unavailable")

// Forecaster produces an hour-horizon forecast from feature rows, or an
// error when its backing capability is absent.
type Forecaster interface {
	Name() string
	Forecast(features []feature.Feature) (Result, error)
}

// Chain tries forecasters in order; the terminal Baseline cannot fail, so
// Run always returns a result.
type Chain struct {
	forecasters []Forecaster
}

// NewChain builds the standard chain: the model-based integration points
// first, the statistical baseline last.
func NewChain(cfg Config) *Chain {
	return &Chain{forecasters: []Forecaster{
		sequenceModel{},
		seasonalModel{},
		Baseline{Config: cfg},
	}}
}

// Run returns the first forecaster's successful result.
func (c *Chain) Run(features []feature.Feature) Result {
	for _, f := range c.forecasters {
		res, err := f.Forecast(features)
		if err != nil {
			continue
		}
		return res
	}
	return Baseline{Config: DefaultConfig()}.mustForecast(features)
}

// #endregion chain

// #region model-hooks

// sequenceModel is the integration point for a learned sequence
// forecaster. No implementation ships; it reports unavailability so the
// chain falls through.
type sequenceModel struct{}

func (sequenceModel) Name() string { return "sequence_model" }

func (sequenceModel) Forecast([]feature.Feature) (Result, error) {
	return Result{}, ErrUnavailable
}

// seasonalModel is the integration point for a statistical time-series
// forecaster. No implementation ships; it reports unavailability so the
// chain falls through.
type seasonalModel struct{}

func (seasonalModel) Name() string { return "seasonal_model" }

func (seasonalModel) Forecast([]feature.Feature) (Result, error) {
	return Result{}, ErrUnavailable
}

// #endregion model-hooks

// #region baseline

// Baseline is the terminal hour-horizon forecaster: transition counts
// conditioned on the last cluster, blended with the global cluster
// frequency and the hour-of-day frequency of the latest hour.
type Baseline struct {
	Config Config
}

func (Baseline) Name() string { return "baseline" }

// Forecast never fails; the error return satisfies the chain interface.
func (b Baseline) Forecast(features []feature.Feature) (Result, error) {
	return b.mustForecast(features), nil
}

func (b Baseline) mustForecast(features []feature.Feature) Result {
	if len(features) == 0 {
		return Result{Distribution: map[string]float64{}, Algorithm: "baseline"}
	}

	last := features[len(features)-1].Cluster

	type pair struct{ src, dst int }
	transitions := make(map[pair]int)
	counts := make(map[int]int)
	byHour := make(map[int]map[int]int)
	for i := 0; i+1 < len(features); i++ {
		prev, next := features[i], features[i+1]
		if prev.Cluster == cluster.Noise || next.Cluster == cluster.Noise {
			continue
		}
		transitions[pair{prev.Cluster, next.Cluster}]++
		counts[next.Cluster]++
		hour := next.TS.Hour()
		if byHour[hour] == nil {
			byHour[hour] = make(map[int]int)
		}
		byHour[hour][next.Cluster]++
	}

	dist := make(map[string]float64)
	for p, c := range transitions {
		if p.src == last {
			dist[ClusterKey(p.dst)] += float64(c)
		}
	}
	for cid, c := range counts {
		dist[ClusterKey(cid)] += b.Config.GlobalWeight * float64(c)
	}
	for cid, c := range byHour[features[len(features)-1].TS.Hour()] {
		dist[ClusterKey(cid)] += b.Config.HourWeight * float64(c)
	}
	if len(dist) == 0 {
		dist[ClusterKey(last)] = 1
	}

	normalized, predicted := normalize(dist)
	productivity, distraction := recentScalars(features, b.Config.RecentWindow)

	return Result{
		Distribution: normalized,
		Predicted:    predicted,
		Productivity: productivity,
		Distraction:  distraction,
		Algorithm:    "baseline",
	}
}

// recentScalars averages productivity and dopamine scores over the last
// window observations, or fewer when the batch is shorter.
func recentScalars(features []feature.Feature, window int) (float64, float64) {
	if window <= 0 {
		window = 1
	}
	start := len(features) - window
	if start < 0 {
		start = 0
	}
	recent := features[start:]
	var prod, dop float64
	for _, f := range recent {
		prod += f.Productivity
		dop += f.DopamineScore
	}
	n := float64(len(recent))
	return prod / n, dop / n
}

// #endregion baseline
