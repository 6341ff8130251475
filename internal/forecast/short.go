package forecast

import (
	"github.com/danielpatrickdp/behavior-twin/internal/cluster"
	"github.com/danielpatrickdp/behavior-twin/internal/feature"
	"github.com/danielpatrickdp/behavior-twin/internal/transition"
)

// #region short-term

// ShortTerm forecasts the next ~30 minutes: the transition-matrix row of
// the most recent cluster, blended with the hour-of-day prior and a
// recency bias toward a synthetic dopamine/goal state when signal drift
// is strong enough. With no mass from any source, the last known cluster
// takes full mass.
func ShortTerm(features []feature.Feature, matrix transition.Matrix, hourly map[int]map[int]int, cfg Config) Result {
	if len(features) == 0 {
		return Result{Distribution: map[string]float64{}, Algorithm: "none"}
	}

	last := features[len(features)-1]
	dist := make(map[string]float64)

	for dst, p := range matrix[last.Cluster] {
		dist[ClusterKey(dst)] += p
	}

	for cid, cnt := range hourly[last.TS.Hour()] {
		if cid == cluster.Noise {
			continue
		}
		dist[ClusterKey(cid)] += cfg.HourPriorWeight * float64(cnt)
	}

	drift := last.DopamineScore - last.GoalScore
	if drift > cfg.DopamineBiasThreshold {
		dist[StateDopamineProne] += drift
	} else if drift < cfg.GoalBiasThreshold {
		dist[StateGoalProne] += -drift
	}

	if len(dist) == 0 {
		dist[ClusterKey(last.Cluster)] = 1
	}

	normalized, predicted := normalize(dist)
	return Result{
		Distribution: normalized,
		Predicted:    predicted,
		Algorithm:    "markov+context",
	}
}

// #endregion short-term
