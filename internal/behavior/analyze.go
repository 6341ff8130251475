package behavior

import (
	"github.com/danielpatrickdp/behavior-twin/internal/cluster"
	"github.com/danielpatrickdp/behavior-twin/internal/embedding"
	"github.com/danielpatrickdp/behavior-twin/internal/observation"
	"github.com/danielpatrickdp/behavior-twin/internal/profile"
	"github.com/danielpatrickdp/behavior-twin/internal/signals"
	"github.com/danielpatrickdp/behavior-twin/internal/transition"
)

// #region analysis

// Analysis is the batch pipeline's output: cluster labels and profiles,
// the transition model, and the derived stability measures.
type Analysis struct {
	Labels              []int
	Algorithm           string
	Clusters            map[int]profile.Profile
	Matrix              transition.Matrix
	Counts              transition.Counts
	FlowStateLikelihood float64
	AnomalyIndices      []int
}

// #endregion analysis

// #region analyze

// Analyze runs the batch pipeline over a day's observations: embed,
// cluster through the fallback chain, interpret, and model transitions.
// Embeddings are memoized onto the observations; aside from that the
// function is pure, so a second run over the same batch yields an
// identical Analysis.
func Analyze(obs []observation.Observation, engine *cluster.Engine) Analysis {
	embeddings := make([][]float32, len(obs))
	sigs := make([]signals.Signals, len(obs))
	for i := range obs {
		embeddings[i], sigs[i] = embedding.Ensure(&obs[i])
	}

	res := engine.Run(embeddings)
	labels := res.Labels

	analysis := Analysis{
		Labels:    labels,
		Algorithm: res.Algorithm,
		Clusters:  map[int]profile.Profile{},
		Matrix:    transition.Matrix{},
		Counts:    transition.Counts{},
	}
	if len(labels) == 0 {
		return analysis
	}

	analysis.Clusters = profile.Interpret(labels, obs, sigs)
	analysis.Matrix, analysis.Counts = transition.Build(labels)
	analysis.FlowStateLikelihood = flowStateLikelihood(labels)

	for i, lbl := range labels {
		if lbl == cluster.Noise {
			analysis.AnomalyIndices = append(analysis.AnomalyIndices, i)
		}
	}
	return analysis
}

// flowStateLikelihood is the share of the batch spent in its dominant
// cluster, a rough proxy for sustained focus.
func flowStateLikelihood(labels []int) float64 {
	counts := make(map[int]int)
	dominant := 0
	for _, lbl := range labels {
		counts[lbl]++
		if counts[lbl] > dominant {
			dominant = counts[lbl]
		}
	}
	return float64(dominant) / float64(len(labels))
}

// #endregion analyze
