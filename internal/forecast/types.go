package forecast

import "strconv"

// #region states

// Synthetic next-state labels used when recent signal drift points at
// distraction or focus rather than a known cluster.
const (
	StateDopamineProne = "dopamine_prone"
	StateGoalProne     = "goal_prone"
)

// ClusterKey renders a cluster label as a distribution key. Cluster keys
// share the key space with the synthetic states above.
func ClusterKey(label int) string {
	return strconv.Itoa(label)
}

// ParseClusterKey reports the cluster label behind a distribution key,
// or false for synthetic states.
func ParseClusterKey(key string) (int, bool) {
	label, err := strconv.Atoi(key)
	if err != nil {
		return 0, false
	}
	return label, true
}

// #endregion states

// #region result

// Result is one horizon's forecast: a probability distribution over next
// states, the argmax prediction (empty when there is nothing to predict),
// scalar productivity/distraction estimates, and the producing algorithm.
type Result struct {
	Distribution map[string]float64
	Predicted    string
	Productivity float64
	Distraction  float64
	Algorithm    string
}

// #endregion result

// #region config

// Config names the blend weights and thresholds of both horizons. The
// default values are design constants; tests pin them.
type Config struct {
	HourPriorWeight       float64 // short horizon: hour-of-day prior scale
	DopamineBiasThreshold float64 // short horizon: drift above this biases dopamine_prone
	GoalBiasThreshold     float64 // short horizon: drift below this biases goal_prone
	GlobalWeight          float64 // hour horizon: global cluster frequency scale
	HourWeight            float64 // hour horizon: hour-of-day frequency scale
	RecentWindow          int     // observations behind the scalar estimates
}

// DefaultConfig returns the reference weights.
func DefaultConfig() Config {
	return Config{
		HourPriorWeight:       0.35,
		DopamineBiasThreshold: 0.25,
		GoalBiasThreshold:     -0.15,
		GlobalWeight:          0.25,
		HourWeight:            0.5,
		RecentWindow:          5,
	}
}

// #endregion config

// #region helpers

// normalize scales dist into a probability distribution and returns the
// argmax key, ties broken lexicographically for stable output.
func normalize(dist map[string]float64) (map[string]float64, string) {
	var total float64
	for _, v := range dist {
		total += v
	}
	if total == 0 {
		total = 1
	}

	normalized := make(map[string]float64, len(dist))
	predicted := ""
	best := -1.0
	for k, v := range dist {
		p := v / total
		normalized[k] = p
		if p > best || (p == best && k < predicted) {
			best = p
			predicted = k
		}
	}
	return normalized, predicted
}

// #endregion helpers
