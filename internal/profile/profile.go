package profile

import (
	"sort"
	"strings"

	"github.com/danielpatrickdp/behavior-twin/internal/observation"
	"github.com/danielpatrickdp/behavior-twin/internal/signals"
)

// #region archetypes

// Archetype labels assigned to clusters from their aggregate signals.
const (
	DeepWork           = "deep_work"
	DopamineScrolling  = "dopamine_scrolling"
	GamingFocus        = "gaming_focus"
	MicroTasking       = "micro_tasking"
	ResearchMode       = "research_mode"
	GenericCluster     = "behavior_cluster"
)

// #endregion archetypes

// #region types

// Count pairs a mode or app name with its member frequency.
type Count struct {
	Key string
	N   int
}

// Profile is the per-cluster aggregate used for display and insight text.
type Profile struct {
	Label            string
	TopModes         []Count
	TopApps          []Count
	AvgCognitiveLoad float64
	AvgDopamineDrive float64
	AvgGoalFocus     float64
	Size             int
}

// #endregion types

// #region interpret

// Interpret groups observations by cluster label and assigns each group
// an archetype from its aggregate signal statistics. The noise group gets
// a profile under its own label like any other.
func Interpret(labels []int, obs []observation.Observation, sigs []signals.Signals) map[int]Profile {
	type member struct {
		mode string
		exe  string
		sig  signals.Signals
	}
	groups := make(map[int][]member)
	for i, lbl := range labels {
		mode := obs[i].Mode
		if mode == "" {
			mode = "unknown"
		}
		exe := obs[i].Exe
		if exe == "" {
			exe = "unknown"
		}
		groups[lbl] = append(groups[lbl], member{mode: mode, exe: exe, sig: sigs[i]})
	}

	profiles := make(map[int]Profile, len(groups))
	for lbl, members := range groups {
		modes := make(map[string]int)
		exes := make(map[string]int)
		var sumCog, sumDop, sumGoal float64
		for _, m := range members {
			modes[m.mode]++
			exes[m.exe]++
			sumCog += m.sig.CognitiveLoad
			sumDop += m.sig.DopamineScore
			sumGoal += m.sig.GoalScore
		}
		size := len(members)
		avgCog := sumCog / float64(size)
		avgDop := sumDop / float64(size)
		avgGoal := sumGoal / float64(size)

		profiles[lbl] = Profile{
			Label:            archetype(modes, avgCog, avgDop, avgGoal),
			TopModes:         TopCounts(modes, 3),
			TopApps:          TopCounts(exes, 3),
			AvgCognitiveLoad: avgCog,
			AvgDopamineDrive: avgDop,
			AvgGoalFocus:     avgGoal,
			Size:             size,
		}
	}
	return profiles
}

// archetype applies the interpretation rules in precedence order; the
// first match wins.
func archetype(modes map[string]int, avgCog, avgDop, avgGoal float64) string {
	switch {
	case avgCog > 0.6 && avgGoal >= avgDop:
		return DeepWork
	case avgDop > 0.5 && avgGoal < 0.3:
		return DopamineScrolling
	case anyModeContains(modes, "game"):
		return GamingFocus
	case len(modes) > 3 && avgCog < 0.5:
		return MicroTasking
	case avgGoal > 0.5 && avgDop < 0.4:
		return ResearchMode
	default:
		return GenericCluster
	}
}

func anyModeContains(modes map[string]int, substr string) bool {
	for mode := range modes {
		if strings.Contains(mode, substr) {
			return true
		}
	}
	return false
}

// TopCounts returns the n most frequent keys, ties broken alphabetically
// so output is stable across runs.
func TopCounts(freq map[string]int, n int) []Count {
	counts := make([]Count, 0, len(freq))
	for k, v := range freq {
		counts = append(counts, Count{Key: k, N: v})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].N != counts[j].N {
			return counts[i].N > counts[j].N
		}
		return counts[i].Key < counts[j].Key
	})
	if len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// #endregion interpret
