package twin

import (
	"fmt"
	"strings"

	"github.com/danielpatrickdp/behavior-twin/internal/forecast"
)

// #region insights

// insights renders the notable findings as short sentences in a fixed
// order: short-term forecast, hour-ahead forecast, productivity peaks,
// productivity dips, top distraction trigger, stress flag, alignment
// trend.
func insights(t Twin) []string {
	out := []string{}

	if t.ShortTerm.Predicted != "" {
		prob := t.ShortTerm.Distribution[t.ShortTerm.Predicted] * 100
		out = append(out, fmt.Sprintf("Next 30 minutes likely in %s (~%.1f%%).",
			t.stateName(t.ShortTerm.Predicted), prob))
	}
	if t.HourAhead.Predicted != "" {
		prob := t.HourAhead.Distribution[t.HourAhead.Predicted] * 100
		out = append(out, fmt.Sprintf("Next hour forecast: %s (~%.1f%%).",
			t.stateName(t.HourAhead.Predicted), prob))
	}

	if len(t.BestHours) > 0 {
		out = append(out, "Productivity peaks around "+formatWindows(t.BestHours)+".")
	}
	if len(t.WorstHours) > 0 {
		out = append(out, "Productivity dips expected around "+formatWindows(t.WorstHours)+".")
	}

	if len(t.TriggerApps) > 0 {
		top := t.TriggerApps[0]
		out = append(out, fmt.Sprintf("Distraction frequently triggered by %s (~%d events).",
			top.Name, top.Count))
	}

	if t.Stress.Band != StressLow {
		out = append(out, fmt.Sprintf("Stress signal: elevated switch rate (%.3f/min).",
			t.Stress.SwitchRate))
	}

	switch t.Alignment.Trend {
	case TrendDrifting:
		out = append(out, "Long-term goals at risk: dopamine-driven patterns dominate.")
	case TrendOnTrack:
		out = append(out, "Long-term goals on track: goal-directed patterns dominate.")
	}

	return out
}

// stateName resolves a distribution key to a cluster archetype, the
// synthetic state name, or a generic cluster tag.
func (t Twin) stateName(key string) string {
	label, ok := forecast.ParseClusterKey(key)
	if !ok {
		return key
	}
	if p, ok := t.Clusters[label]; ok && p.Label != "" {
		return p.Label
	}
	return fmt.Sprintf("cluster_%d", label)
}

// formatWindows joins windows as "09:00 (0.82), 10:00 (0.75)".
func formatWindows(windows []Window) string {
	parts := make([]string, len(windows))
	for i, w := range windows {
		parts[i] = fmt.Sprintf("%02d:00 (%.2f)", w.Hour, w.Score)
	}
	return strings.Join(parts, ", ")
}

// #endregion insights
