package transition

import (
	"github.com/danielpatrickdp/behavior-twin/internal/cluster"
	"github.com/danielpatrickdp/behavior-twin/internal/feature"
)

// #region types

// Matrix maps a source cluster to a probability distribution over
// destination clusters. Every non-empty row sums to 1.
type Matrix map[int]map[int]float64

// Counts holds the raw consecutive-pair transition counts behind a
// Matrix.
type Counts map[int]map[int]int

// #endregion types

// #region build

// Build derives the transition matrix from the chronological label
// sequence. Pairs touching the noise label on either end are excluded;
// self-loops count like any other transition.
func Build(labels []int) (Matrix, Counts) {
	counts := make(Counts)
	for i := 0; i+1 < len(labels); i++ {
		src, dst := labels[i], labels[i+1]
		if src == cluster.Noise || dst == cluster.Noise {
			continue
		}
		row, ok := counts[src]
		if !ok {
			row = make(map[int]int)
			counts[src] = row
		}
		row[dst]++
	}

	matrix := make(Matrix, len(counts))
	for src, row := range counts {
		total := 0
		for _, c := range row {
			total += c
		}
		if total == 0 {
			continue
		}
		dist := make(map[int]float64, len(row))
		for dst, c := range row {
			dist[dst] = float64(c) / float64(total)
		}
		matrix[src] = dist
	}
	return matrix, counts
}

// TotalTransitions sums all counted transitions, the twin's raw
// switch-activity measure.
func TotalTransitions(counts Counts) int {
	total := 0
	for _, row := range counts {
		for _, c := range row {
			total += c
		}
	}
	return total
}

// #endregion build

// #region hourly

// HourlyDistribution counts cluster occupancy per hour of day, the
// temporal prior blended into forecasts.
func HourlyDistribution(features []feature.Feature) map[int]map[int]int {
	byHour := make(map[int]map[int]int)
	for _, f := range features {
		hour := f.TS.Hour()
		row, ok := byHour[hour]
		if !ok {
			row = make(map[int]int)
			byHour[hour] = row
		}
		row[f.Cluster]++
	}
	return byHour
}

// #endregion hourly
