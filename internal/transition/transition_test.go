package transition

import (
	"math"
	"testing"
	"time"

	"github.com/danielpatrickdp/behavior-twin/internal/feature"
)

// #region build-tests

func TestBuild_RowsSumToOne(t *testing.T) {
	matrix, counts := Build([]int{0, 1, 0, 1, 1, 0})
	for src, row := range matrix {
		sum := 0.0
		for _, p := range row {
			sum += p
		}
		if math.Abs(sum-1.0) > 1e-9 {
			t.Errorf("row %d sums to %f, want 1", src, sum)
		}
	}
	if counts[0][1] != 2 || counts[1][0] != 2 || counts[1][1] != 1 {
		t.Errorf("unexpected counts: %v", counts)
	}
}

func TestBuild_NoisePairsExcluded(t *testing.T) {
	matrix, counts := Build([]int{0, -1, 1, 0})
	// 0->-1 and -1->1 are dropped; only 1->0 remains.
	if TotalTransitions(counts) != 1 {
		t.Errorf("expected a single counted transition, got %d", TotalTransitions(counts))
	}
	if _, ok := matrix[-1]; ok {
		t.Error("noise must not appear as a source")
	}
	for src, row := range matrix {
		if _, ok := row[-1]; ok {
			t.Errorf("noise must not appear as a destination in row %d", src)
		}
	}
	if matrix[1][0] != 1.0 {
		t.Errorf("expected p(1->0)=1, got %f", matrix[1][0])
	}
}

func TestBuild_SelfLoopsCount(t *testing.T) {
	matrix, counts := Build([]int{0, 0, 0})
	if counts[0][0] != 2 {
		t.Errorf("expected two self-loops, got %d", counts[0][0])
	}
	if matrix[0][0] != 1.0 {
		t.Errorf("expected p(0->0)=1, got %f", matrix[0][0])
	}
}

func TestBuild_ShortSequences(t *testing.T) {
	for _, labels := range [][]int{nil, {0}} {
		matrix, counts := Build(labels)
		if len(matrix) != 0 || TotalTransitions(counts) != 0 {
			t.Errorf("labels %v: expected empty model, got %v / %v", labels, matrix, counts)
		}
	}
}

// #endregion build-tests

// #region hourly-tests

func TestHourlyDistribution(t *testing.T) {
	at := func(hour int) time.Time {
		return time.Date(2026, 3, 14, hour, 30, 0, 0, time.UTC)
	}
	features := []feature.Feature{
		{TS: at(9), Cluster: 0},
		{TS: at(9), Cluster: 0},
		{TS: at(9), Cluster: 1},
		{TS: at(14), Cluster: -1},
	}

	byHour := HourlyDistribution(features)
	if byHour[9][0] != 2 || byHour[9][1] != 1 {
		t.Errorf("unexpected 09:00 occupancy: %v", byHour[9])
	}
	// Noise occupancy is recorded here; forecasting filters it out.
	if byHour[14][-1] != 1 {
		t.Errorf("unexpected 14:00 occupancy: %v", byHour[14])
	}
}

// #endregion hourly-tests
