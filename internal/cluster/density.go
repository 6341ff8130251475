package cluster

import (
	"fmt"
	"math"
	"sort"
)

// #region density-provider

// densityProvider approximates hierarchical density clustering: the
// minimum cluster size scales with the square root of the batch, and the
// neighborhood radius is estimated from the data itself (median distance
// to the minPts-th nearest neighbor). Sparse points come back as Noise.
type densityProvider struct{}

func (densityProvider) Cluster(embeddings [][]float32) (Result, error) {
	n := len(embeddings)
	minPts := max(2, int(math.Sqrt(float64(n))))
	if n <= minPts {
		return Result{}, fmt.Errorf("density: batch of %d below min cluster size %d", n, minPts)
	}

	eps, err := estimateEps(embeddings, minPts)
	if err != nil {
		return Result{}, err
	}

	labels := scan(embeddings, eps, minPts)
	return Result{Labels: labels, Algorithm: "density"}, nil
}

// estimateEps returns the median over points of the distance to their
// minPts-th nearest neighbor.
func estimateEps(embeddings [][]float32, minPts int) (float64, error) {
	n := len(embeddings)
	kth := make([]float64, 0, n)
	dists := make([]float64, 0, n-1)
	for i := range embeddings {
		dists = dists[:0]
		for j := range embeddings {
			if i == j {
				continue
			}
			dists = append(dists, math.Sqrt(squaredDistance(embeddings[i], embeddings[j])))
		}
		sort.Float64s(dists)
		kth = append(kth, dists[minPts-1])
	}
	sort.Float64s(kth)
	eps := kth[len(kth)/2]
	if eps == 0 {
		return 0, fmt.Errorf("density: zero neighborhood radius")
	}
	return eps, nil
}

// #endregion density-provider

// #region dbscan-provider

// Distance thresholds for the plain DBSCAN pass. The radius tightens once
// the batch grows past smallBatch.
const (
	dbscanEpsSmall = 0.8
	dbscanEpsLarge = 0.6
	smallBatch     = 10
	dbscanMinPts   = 2
)

// dbscanProvider runs a fixed-radius density scan with a small minimum
// neighborhood.
type dbscanProvider struct{}

func (dbscanProvider) Cluster(embeddings [][]float32) (Result, error) {
	eps := dbscanEpsSmall
	if len(embeddings) > smallBatch {
		eps = dbscanEpsLarge
	}
	labels := scan(embeddings, eps, dbscanMinPts)
	return Result{Labels: labels, Algorithm: "dbscan"}, nil
}

// #endregion dbscan-provider

// #region scan

// unclassified marks points the scan has not yet reached.
const unclassified = -2

// scan is a textbook DBSCAN: points whose eps-neighborhood (including
// themselves) holds at least minPts members seed clusters that expand
// through density-reachable neighbors; everything else is Noise.
func scan(embeddings [][]float32, eps float64, minPts int) []int {
	n := len(embeddings)
	epsSq := eps * eps
	labels := make([]int, n)
	for i := range labels {
		labels[i] = unclassified
	}

	cluster := 0
	for i := 0; i < n; i++ {
		if labels[i] != unclassified {
			continue
		}
		neighbors := regionQuery(embeddings, i, epsSq)
		if len(neighbors) < minPts {
			labels[i] = Noise
			continue
		}

		labels[i] = cluster
		queue := append([]int(nil), neighbors...)
		for len(queue) > 0 {
			j := queue[0]
			queue = queue[1:]
			if labels[j] == Noise {
				labels[j] = cluster
			}
			if labels[j] != unclassified {
				continue
			}
			labels[j] = cluster
			next := regionQuery(embeddings, j, epsSq)
			if len(next) >= minPts {
				queue = append(queue, next...)
			}
		}
		cluster++
	}
	return labels
}

// regionQuery returns the indices within sqrt(epsSq) of point i,
// including i itself.
func regionQuery(embeddings [][]float32, i int, epsSq float64) []int {
	var neighbors []int
	for j := range embeddings {
		if squaredDistance(embeddings[i], embeddings[j]) <= epsSq {
			neighbors = append(neighbors, j)
		}
	}
	return neighbors
}

// #endregion scan
