package cluster

// #region two-centroid

// twoCentroidProvider is the terminal fallback: the first two points seed
// the centroids and every point joins the nearer one by squared Euclidean
// distance. No dependencies, no randomness, no failure mode.
type twoCentroidProvider struct{}

func (twoCentroidProvider) Cluster(embeddings [][]float32) (Result, error) {
	k := 2
	if len(embeddings) < k {
		k = len(embeddings)
	}
	centroids := embeddings[:k]

	labels := make([]int, len(embeddings))
	for i, emb := range embeddings {
		best := 0
		bestDist := squaredDistance(emb, centroids[0])
		for c := 1; c < k; c++ {
			if d := squaredDistance(emb, centroids[c]); d < bestDist {
				best = c
				bestDist = d
			}
		}
		labels[i] = best
	}
	return Result{Labels: labels, Algorithm: "simple_kmeans"}, nil
}

// #endregion two-centroid
