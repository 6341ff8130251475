package cluster

import (
	"fmt"
	"math"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// #region kmeans-provider

// kmeansProvider partitions the batch into k centroids, k between 2 and 6
// scaled as the square root of the batch size.
type kmeansProvider struct{}

func (kmeansProvider) Cluster(embeddings [][]float32) (Result, error) {
	n := len(embeddings)
	k := int(math.Sqrt(float64(n)))
	if k < 2 {
		k = 2
	}
	if k > 6 {
		k = 6
	}
	if n < k {
		return Result{}, fmt.Errorf("kmeans: %d points for k=%d", n, k)
	}

	coords := make([]clusters.Coordinates, n)
	dataset := make(clusters.Observations, n)
	for i, emb := range embeddings {
		c := make(clusters.Coordinates, len(emb))
		for j, v := range emb {
			c[j] = float64(v)
		}
		coords[i] = c
		dataset[i] = c
	}

	km := kmeans.New()
	partitions, err := km.Partition(dataset, k)
	if err != nil {
		return Result{}, fmt.Errorf("kmeans partition: %w", err)
	}

	labels := make([]int, n)
	for i := range coords {
		labels[i] = partitions.Nearest(coords[i])
	}
	return Result{Labels: labels, Algorithm: fmt.Sprintf("kmeans_%d", k)}, nil
}

// #endregion kmeans-provider
