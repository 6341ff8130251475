package cluster

// #region provider

// Noise is the sentinel label for points that fit no dense region. It is
// never a valid transition source or destination.
const Noise = -1

// Result is one provider's labeling of a batch: exactly one label per
// input embedding plus the algorithm name that produced it.
type Result struct {
	Labels    []int
	Algorithm string
}

// Provider is one clustering backend. An error from Cluster means the
// backend cannot serve this batch and the engine moves on to the next
// provider in its chain.
type Provider interface {
	Cluster(embeddings [][]float32) (Result, error)
}

// #endregion provider

// #region engine

// Engine tries an ordered chain of providers, returning the first
// successful result. The chain's terminal provider is dependency-free and
// deterministic, so a non-empty batch always comes back labeled.
type Engine struct {
	providers []Provider
}

// NewEngine builds an engine over the given chain. The caller is
// responsible for ending the chain with a provider that cannot fail.
func NewEngine(providers ...Provider) *Engine {
	return &Engine{providers: providers}
}

// DefaultEngine returns the standard chain: density scan, DBSCAN,
// k-means, then the guaranteed two-centroid split.
func DefaultEngine() *Engine {
	return NewEngine(
		densityProvider{},
		dbscanProvider{},
		kmeansProvider{},
		twoCentroidProvider{},
	)
}

// Run labels the batch via the provider chain. An empty batch returns
// empty labels and algorithm "none" without consulting any provider.
func (e *Engine) Run(embeddings [][]float32) Result {
	if len(embeddings) == 0 {
		return Result{Labels: []int{}, Algorithm: "none"}
	}
	for _, p := range e.providers {
		res, err := p.Cluster(embeddings)
		if err != nil {
			continue
		}
		return res
	}
	// Unreachable with a well-formed chain; labeling everything as one
	// cluster keeps the one-label-per-input contract regardless.
	labels := make([]int, len(embeddings))
	return Result{Labels: labels, Algorithm: "degenerate"}
}

// #endregion engine

// #region distance

// squaredDistance computes squared Euclidean distance in float64.
func squaredDistance(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}

// #endregion distance
