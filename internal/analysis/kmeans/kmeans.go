// Package kmeans implements seeded k-means clustering with k-means++
// initialisation and multiple restarts.
package kmeans

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/custodia-labs/kgtool/internal/core/domain"
	"github.com/custodia-labs/kgtool/internal/core/ports/driven"
)

// Ensure Clusterer implements the interface.
var _ driven.Clusterer = (*Clusterer)(nil)

// Defaults for Lloyd iterations.
const (
	DefaultMaxIterations = 300
	DefaultTolerance     = 1e-4
)

// Clusterer runs k-means. The same seed and input always give the same result.
type Clusterer struct {
	seed      uint64
	restarts  int
	maxIter   int
	tolerance float64
}

// Option configures the clusterer.
type Option func(*Clusterer)

// WithSeed sets the random seed.
func WithSeed(seed uint64) Option {
	return func(c *Clusterer) {
		c.seed = seed
	}
}

// WithRestarts sets how many initialisations are tried. The run with the
// lowest inertia wins.
func WithRestarts(n int) Option {
	return func(c *Clusterer) {
		if n > 0 {
			c.restarts = n
		}
	}
}

// WithMaxIterations caps the Lloyd iterations per restart.
func WithMaxIterations(n int) Option {
	return func(c *Clusterer) {
		if n > 0 {
			c.maxIter = n
		}
	}
}

// New creates a clusterer.
func New(opts ...Option) *Clusterer {
	c := &Clusterer{
		seed:      domain.DefaultClusterSeed,
		restarts:  domain.DefaultClusterRestarts,
		maxIter:   DefaultMaxIterations,
		tolerance: DefaultTolerance,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Cluster partitions points into exactly k clusters.
func (c *Clusterer) Cluster(points [][]float64, k int, opts driven.ClusterOptions) (*driven.Clustering, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: cluster count must be positive, got %d", domain.ErrInvalidInput, k)
	}
	if len(points) < k {
		return nil, &domain.TooFewSectionsError{Requested: k, Available: len(points)}
	}

	seed, restarts := c.seed, c.restarts
	if opts.Seed != 0 {
		seed = opts.Seed
	}
	if opts.Restarts > 0 {
		restarts = opts.Restarts
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	tol := c.tolerance * meanVariance(points)

	var best *driven.Clustering
	for r := 0; r < restarts; r++ {
		run := c.lloyd(points, c.initPlusPlus(points, k, rng), tol)
		if best == nil || run.Inertia < best.Inertia {
			best = run
		}
	}
	return best, nil
}

// initPlusPlus picks k initial centres, each new centre sampled with
// probability proportional to its squared distance from the nearest chosen one.
func (c *Clusterer) initPlusPlus(points [][]float64, k int, rng *rand.Rand) [][]float64 {
	n := len(points)
	chosen := make([]bool, n)
	centres := make([][]float64, 0, k)

	first := rng.IntN(n)
	chosen[first] = true
	centres = append(centres, clone(points[first]))

	dist := make([]float64, n)
	for i := range points {
		dist[i] = sqDist(points[i], centres[0])
	}

	for len(centres) < k {
		var total float64
		for i := range dist {
			if !chosen[i] {
				total += dist[i]
			}
		}

		next := -1
		if total > 0 {
			target := rng.Float64() * total
			for i := range dist {
				if chosen[i] {
					continue
				}
				target -= dist[i]
				if target <= 0 {
					next = i
					break
				}
			}
		}
		if next < 0 {
			// All remaining points coincide with a centre; pick uniformly.
			next = pickUnchosen(chosen, rng)
		}

		chosen[next] = true
		centres = append(centres, clone(points[next]))
		for i := range points {
			if d := sqDist(points[i], points[next]); d < dist[i] {
				dist[i] = d
			}
		}
	}
	return centres
}

func pickUnchosen(chosen []bool, rng *rand.Rand) int {
	free := make([]int, 0, len(chosen))
	for i, c := range chosen {
		if !c {
			free = append(free, i)
		}
	}
	return free[rng.IntN(len(free))]
}

// lloyd alternates assignment and centre updates until the centres move less
// than tol in total squared distance or the iteration cap is reached.
func (c *Clusterer) lloyd(points [][]float64, centres [][]float64, tol float64) *driven.Clustering {
	k := len(centres)
	labels := make([]int, len(points))

	for iter := 0; iter < c.maxIter; iter++ {
		assign(points, centres, labels)
		next := updateCentres(points, labels, k)
		fillEmpty(points, labels, next)

		var shift float64
		for j := range centres {
			shift += sqDist(centres[j], next[j])
		}
		centres = next
		if shift <= tol {
			break
		}
	}

	inertia := assign(points, centres, labels)
	return &driven.Clustering{Labels: labels, Centroids: centres, Inertia: inertia}
}

// assign labels every point with its nearest centre (lowest index on ties)
// and returns the inertia.
func assign(points, centres [][]float64, labels []int) float64 {
	var inertia float64
	for i, p := range points {
		bestJ, bestD := 0, math.Inf(1)
		for j, centre := range centres {
			if d := sqDist(p, centre); d < bestD {
				bestJ, bestD = j, d
			}
		}
		labels[i] = bestJ
		inertia += bestD
	}
	return inertia
}

func updateCentres(points [][]float64, labels []int, k int) [][]float64 {
	dim := 0
	if len(points) > 0 {
		dim = len(points[0])
	}
	centres := make([][]float64, k)
	counts := make([]int, k)
	for j := range centres {
		centres[j] = make([]float64, dim)
	}
	for i, p := range points {
		j := labels[i]
		counts[j]++
		for d, x := range p {
			centres[j][d] += x
		}
	}
	for j := range centres {
		if counts[j] == 0 {
			centres[j] = nil
			continue
		}
		for d := range centres[j] {
			centres[j][d] /= float64(counts[j])
		}
	}
	return centres
}

// fillEmpty reseeds each empty cluster with the point farthest from its
// current centre, so every cluster keeps at least one member.
func fillEmpty(points [][]float64, labels []int, centres [][]float64) {
	taken := make(map[int]bool)
	for j := range centres {
		if centres[j] != nil {
			continue
		}
		far, farD := -1, -1.0
		for i, p := range points {
			if taken[i] || centres[labels[i]] == nil {
				continue
			}
			if d := sqDist(p, centres[labels[i]]); d > farD {
				far, farD = i, d
			}
		}
		if far < 0 {
			far = 0
		}
		taken[far] = true
		centres[j] = clone(points[far])
		labels[far] = j
	}
}

func meanVariance(points [][]float64) float64 {
	if len(points) == 0 || len(points[0]) == 0 {
		return 0
	}
	dim := len(points[0])
	n := float64(len(points))
	var total float64
	for d := 0; d < dim; d++ {
		var sum, sumSq float64
		for _, p := range points {
			sum += p[d]
			sumSq += p[d] * p[d]
		}
		mean := sum / n
		total += sumSq/n - mean*mean
	}
	return total / float64(dim)
}

func sqDist(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

func clone(p []float64) []float64 {
	out := make([]float64, len(p))
	copy(out, p)
	return out
}
