package driven

// Clustering is the outcome of partitioning points into k groups.
type Clustering struct {
	// Labels assigns each input point to a cluster index.
	Labels []int

	// Centroids holds one centre per cluster, in cluster index order.
	Centroids [][]float64

	// Inertia is the summed squared distance of points to their centroid.
	Inertia float64
}

// ClusterOptions tunes a single clustering run.
// Zero values keep the clusterer's configured defaults.
type ClusterOptions struct {
	// Seed makes initialisation reproducible.
	Seed uint64

	// Restarts is how many initialisations are tried; the best one wins.
	Restarts int
}

// Clusterer partitions dense points into exactly k clusters.
type Clusterer interface {
	// Cluster requires len(points) >= k and k > 0.
	Cluster(points [][]float64, k int, opts ClusterOptions) (*Clustering, error)
}
