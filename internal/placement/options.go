package placement

// Options configures the relative weight of each axis in the Node
// Ranker's composite distance (spec §4.4, §6).
type Options struct {
	CPUWeight     float64
	MemWeight     float64
	NetworkWeight float64
}

// DefaultOptions returns the spec's default weights (all 1.0).
func DefaultOptions() Options {
	return Options{CPUWeight: 1.0, MemWeight: 1.0, NetworkWeight: 1.0}
}
