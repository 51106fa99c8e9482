package config

import "runtime"

// EstimateOptimalWorkers provides a heuristic worker count for concurrent
// classification without running benchmarks. Classifications are CPU-bound
// and independent of each other.
//
// Returns:
//   - int: The number of candidates to classify concurrently.
func EstimateOptimalWorkers() int {
	numCPU := runtime.NumCPU()

	switch {
	case numCPU <= 2:
		return numCPU
	case numCPU <= 8:
		return numCPU - 1
	default:
		return numCPU - 2
	}
}
