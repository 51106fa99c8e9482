// Package metrics records primality verdicts and operation timings in a
// private Prometheus registry.
package metrics
