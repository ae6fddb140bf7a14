// Package metrics exposes Prometheus metrics for the query engine: query
// counts and latencies per operation, result cache hit rates, and page
// sizes, served over a dedicated /metrics HTTP endpoint.
//
// The package also provides the observability.Observer adapter that turns
// the engine's operation events into metric updates, so that no other
// package imports Prometheus directly.
package metrics
