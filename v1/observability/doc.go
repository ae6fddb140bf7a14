// Package observability defines the Observer seam shared by all instrumented
// packages in this module.
//
// Components report each significant operation (query execution, cache
// lookups, destructive mutations) as an [OperationContext]. What happens with
// the event is up to the configured [Observer]. The metrics package ships a
// Prometheus-backed implementation, and tests can plug in a recording fake.
//
// Keeping the seam in its own package avoids import cycles between the
// components that emit events and the packages that consume them.
package observability
