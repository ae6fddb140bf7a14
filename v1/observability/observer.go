package observability

import "time"

// OperationContext carries the details of a single observed operation.
// Components fill this in and hand it to an Observer; they never interpret
// it themselves.
type OperationContext struct {
	// Component identifies the emitting package, e.g. "browser" or "resultcache".
	Component string

	// Operation is the action performed, e.g. "query", "count", "cache_hit".
	Operation string

	// Resource is the primary object of the operation (namespace, cache key).
	Resource string

	// SubResource carries additional addressing context when applicable.
	SubResource string

	// Duration is how long the operation took.
	Duration time.Duration

	// Error is non-nil when the operation failed.
	Error error

	// Size is an operation-specific payload size (row count, byte count).
	Size int64

	// Metadata holds free-form extra context.
	Metadata map[string]interface{}
}

// Observer receives operation events from instrumented components.
// Implementations typically translate events into metrics or traces.
type Observer interface {
	ObserveOperation(op OperationContext)
}
