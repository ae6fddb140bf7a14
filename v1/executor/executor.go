package executor

import (
	"context"

	"github.com/recordatlas/browse/v1/query"
)

//go:generate mockgen -source=executor.go -destination=mock_executor.go -package=executor

// Executor runs compiled backend queries against one namespace of the
// search store. Implementations translate the wire query into their
// backend's native request and normalize failures through Classify.
type Executor interface {
	// ExecuteQuery runs a single compiled query and returns its rows or
	// aggregates. A query carrying aggregate_by yields Aggregations (and
	// AggregationGroups when group_by is set) and no rows.
	ExecuteQuery(ctx context.Context, namespace string, q *query.BackendQuery) (*Result, error)
}

// Mutator deletes rows from a namespace. It is split from Executor so that
// read-only deployments can wire a query path without a mutation path.
type Mutator interface {
	// DeleteRows removes the rows with the given keys. Missing keys are
	// not an error.
	DeleteRows(ctx context.Context, namespace string, keys []string) error
}

// Pinger reports whether the backend is reachable and the executor is
// usable.
type Pinger interface {
	Ping(ctx context.Context) error
}
