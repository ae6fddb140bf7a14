package browser

import (
	"github.com/recordatlas/browse/v1/executor"
	"github.com/recordatlas/browse/v1/query"
)

// Status is the load state of the store.
type Status string

const (
	// StatusIdle means no fetch has run yet.
	StatusIdle Status = "idle"
	// StatusLoading means a fetch is in flight.
	StatusLoading Status = "loading"
	// StatusSuccess means the last fetch completed and Rows reflect it.
	StatusSuccess Status = "success"
	// StatusFailed means the last fetch failed; Rows keep the last
	// successful page.
	StatusFailed Status = "failed"
)

// Snapshot is a consistent read of the store's visible state. It is a
// detached copy; mutating it does not affect the store.
type Snapshot struct {
	Status Status
	Err    error

	Rows       []executor.Row
	Total      int
	TotalKnown bool

	Aggregations      map[string]any
	AggregationGroups []executor.AggregationGroup

	Page     int
	PageSize int

	Query query.QueryConfig
}

// HasNextPage reports whether forward navigation can make progress. With
// an unknown total a full page is assumed to have a successor.
func (s Snapshot) HasNextPage() bool {
	if s.TotalKnown {
		return s.Page*s.PageSize < s.Total
	}
	return len(s.Rows) == s.PageSize
}
