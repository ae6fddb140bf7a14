package metrics

import (
	"github.com/recordatlas/browse/v1/observability"
)

// Observer bridges the observability seam onto the Prometheus metrics.
// Components emit OperationContext values without knowing about
// Prometheus; this adapter turns them into counter and histogram updates.
type Observer struct {
	metrics *Metrics
}

// NewObserver wraps a Metrics instance as an observability.Observer.
func NewObserver(m *Metrics) *Observer {
	return &Observer{metrics: m}
}

// ObserveOperation records one operation outcome. Result cache lookups
// feed the hit/miss counter; everything else feeds the query counter and
// duration histogram under "<component>.<operation>".
func (o *Observer) ObserveOperation(op observability.OperationContext) {
	if o == nil || o.metrics == nil {
		return
	}

	if op.Component == "resultcache" {
		result := "miss"
		if hit, ok := op.Metadata["hit"].(bool); ok && hit {
			result = "hit"
		}
		o.metrics.IncrementCacheLookups(result)
		return
	}

	operation := op.Component + "." + op.Operation
	status := "success"
	if op.Error != nil {
		status = "error"
	}
	o.metrics.IncrementQueries(operation, status)
	o.metrics.queryDuration.WithLabelValues(operation).Observe(op.Duration.Seconds())
	if op.Size > 0 {
		o.metrics.ObserveRowsReturned(operation, int(op.Size))
	}
}

var _ observability.Observer = (*Observer)(nil)
