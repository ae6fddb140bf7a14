package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// IncrementQueries increments the query counter for an operation/status
// pair.
// Example: metrics.IncrementQueries("primary", "success")
func (m *Metrics) IncrementQueries(operation, status string) {
	m.queriesTotal.WithLabelValues(operation, status).Inc()
}

// RecordQueryDuration records the duration (in seconds) of one backend
// query.
// Example: defer metrics.RecordQueryDuration(time.Now(), "count")
func (m *Metrics) RecordQueryDuration(start time.Time, operation string) {
	duration := time.Since(start).Seconds()
	m.queryDuration.WithLabelValues(operation).Observe(duration)
}

// IncrementCacheLookups counts one result cache lookup outcome, "hit" or
// "miss".
func (m *Metrics) IncrementCacheLookups(result string) {
	m.cacheLookups.WithLabelValues(result).Inc()
}

// ObserveRowsReturned records how many rows one served page carried.
func (m *Metrics) ObserveRowsReturned(operation string, rows int) {
	m.rowsReturned.WithLabelValues(operation).Observe(float64(rows))
}

// CreateCounter creates a new CounterVec metric and registers it.
func (m *Metrics) CreateCounter(name, help string, labels []string) *prometheus.CounterVec {
	counter := createCounterVec(name, help, labels)
	m.Registry.MustRegister(counter)
	return counter
}

// CreateHistogram creates a new HistogramVec metric and registers it.
func (m *Metrics) CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	hist := createHistogramVec(name, help, labels, buckets)
	m.Registry.MustRegister(hist)
	return hist
}

// CreateGauge creates a new GaugeVec metric and registers it.
func (m *Metrics) CreateGauge(name, help string, labels []string) *prometheus.GaugeVec {
	gauge := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: name,
			Help: help,
		},
		labels,
	)
	m.Registry.MustRegister(gauge)
	return gauge
}
