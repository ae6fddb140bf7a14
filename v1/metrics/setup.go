package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics encapsulates the Prometheus registry and the HTTP server that
// exposes it, plus the built-in query-engine metrics.
//
// Each instance maintains its own isolated registry so that several
// browser instances in one process do not collide on metric names.
type Metrics struct {
	// Server defines the HTTP server used to expose the /metrics endpoint.
	Server *http.Server

	// Registry is the Prometheus registry where all metrics are registered.
	Registry *prometheus.Registry

	// Core built-in metrics
	queriesTotal  *prometheus.CounterVec
	queryDuration *prometheus.HistogramVec
	cacheLookups  *prometheus.CounterVec
	rowsReturned  *prometheus.HistogramVec
}

// NewMetrics initializes a Metrics instance: a dedicated registry with the
// query-engine metrics registered under a constant `service` label, and an
// HTTP server exposing /metrics for Prometheus scraping.
//
// Example:
//
//	m := metrics.NewMetrics(metrics.DefaultConfig())
//	go m.Server.ListenAndServe()
func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()

	wrappedRegistry := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	m := &Metrics{
		Registry: registry,
	}

	m.queriesTotal = createCounterVec("queries_total", "Total number of executed backend queries", []string{"operation", "status"})
	m.queryDuration = createHistogramVec("query_duration_seconds", "Duration of backend queries in seconds", []string{"operation"}, prometheus.DefBuckets)
	m.cacheLookups = createCounterVec("cache_lookups_total", "Result cache lookups partitioned by outcome", []string{"result"})
	m.rowsReturned = createHistogramVec("rows_returned", "Rows returned per served page", []string{"operation"}, []float64{0, 10, 25, 50, 100, 250, 500})

	wrappedRegistry.MustRegister(
		m.queriesTotal,
		m.queryDuration,
		m.cacheLookups,
		m.rowsReturned,
	)

	if cfg.EnableDefaultCollectors {
		wrappedRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	m.Server = &http.Server{
		Addr:    cfg.Address,
		Handler: handler,
	}
	return m
}

func createCounterVec(name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: name,
			Help: help,
		},
		labels,
	)
}

func createHistogramVec(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    name,
			Help:    help,
			Buckets: buckets,
		},
		labels,
	)
}
