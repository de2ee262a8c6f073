// Copyright (c) 2026 Temple. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package metrics defines the Prometheus collectors exported on /metrics.

Collectors are created per [Metrics] instance rather than registered
globally, so tests can build an isolated registry.
*/
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "temple"

// Metrics holds every collector of the API process.
type Metrics struct {
	bulkRows     *prometheus.CounterVec
	bulkDuration prometheus.Histogram
	httpDuration *prometheus.HistogramVec
}

// New creates the collectors. Register them with [Metrics.PrometheusCollectors].
func New() *Metrics {
	return &Metrics{
		bulkRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bulk_import",
			Name:      "rows_total",
			Help:      "Rows processed by the Deity bulk import, by outcome.",
		}, []string{"outcome"}),
		bulkDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "bulk_import",
			Name:      "duration_seconds",
			Help:      "Wall time of one bulk import request.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route pattern and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// PrometheusCollectors returns all collectors for registration.
func (m *Metrics) PrometheusCollectors() []prometheus.Collector {
	return []prometheus.Collector{m.bulkRows, m.bulkDuration, m.httpDuration}
}

// ObserveBulk records the outcome of one bulk import.
func (m *Metrics) ObserveBulk(succeeded, failed int, elapsed time.Duration) {
	m.bulkRows.WithLabelValues("success").Add(float64(succeeded))
	m.bulkRows.WithLabelValues("failure").Add(float64(failed))
	m.bulkDuration.Observe(elapsed.Seconds())
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func Handler(registry *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
}

// NewRegistry returns a registry holding the Go runtime, process and application collectors.
func NewRegistry(m *Metrics) *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(m.PrometheusCollectors()...)
	return registry
}
