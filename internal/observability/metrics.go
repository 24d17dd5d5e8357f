// Package observability provides Prometheus metrics for the record store.
package observability

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heartmarshall/intakelog/internal/domain"
	"github.com/heartmarshall/intakelog/internal/store"
)

// Operation outcomes used as the status label.
const (
	StatusSuccess     = "success"
	StatusError       = "error"
	StatusUnavailable = "unavailable"
)

// StoreMetrics contains Prometheus metrics for record store operations.
type StoreMetrics struct {
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	eventsTotal       *prometheus.CounterVec
	records           prometheus.Gauge
	amountTotal       prometheus.Counter

	collectors []prometheus.Collector
}

// NewStoreMetrics creates store metrics and registers them with registry.
func NewStoreMetrics(registry prometheus.Registerer) (*StoreMetrics, error) {
	m := &StoreMetrics{}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *StoreMetrics) initMetrics() {
	m.operationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_store_operations_total",
			Help: "Total number of record store operations",
		},
		[]string{"operation", "status"},
	)

	m.operationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "intake_store_operation_duration_seconds",
			Help:    "Time taken for record store operations",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 15), // 0.1ms to ~1.6s
		},
		[]string{"operation"},
	)

	m.eventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_store_events_total",
			Help: "Total number of change events emitted by the record store",
		},
		[]string{"kind"},
	)

	m.records = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "intake_records",
		Help: "Number of records currently stored",
	})

	m.amountTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "intake_amount_logged_total",
		Help: "Sum of all logged amounts since process start",
	})

	m.collectors = []prometheus.Collector{
		m.operationsTotal,
		m.operationDuration,
		m.eventsTotal,
		m.records,
		m.amountTotal,
	}
}

// Describe implements the Collector interface.
func (m *StoreMetrics) Describe(ch chan<- *prometheus.Desc) {
	for _, c := range m.collectors {
		c.Describe(ch)
	}
}

// Collect implements the Collector interface.
func (m *StoreMetrics) Collect(ch chan<- prometheus.Metric) {
	for _, c := range m.collectors {
		c.Collect(ch)
	}
}

// ObserveOperation records the outcome and latency of one store operation.
func (m *StoreMetrics) ObserveOperation(op string, duration time.Duration, err error) {
	status := StatusSuccess
	switch {
	case errors.Is(err, domain.ErrStoreUnavailable):
		status = StatusUnavailable
	case err != nil:
		status = StatusError
	}

	m.operationsTotal.WithLabelValues(op, status).Inc()
	m.operationDuration.WithLabelValues(op).Observe(duration.Seconds())
}

// OnEvent keeps the record gauge in step with store changes.
// It has the store.Listener signature.
func (m *StoreMetrics) OnEvent(_ context.Context, ev store.Event) {
	m.eventsTotal.WithLabelValues(string(ev.Kind)).Inc()

	switch ev.Kind {
	case store.EventInitialized:
		m.records.Set(float64(ev.Count))
	case store.EventInserted:
		m.records.Inc()
		if ev.Record != nil {
			m.amountTotal.Add(ev.Record.Amount)
		}
	case store.EventCleared:
		m.records.Set(0)
	}
}

// Metrics holds the application registry and its collectors.
type Metrics struct {
	registry *prometheus.Registry
	Store    *StoreMetrics
}

// NewMetrics creates a registry with Go runtime, process and store collectors.
func NewMetrics() (*Metrics, error) {
	registry := prometheus.NewRegistry()

	if err := registry.Register(collectors.NewGoCollector()); err != nil {
		return nil, err
	}
	if err := registry.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, err
	}

	storeMetrics, err := NewStoreMetrics(registry)
	if err != nil {
		return nil, err
	}

	return &Metrics{registry: registry, Store: storeMetrics}, nil
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
