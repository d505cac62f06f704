// Package metrics holds the Prometheus collectors for bill store activity.
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/wattbill/internal/storage"
)

// Outcome label values.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Store metrics
	StoreOperationsTotal   *prometheus.CounterVec
	StoreOperationDuration *prometheus.HistogramVec

	// Business metrics
	Bills   prometheus.Gauge
	Revenue prometheus.Gauge
}

// New creates and registers all metrics on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		StoreOperationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wattbill_store_operations_total",
				Help: "Total number of bill store operations",
			},
			[]string{"op", "outcome"},
		),
		StoreOperationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wattbill_store_operation_duration_seconds",
				Help:    "Bill store operation duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
			},
			[]string{"op"},
		),
		Bills: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "wattbill_bills",
			Help: "Number of bills seen in the last listing",
		}),
		Revenue: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "wattbill_revenue",
			Help: "Total revenue reported by the last revenue query",
		}),
	}

	reg.MustRegister(
		m.StoreOperationsTotal,
		m.StoreOperationDuration,
		m.Bills,
		m.Revenue,
	)

	return m
}

// ObserveStoreOperation records the outcome and duration of one store call.
func (m *Metrics) ObserveStoreOperation(op string, start time.Time, err error) {
	m.StoreOperationsTotal.WithLabelValues(op, Outcome(err)).Inc()
	m.StoreOperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// Outcome maps a store error to its outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, storage.ErrNotFound):
		return OutcomeNotFound
	default:
		return OutcomeError
	}
}

// WriteTextfile writes every metric gathered from g to path in the Prometheus
// text exposition format, for pickup by a node_exporter textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
