package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Document store metrics. Kept in their own package so storage and the HTTP layer
// can both reach them without an import cycle.
var (
	StoreOperations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wardrobe_store_operations_total",
		Help: "Document loads and saves by document and operation",
	}, []string{"document", "op"})

	StoreOperationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wardrobe_store_operation_duration_seconds",
		Help:    "Latency of whole-document loads and saves",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
	}, []string{"document", "op"})

	StoreCorruptDocuments = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wardrobe_store_corrupt_documents_total",
		Help: "Loads that failed to parse and were treated as empty",
	}, []string{"document"})
)

// RegisterStore registers the store metrics on reg (or the default registerer if nil).
func RegisterStore(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, c := range []prometheus.Collector{StoreOperations, StoreOperationDuration, StoreCorruptDocuments} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}
	return nil
}

// ObserveStore records one store operation that started at start.
func ObserveStore(document, op string, start time.Time) {
	StoreOperations.WithLabelValues(document, op).Inc()
	StoreOperationDuration.WithLabelValues(document, op).Observe(time.Since(start).Seconds())
}
