package transient

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus metrics of a transient provider.
type Metrics struct {
	AdaptorsCreated *prometheus.CounterVec
	AdaptorErrors   *prometheus.CounterVec
}

// NewMetrics creates and registers all metrics with the provided registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	adaptorsCreated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "variant_transient_adaptors_created_total",
		Help: "Total adaptors created by the transient provider",
	}, []string{"kind"})

	adaptorErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "variant_transient_adaptor_errors_total",
		Help: "Total adaptor requests the transient provider refused",
	}, []string{"kind"})

	reg.MustRegister(adaptorsCreated, adaptorErrors)

	return &Metrics{
		AdaptorsCreated: adaptorsCreated,
		AdaptorErrors:   adaptorErrors,
	}
}
