package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the wallet mapping service.
type Metrics struct {
	ProvisionsTotal     *prometheus.CounterVec
	OverridesTotal      *prometheus.CounterVec
	IssuerCallsTotal    *prometheus.CounterVec
	IssuerDiscardsTotal prometheus.Counter
	ProvisionDurationMs prometheus.Histogram
}

// New creates and registers all wallet metrics.
func New() *Metrics {
	return &Metrics{
		ProvisionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "walletmap_provisions_total",
			Help: "Provisioning calls by outcome",
		}, []string{"outcome"}),
		OverridesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "walletmap_overrides_total",
			Help: "Override calls by outcome",
		}, []string{"outcome"}),
		IssuerCallsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "walletmap_issuer_calls_total",
			Help: "Address issuer invocations by scope",
		}, []string{"scope"}),
		IssuerDiscardsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "walletmap_issuer_discards_total",
			Help: "Minted candidate addresses discarded after losing a write race",
		}),
		ProvisionDurationMs: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "walletmap_provision_duration_ms",
			Help:    "End to end provisioning latency in milliseconds",
			Buckets: []float64{1, 2.5, 5, 10, 25, 50, 100, 250, 500},
		}),
	}
}

// ObserveProvisionDuration records one provisioning call's latency.
func (m *Metrics) ObserveProvisionDuration(d time.Duration) {
	m.ProvisionDurationMs.Observe(float64(d.Microseconds()) / 1000.0)
}
