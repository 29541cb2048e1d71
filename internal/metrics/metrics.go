package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

// Metrics carries the service-level prometheus collectors. Handed out via fx
// so tests can construct an isolated registry.
type Metrics struct {
	CalculationsTotal  *prometheus.CounterVec
	BulkRecordsCreated prometheus.Counter
	RecalcUpdated      prometheus.Counter
	RecalcSkipped      prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CalculationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tarifa",
			Name:      "tariff_calculations_total",
			Help:      "Tariff calculations by resolution method.",
		}, []string{"method"}),
		BulkRecordsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tarifa",
			Name:      "rate_records_created_total",
			Help:      "Rate configuration records persisted by bulk authoring.",
		}),
		RecalcUpdated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tarifa",
			Name:      "recalculation_updated_total",
			Help:      "Shipments whose tariff changed during batch recalculation.",
		}),
		RecalcSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tarifa",
			Name:      "recalculation_skipped_total",
			Help:      "Shipments skipped during batch recalculation.",
		}),
	}
	reg.MustRegister(m.CalculationsTotal, m.BulkRecordsCreated, m.RecalcUpdated, m.RecalcSkipped)
	return m
}

func NewDefault() *Metrics {
	return New(prometheus.DefaultRegisterer)
}

var Module = fx.Module("metrics",
	fx.Provide(NewDefault),
)
