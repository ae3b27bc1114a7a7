package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	slugKindDefault = "default"
	slugKindRandom  = "random"
)

type Metrics struct {
	slugsAssigned  *prometheus.CounterVec
	slugCollisions prometheus.Counter
	refunds        *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		slugsAssigned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "railzway",
			Subsystem: "stripe",
			Name:      "slugs_assigned_total",
			Help:      "Slugs assigned to payment methods, by kind.",
		}, []string{"kind"}),
		slugCollisions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "railzway",
			Subsystem: "stripe",
			Name:      "slug_collisions_total",
			Help:      "Slug candidates rejected because another payment method owns them.",
		}),
		refunds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "railzway",
			Subsystem: "stripe",
			Name:      "refunds_total",
			Help:      "Refunds requested through a gateway, by driver and outcome.",
		}, []string{"driver", "outcome"}),
	}

	for _, c := range []prometheus.Collector{m.slugsAssigned, m.slugCollisions, m.refunds} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}
