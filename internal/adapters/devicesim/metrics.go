package devicesim

import (
	"github.com/prometheus/client_golang/prometheus"
)

// metrics holds the simulator's Prometheus instrumentation. Each Server gets
// its own registry so multiple simulators can coexist in one process.
type metrics struct {
	registry *prometheus.Registry

	claims      *prometheus.CounterVec
	deployments *prometheus.CounterVec
	routingSets *prometheus.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{registry: prometheus.NewRegistry()}

	m.claims = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "patchbay_sim",
		Name:      "claims_total",
		Help:      "Ownership claims by outcome.",
	}, []string{"outcome"})

	m.deployments = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "patchbay_sim",
		Name:      "instrument_deployments_total",
		Help:      "Instrument slot deployments by outcome.",
	}, []string{"outcome"})

	m.routingSets = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "patchbay_sim",
		Name:      "routing_updates_total",
		Help:      "Connection set replacements by outcome.",
	}, []string{"outcome"})

	m.registry.MustRegister(m.claims, m.deployments, m.routingSets)
	return m
}

func outcome(err error) string {
	if err != nil {
		return "rejected"
	}
	return "ok"
}
