package client

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics — счётчики клиента. Нулевой указатель безопасен: все методы no-op.
type Metrics struct {
	requests *prometheus.CounterVec
	refresh  *prometheus.CounterVec
	waiters  prometheus.Gauge
}

// NewMetrics создаёт и регистрирует метрики в reg (nil: без регистрации).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aprilwind",
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "Backend calls by navigation outcome.",
		}, []string{"outcome"}),
		refresh: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aprilwind",
			Subsystem: "client",
			Name:      "refresh_total",
			Help:      "Token refresh exchanges by result.",
		}, []string{"result"}),
		waiters: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "aprilwind",
			Subsystem: "client",
			Name:      "refresh_waiters",
			Help:      "Requests queued behind an in-flight refresh.",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.requests, m.refresh, m.waiters)
	}

	return m
}

func (m *Metrics) observeRequest(err error) {
	if m == nil {
		return
	}

	m.requests.WithLabelValues(OutcomeOf(err).String()).Inc()
}

func (m *Metrics) observeRefresh(result string) {
	if m == nil {
		return
	}

	m.refresh.WithLabelValues(result).Inc()
}

func (m *Metrics) waiterAdded() {
	if m == nil {
		return
	}

	m.waiters.Inc()
}

func (m *Metrics) waiterDone() {
	if m == nil {
		return
	}

	m.waiters.Dec()
}
