// Package metrics exposes the bridge's Prometheus counters on a private
// registry.
package metrics

import (
	"net/http"

	"vda5050-bridge/internal/validation"
	"vda5050-bridge/internal/vda5050"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "vda5050"

// Metrics groups the bridge collectors. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	decoded      *prometheus.CounterVec
	decodeErrors *prometheus.CounterVec
	violations   *prometheus.CounterVec
	published    *prometheus.CounterVec
	connected    prometheus.Gauge
}

// New registers all collectors on a fresh registry together with the Go and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		decoded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "messages_decoded_total",
				Help:      "Messages decoded from the broker.",
			},
			[]string{"kind"},
		),
		decodeErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "decode_errors_total",
				Help:      "Messages rejected by the decoder.",
			},
			[]string{"kind", "reason"},
		),
		violations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "violations_total",
				Help:      "Structural violations found by the validator.",
			},
			[]string{"kind", "violation"},
		),
		published: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "messages_published_total",
				Help:      "Messages published to the broker.",
			},
			[]string{"kind"},
		),
		connected: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "mqtt_connected",
				Help:      "1 while the broker session is up.",
			},
		),
	}

	m.registry.MustRegister(
		m.decoded, m.decodeErrors, m.violations, m.published, m.connected,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Decoded(kind string) {
	if m == nil {
		return
	}
	m.decoded.WithLabelValues(kind).Inc()
}

// DecodeFailed counts err under the codec's error classification.
func (m *Metrics) DecodeFailed(kind string, err error) {
	if m == nil {
		return
	}
	reason := vda5050.ErrorKind(err)
	if reason == "" {
		reason = "other"
	}
	m.decodeErrors.WithLabelValues(kind, reason).Inc()
}

func (m *Metrics) Violations(kind string, vs validation.Violations) {
	if m == nil {
		return
	}
	for _, v := range vs {
		m.violations.WithLabelValues(kind, string(v.Kind)).Inc()
	}
}

func (m *Metrics) Published(kind string) {
	if m == nil {
		return
	}
	m.published.WithLabelValues(kind).Inc()
}

func (m *Metrics) SetConnected(up bool) {
	if m == nil {
		return
	}
	if up {
		m.connected.Set(1)
	} else {
		m.connected.Set(0)
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
