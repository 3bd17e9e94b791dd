package observability

import (
	"context"
	"net/http"

	"github.com/aretw0/rotator/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "rotator"

// Metrics holds the Prometheus collectors of one process.
type Metrics struct {
	registry *prometheus.Registry

	Transitions *prometheus.CounterVec
	Rejections  *prometheus.CounterVec
	Autoplay    *prometheus.GaugeVec
	Index       *prometheus.GaugeVec
}

// NewMetrics creates collectors registered on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transitions_total",
				Help:      "Applied carousel transitions.",
			},
			[]string{"carousel", "source", "direction"},
		),
		Rejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rejected_intents_total",
				Help:      "Intents refused by the controller.",
			},
			[]string{"carousel", "source", "reason"},
		),
		Autoplay: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "autoplay_enabled",
				Help:      "1 while autoplay may advance the carousel.",
			},
			[]string{"carousel"},
		),
		Index: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "active_index",
				Help:      "Index of the active item.",
			},
			[]string{"carousel"},
		),
	}
	m.registry.MustRegister(m.Transitions, m.Rejections, m.Autoplay, m.Index)
	return m
}

// Observe seeds the gauges with a carousel's initial state.
func (m *Metrics) Observe(carousel string, s domain.State) {
	m.Index.WithLabelValues(carousel).Set(float64(s.Index))
	m.Autoplay.WithLabelValues(carousel).Set(boolGauge(s.Autoplay))
}

// Hooks returns lifecycle hooks that feed the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransition: func(_ context.Context, e *domain.TransitionEvent) {
			m.Transitions.WithLabelValues(e.Carousel, string(e.Source), e.Direction.String()).Inc()
			m.Index.WithLabelValues(e.Carousel).Set(float64(e.Index))
		},
		OnReject: func(_ context.Context, e *domain.RejectEvent) {
			m.Rejections.WithLabelValues(e.Carousel, string(e.Source), e.Reason).Inc()
		},
		OnAutoplay: func(_ context.Context, e *domain.AutoplayEvent) {
			m.Autoplay.WithLabelValues(e.Carousel).Set(boolGauge(e.Enabled))
		},
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry, e.g. to add process collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
