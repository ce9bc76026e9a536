package observability

import (
	"context"

	"github.com/aretw0/japanizer/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors fed by the pipeline hooks.
type Metrics struct {
	Messages      *prometheus.CounterVec
	KanjiRequests *prometheus.CounterVec
	KanjiDuration prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Messages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "japanizer_messages_total",
				Help: "Messages processed, by gate decision",
			},
			[]string{"decision"},
		),
		KanjiRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "japanizer_kanji_requests_total",
				Help: "Requests to the kanji conversion service, by result",
			},
			[]string{"result"},
		),
		KanjiDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "japanizer_kanji_duration_seconds",
				Help:    "Duration of kanji conversion requests",
				Buckets: prometheus.DefBuckets,
			},
		),
	}

	for _, c := range []prometheus.Collector{m.Messages, m.KanjiRequests, m.KanjiDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns callbacks that record into m.
func (m *Metrics) Hooks() domain.Hooks {
	return domain.Hooks{
		OnDecision: func(_ context.Context, e *domain.DecisionEvent) {
			m.Messages.WithLabelValues(string(e.Decision)).Inc()
		},
		OnKanji: func(_ context.Context, e *domain.KanjiEvent) {
			result := "ok"
			if e.Err != nil {
				result = "error"
			}
			m.KanjiRequests.WithLabelValues(result).Inc()
			m.KanjiDuration.Observe(e.Duration.Seconds())
		},
	}
}
