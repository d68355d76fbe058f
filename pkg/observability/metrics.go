package observability

import (
	"github.com/aretw0/etchmory/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the collectors fed by domain hooks.
type Metrics struct {
	DecisionsMarked     *prometheus.CounterVec
	RecordingsCompleted *prometheus.CounterVec
	RecordingSize       *prometheus.HistogramVec
	Merges              prometheus.Counter
	NodesCreated        prometheus.Counter
	NodesReused         prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		DecisionsMarked: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "etchmory",
				Name:      "decisions_marked_total",
				Help:      "Decisions marked, by recorder backend.",
			},
			[]string{"backend"},
		),
		RecordingsCompleted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "etchmory",
				Name:      "recordings_completed_total",
				Help:      "Recordings moved to the complete state, by recorder backend.",
			},
			[]string{"backend"},
		),
		RecordingSize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "etchmory",
				Name:      "recording_size",
				Help:      "Decisions per completed recording.",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
			},
			[]string{"backend"},
		),
		Merges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "etchmory",
			Name:      "merges_total",
			Help:      "Recordings merged into unified trees.",
		}),
		NodesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "etchmory",
			Name:      "merge_nodes_created_total",
			Help:      "Nodes appended while merging.",
		}),
		NodesReused: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "etchmory",
			Name:      "merge_nodes_reused_total",
			Help:      "Existing prefix nodes followed while merging.",
		}),
	}

	reg.MustRegister(
		m.DecisionsMarked,
		m.RecordingsCompleted,
		m.RecordingSize,
		m.Merges,
		m.NodesCreated,
		m.NodesReused,
	)
	return m
}

// RecorderHooks returns hooks that feed the recorder collectors.
func (m *Metrics) RecorderHooks() domain.RecorderHooks {
	return domain.RecorderHooks{
		OnMark: func(e *domain.RecordingEvent) {
			m.DecisionsMarked.WithLabelValues(e.Backend).Inc()
		},
		OnComplete: func(e *domain.RecordingEvent) {
			m.RecordingsCompleted.WithLabelValues(e.Backend).Inc()
			m.RecordingSize.WithLabelValues(e.Backend).Observe(float64(e.Size))
		},
	}
}

// MergeHooks returns hooks that feed the merge collectors.
func (m *Metrics) MergeHooks() domain.MergeHooks {
	return domain.MergeHooks{
		OnMerge: func(e *domain.MergeEvent) {
			m.Merges.Inc()
			m.NodesCreated.Add(float64(e.Created))
			m.NodesReused.Add(float64(e.Reused))
		},
	}
}
