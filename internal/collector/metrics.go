package collector

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts pipeline activity. They are exported as a node_exporter textfile.
type Metrics struct {
	KeystrokesBuffered prometheus.Counter
	EventsDiscarded    prometheus.Counter
	PollErrors         prometheus.Counter
	Flushes            *prometheus.CounterVec
	FlushDuration      prometheus.Histogram
	RecordsCommitted   prometheus.Counter
	RecordsDropped     prometheus.Counter
	BufferLength       prometheus.Gauge

	gatherer prometheus.Gatherer
}

// NewMetrics registers the pipeline metrics on reg.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		KeystrokesBuffered: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "keystats",
			Subsystem: "pump",
			Name:      "keystrokes_buffered_total",
			Help:      "Key presses appended to the buffer",
		}),
		EventsDiscarded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "keystats",
			Subsystem: "pump",
			Name:      "events_discarded_total",
			Help:      "Input events dropped by the normalizer (releases, repeats, non-keyboard)",
		}),
		PollErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "keystats",
			Subsystem: "pump",
			Name:      "poll_errors_total",
			Help:      "Wait or dispatch failures that skipped a pump cycle",
		}),
		Flushes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "keystats",
			Subsystem: "buffer",
			Name:      "flushes_total",
			Help:      "Buffer flush attempts",
		}, []string{"trigger", "status"}),
		FlushDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "keystats",
			Subsystem: "buffer",
			Name:      "flush_duration_seconds",
			Help:      "Time spent committing a buffer to the store",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		RecordsCommitted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "keystats",
			Subsystem: "buffer",
			Name:      "records_committed_total",
			Help:      "Keystroke records durably committed",
		}),
		RecordsDropped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "keystats",
			Subsystem: "buffer",
			Name:      "records_dropped_total",
			Help:      "Keystroke records lost to failed commits",
		}),
		BufferLength: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "keystats",
			Subsystem: "buffer",
			Name:      "length",
			Help:      "Records currently waiting in the buffer",
		}),
		gatherer: reg,
	}
}

// RecordFlush records the outcome of one flush attempt.
func (m *Metrics) RecordFlush(trigger FlushTrigger, records int, durationSec float64, err error) {
	status := "success"
	if err != nil {
		status = "error"
		m.RecordsDropped.Add(float64(records))
	} else {
		m.RecordsCommitted.Add(float64(records))
	}
	m.Flushes.WithLabelValues(string(trigger), status).Inc()
	m.FlushDuration.Observe(durationSec)
	m.BufferLength.Set(0)
}

// WriteTextfile atomically writes the current metric values to path.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.gatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
