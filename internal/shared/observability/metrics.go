package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	ExtractionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "classdiag_extraction_seconds",
		Help:    "Time spent extracting type declarations from a source file.",
		Buckets: prometheus.DefBuckets,
	}, []string{"language"})

	DiagramEntities = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "classdiag_diagram_entities_total",
		Help: "Number of entities in the last assembled diagram model.",
	})

	DiagramRelationships = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "classdiag_diagram_relationships_total",
		Help: "Number of inferred relationships in the last assembled diagram model.",
	})

	RendersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "classdiag_renders_total",
		Help: "Total number of diagram documents rendered, by format.",
	}, []string{"format"})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "classdiag_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})
)
