package libraries

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters for the two activities worth watching in production: how busy the
// annotation stream is, and whether exports succeed.
var (
	AnnotationEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "floormapper_annotation_events_total",
		Help: "Annotation surface events received, by event type.",
	}, []string{"type"})

	Exports = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "floormapper_exports_total",
		Help: "Export attempts, by outcome.",
	}, []string{"outcome"})
)
