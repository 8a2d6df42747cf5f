package classifier

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Classification outcomes.
const (
	OutcomeLLM      = "llm"
	OutcomeFallback = "fallback"
	OutcomeEmpty    = "empty"
)

var (
	classificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cognilevel_classifications_total",
		Help: "Total response classifications by outcome",
	}, []string{"outcome"})

	classificationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cognilevel_classification_duration_seconds",
		Help:    "Duration of classification client calls",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
	})

	correctionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cognilevel_classification_corrections_total",
		Help: "Malformed classifier answers sent back to the model for correction",
	})
)
