package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters exported at /metrics
var (
	PredictionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "churn_predictions_total",
		Help: "Total churn predictions served, by label",
	}, []string{"label"})

	ScoringFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "churn_scoring_failures_total",
		Help: "Total scoring requests that failed at the model service",
	})

	AuthFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "churn_auth_failures_total",
		Help: "Total authentication failures, by reason",
	}, []string{"reason"})
)
