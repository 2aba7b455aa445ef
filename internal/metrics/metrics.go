// Package metrics exposes the engine's Prometheus counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ExercisesGenerated counts persisted exercise instances by kind.
	ExercisesGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "practice_engine",
		Name:      "exercises_generated_total",
		Help:      "Exercise instances generated and persisted.",
	}, []string{"subject", "kind"})

	// AttemptsSubmitted counts logged attempts by outcome.
	AttemptsSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "practice_engine",
		Name:      "attempts_submitted_total",
		Help:      "Answer submissions, labelled by result.",
	}, []string{"result"})

	// Reveals counts policy-approved reveal disclosures.
	Reveals = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "practice_engine",
		Name:      "reveals_total",
		Help:      "Secret payload disclosures through the reveal path.",
	})

	// SessionsCompleted counts sessions that reached their target.
	SessionsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "practice_engine",
		Name:      "sessions_completed_total",
		Help:      "Practice sessions flipped to completed.",
	})
)
