// Package metrics defines and registers the custom Prometheus metrics of the
// text classification API. Metrics are registered with the default registry
// on package initialisation through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "textapi"

// ── Classification metrics ────────────────────────────────────────────────────

// PredictionsTotal counts persisted predictions.
// Label:
//   - label: the class assigned by the classifier (e.g. "Positivo")
var PredictionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "predictions_total",
		Help:      "Total number of predictions persisted, by label.",
	},
	[]string{"label"},
)

// PredictionErrorsTotal counts failed predictions.
// Label:
//   - reason: "text_not_found", "classify_failed" or "save_failed"
var PredictionErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "prediction_errors_total",
		Help:      "Total number of prediction requests that failed.",
	},
	[]string{"reason"},
)

// ClassificationDuration measures a single Classify call.
// Label:
//   - backend: "naive_bayes" or "openai"
var ClassificationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "classification_duration_seconds",
		Help:      "Duration of a single text classification.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"backend"},
)

// ── Model metrics ─────────────────────────────────────────────────────────────

// TrainingsTotal counts model fits.
// Label:
//   - source: "predictions" when fitted from stored data, "fallback" otherwise
var TrainingsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "trainings_total",
		Help:      "Total number of model trainings, by example source.",
	},
	[]string{"source"},
)

// TrainingExamples reports the number of examples the loaded model was fitted on.
var TrainingExamples = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "training_examples",
		Help:      "Number of examples used by the currently loaded model.",
	},
)

// RetrainQueueDepth is 1 while a retrain is pending and 0 otherwise.
var RetrainQueueDepth = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "retrain_queue_depth",
		Help:      "Number of retrain requests waiting for the worker.",
	},
)

// ── Idempotency metrics ───────────────────────────────────────────────────────

// IdempotencyTotal counts idempotency key lookups.
// Label:
//   - result: "hit" (stored prediction replayed) or "miss"
var IdempotencyTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "idempotency_total",
		Help:      "Total number of idempotency key lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)
