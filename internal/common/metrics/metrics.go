package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for ChatRequests.
const (
	OutcomeAnswered    = "answered"
	OutcomeRejected    = "rejected"
	OutcomeRateLimited = "rate_limited"
	OutcomeFailed      = "failed"
)

var (
	ChatRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "archibald_chat_requests_total",
			Help: "Chat requests by outcome",
		},
		[]string{"outcome"},
	)

	ChatDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "archibald_chat_duration_seconds",
			Help:    "End to end chat pipeline duration in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20},
		},
		[]string{"outcome"},
	)

	IntentTags = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "archibald_intent_tags_total",
			Help: "Intent tags detected in chat messages",
		},
		[]string{"tag"},
	)

	DetectedLanguages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "archibald_detected_languages_total",
			Help: "Languages detected in chat messages",
		},
		[]string{"language"},
	)

	ExternalCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "archibald_external_call_duration_seconds",
			Help: "Duration of calls to translation and generation backends",
		},
		[]string{"service", "status"},
	)

	TranslationCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "archibald_translation_cache_total",
			Help: "Translation cache lookups by result",
		},
		[]string{"result"},
	)

	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)
)
