package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	JobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	JobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	JobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	ApplicantsDisqualified = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "worker_applicants_disqualified_total",
			Help: "Applicants disqualified by the skills gate",
		},
	)

	OracleRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oracle_requests_total",
			Help: "AI model calls by oracle flavor and outcome",
		},
		[]string{"oracle", "outcome"},
	)

	OracleDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "oracle_request_duration_seconds",
			Help:    "Duration of AI model calls in seconds",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
		},
		[]string{"oracle"},
	)
)
