// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
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

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	LeadsScored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rfq_leads_scored_total",
			Help: "Total number of RFQs scored, by lead tier",
		},
		[]string{"tier"},
	)

	LeadConfidence = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "rfq_lead_confidence_score",
			Help:    "Distribution of clamped lead confidence scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	LeadPersistFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rfq_lead_persist_failures_total",
			Help: "Total number of lead scores that could not be written to the store",
		},
	)

	LeadNotifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rfq_lead_notifications_total",
			Help: "Hot lead notifications by channel and status",
		},
		[]string{"channel", "status"},
	)
)
