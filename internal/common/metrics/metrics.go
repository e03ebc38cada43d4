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

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	MatchScoresComputed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "match_scores_computed_total",
			Help: "Total number of pairwise match scores computed",
		},
	)

	RankingPoolSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ranking_pool_size",
			Help:    "Number of candidates scored per ranking request",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
	)

	RankingCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ranking_cache_requests_total",
			Help: "Ranked match cache lookups by outcome",
		},
		[]string{"outcome"},
	)
)
