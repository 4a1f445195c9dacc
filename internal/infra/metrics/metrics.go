package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	NewsPagesFetched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "news_pages_fetched_total",
			Help: "The total number of news page fetches against the articles API",
		},
		[]string{"status"},
	)

	NewsFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "news_fetch_duration_seconds",
			Help:    "Duration of article page fetches",
			Buckets: prometheus.DefBuckets,
		},
	)

	MissionsSynced = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "missions_synced_total",
			Help: "The total number of missions processed by the launch sync",
		},
		[]string{"status"},
	)

	MissionsUnchangedSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "missions_unchanged_skipped_total",
			Help: "The total number of missions skipped because their content was unchanged",
		},
	)

	SyncDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mission_sync_duration_seconds",
			Help:    "Duration of launch sync cycles",
			Buckets: prometheus.DefBuckets,
		},
	)

	MissionEventsPublished = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mission_events_published_total",
			Help: "Total number of mission events published to the queue",
		},
	)

	PublishErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mission_publish_errors_total",
			Help: "Total number of mission event publish failures",
		},
	)

	DLQMessagesPublished = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dlq_messages_published_total",
			Help: "Total number of messages published to DLQ",
		},
	)

	BoardSyncDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "board_sync_duration_seconds",
			Help:    "Duration of mission board synchronization",
			Buckets: prometheus.DefBuckets,
		},
	)

	BoardSyncErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "board_sync_errors_total",
			Help: "Total number of mission board sync errors",
		},
		[]string{"status"},
	)

	BoardSyncSuccess = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "board_missions_processed_total",
			Help: "Total number of missions successfully synced to the board",
		},
		[]string{"status"},
	)
)
