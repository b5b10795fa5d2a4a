package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ChannelsFetched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "teleflash_channels_fetched_total",
		Help: "Channels processed by the fetcher, by outcome",
	}, []string{"status"})

	PostsIngested = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "teleflash_posts_ingested_total",
		Help: "Posts newly stored per channel",
	}, []string{"channel"})

	EntitiesIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "teleflash_post_entities_ingested_total",
		Help: "Hyperlink entities appended to post_entities",
	})

	LLMRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "teleflash_llm_request_duration_seconds",
		Help:    "Duration of completion requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"model", "operation"})

	LLMRetries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "teleflash_llm_retries_total",
		Help: "Completion retries by error class",
	}, []string{"reason"})

	ReportPosts = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "teleflash_report_posts",
		Help: "Posts that passed the topic filter in the last report run",
	})

	ReportsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "teleflash_reports_published_total",
		Help: "Messages sent to the chat sink, by language and outcome",
	}, []string{"language", "status"})

	RunDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "teleflash_run_duration_seconds",
		Help:    "Duration of fetch and report runs",
		Buckets: []float64{1, 5, 30, 60, 300, 900, 1800, 3600, 7200, 14400},
	}, []string{"stage", "status"})
)
