package crawl

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// crawlsTotal tracks every crawl attempt, batch or single.
	crawlsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "url2md_crawls_total",
		Help: "The total number of crawl attempts dispatched to the renderer.",
	})
	// crawlErrorsTotal tracks crawls that ended as success=false.
	crawlErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "url2md_crawl_errors_total",
		Help: "The total number of crawls that failed.",
	})
	// batchRequestsTotal tracks accepted batch requests.
	batchRequestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "url2md_batch_requests_total",
		Help: "The total number of batch crawl requests dispatched.",
	})
	// renderDuration observes end-to-end render latency per URL.
	renderDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "url2md_render_duration_seconds",
		Help:    "Time spent rendering a single URL to markdown.",
		Buckets: prometheus.DefBuckets,
	})
)
