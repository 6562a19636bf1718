package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the news service. HTTP request
// metrics are recorded by the server middleware; the entity counters are
// incremented by the mutation handlers. All metrics are registered via
// promauto with the default registry.
type Metrics struct {
	// HTTPRequestsTotal counts HTTP requests, labeled by method, route pattern and status code.
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration observes request duration in seconds, labeled by method and route pattern.
	HTTPRequestDuration *prometheus.HistogramVec

	// ArticlesListed observes the number of articles returned per listing request.
	ArticlesListed prometheus.Histogram

	// ArticlesCreated counts articles created.
	ArticlesCreated prometheus.Counter

	// ArticlesDeleted counts articles deleted (with their comments).
	ArticlesDeleted prometheus.Counter

	// CommentsCreated counts comments created.
	CommentsCreated prometheus.Counter

	// CommentsDeleted counts comments deleted.
	CommentsDeleted prometheus.Counter

	// TopicsCreated counts topics created.
	TopicsCreated prometheus.Counter

	// VoteUpdates counts vote-delta updates, labeled by entity (article, comment).
	VoteUpdates *prometheus.CounterVec

	// RequestsRateLimited counts requests rejected by the rate limiter.
	RequestsRateLimited prometheus.Counter
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
// The namespace is used as a prefix for all metric names.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds by method and route",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method", "route"}),

		ArticlesListed: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "articles_per_listing",
			Help:      "Number of articles returned per listing request",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100},
		}),
		ArticlesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "articles_created_total",
			Help:      "Total number of articles created",
		}),
		ArticlesDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "articles_deleted_total",
			Help:      "Total number of articles deleted",
		}),
		CommentsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comments_created_total",
			Help:      "Total number of comments created",
		}),
		CommentsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comments_deleted_total",
			Help:      "Total number of comments deleted",
		}),
		TopicsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "topics_created_total",
			Help:      "Total number of topics created",
		}),
		VoteUpdates: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "vote_updates_total",
			Help:      "Total number of vote-delta updates by entity",
		}, []string{"entity"}),
		RequestsRateLimited: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_rate_limited_total",
			Help:      "Total number of requests rejected by the rate limiter",
		}),
	}
}
