// Package metrics exposes Prometheus metrics for thumbnail reviews and the HTTP surface.
package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Review outcomes.
const (
	OutcomeInserted     = "inserted"
	OutcomeUpdated      = "updated"
	OutcomeInvalid      = "invalid"
	OutcomeReviewFailed = "review_failed"
	OutcomeStoreFailed  = "store_failed"
	OutcomeUploadFailed = "upload_failed"
	OutcomeEmptyVerdict = "empty_verdict"
)

// Metrics holds every collector the service records to.
type Metrics struct {
	ReviewsTotal   *prometheus.CounterVec
	ReviewDuration prometheus.Histogram
	ApprovalStatus *prometheus.CounterVec
	KnownContent   prometheus.Counter
	OrphanedFiles  prometheus.Counter
	HTTPRequests   *prometheus.CounterVec
	HTTPDuration   *prometheus.HistogramVec
	registry       *prometheus.Registry
}

// New registers all collectors on registry.
func New(registry *prometheus.Registry) (*Metrics, error) {
	m := &Metrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, fmt.Errorf("failed to register thumbnail review metrics: %w", err)
	}
	return m, nil
}

// NewNoop returns metrics bound to a private registry, for tests and CLI commands.
func NewNoop() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}
	m.initMetrics()
	m.registry.MustRegister(m)
	return m
}

func (m *Metrics) initMetrics() {
	m.ReviewsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "thumbnail_reviews_total",
		Help: "Total number of thumbnail reviews by outcome.",
	}, []string{"outcome"})

	m.ReviewDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "thumbnail_review_duration_seconds",
		Help:    "Time spent waiting for the reviewer to produce a verdict.",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
	})

	m.ApprovalStatus = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "thumbnail_approval_status_total",
		Help: "Stored verdicts by normalized approval status.",
	}, []string{"status"})

	m.KnownContent = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "thumbnail_reviews_known_content_total",
		Help: "Reviews submitted for content that already had a record.",
	})

	m.OrphanedFiles = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "thumbnail_orphaned_files_total",
		Help: "Reviewer files left behind because a review could not be stored.",
	})

	m.HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests.",
	}, []string{"method", "route", "status"})

	m.HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
}

// RecordReview counts one finished review.
func (m *Metrics) RecordReview(outcome string) {
	m.ReviewsTotal.WithLabelValues(outcome).Inc()
}

// ObserveReviewDuration records how long the reviewer took.
func (m *Metrics) ObserveReviewDuration(d time.Duration) {
	m.ReviewDuration.Observe(d.Seconds())
}

// RecordApprovalStatus counts a stored verdict. Free-text statuses are
// bucketed so label cardinality stays bounded.
func (m *Metrics) RecordApprovalStatus(status string) {
	switch status {
	case "approved", "rejected":
	default:
		status = "other"
	}
	m.ApprovalStatus.WithLabelValues(status).Inc()
}

// IncrementKnownContent counts a resubmission of already reviewed bytes.
func (m *Metrics) IncrementKnownContent() {
	m.KnownContent.Inc()
}

// IncrementOrphanedFiles counts a reviewer file that could not be cleaned up.
func (m *Metrics) IncrementOrphanedFiles() {
	m.OrphanedFiles.Inc()
}

// ObserveHTTPRequest records one served request.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	m.HTTPRequests.WithLabelValues(method, route, fmt.Sprint(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Describe implements the prometheus.Collector interface.
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	m.ReviewsTotal.Describe(ch)
	ch <- m.ReviewDuration.Desc()
	m.ApprovalStatus.Describe(ch)
	ch <- m.KnownContent.Desc()
	ch <- m.OrphanedFiles.Desc()
	m.HTTPRequests.Describe(ch)
	m.HTTPDuration.Describe(ch)
}

// Collect implements the prometheus.Collector interface.
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.ReviewsTotal.Collect(ch)
	ch <- m.ReviewDuration
	m.ApprovalStatus.Collect(ch)
	ch <- m.KnownContent
	ch <- m.OrphanedFiles
	m.HTTPRequests.Collect(ch)
	m.HTTPDuration.Collect(ch)
}
