package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistersOnce(t *testing.T) {
	registry := prometheus.NewRegistry()

	_, err := New(registry)
	require.NoError(t, err)

	_, err = New(registry)
	assert.Error(t, err)
}

func TestRecordReview(t *testing.T) {
	m := NewNoop()

	m.RecordReview(OutcomeInserted)
	m.RecordReview(OutcomeInserted)
	m.RecordReview(OutcomeUpdated)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ReviewsTotal.WithLabelValues(OutcomeInserted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReviewsTotal.WithLabelValues(OutcomeUpdated)))
}

func TestRecordApprovalStatus_BucketsUnknown(t *testing.T) {
	m := NewNoop()

	m.RecordApprovalStatus("approved")
	m.RecordApprovalStatus("needs human review")
	m.RecordApprovalStatus("pending")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ApprovalStatus.WithLabelValues("approved")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ApprovalStatus.WithLabelValues("other")))
}

func TestHandler_ExposesMetrics(t *testing.T) {
	m, err := New(prometheus.NewRegistry())
	require.NoError(t, err)

	m.ObserveHTTPRequest(http.MethodGet, "/health", http.StatusOK, 5*time.Millisecond)
	m.IncrementKnownContent()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `http_requests_total{method="GET",route="/health",status="200"} 1`)
	assert.Contains(t, body, "thumbnail_reviews_known_content_total 1")
}
