package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/BerylCAtieno/thumbnail-review-api/internal/metrics"
	"github.com/BerylCAtieno/thumbnail-review-api/internal/models"
	"github.com/BerylCAtieno/thumbnail-review-api/internal/utils"
	"github.com/BerylCAtieno/thumbnail-review-api/mocks"
)

func TestRoutes(t *testing.T) {
	svc := new(mocks.MockReviewService)
	h := NewRouter(svc, metrics.NewNoop(), utils.NewDiscardLogger(), 1<<20)

	hash := strings.Repeat("0f", 32)
	svc.On("ListThumbnails", mock.Anything).Return([]models.Thumbnail{}, nil)
	svc.On("GetThumbnail", mock.Anything, "abc").Return(&models.Thumbnail{ID: "abc"}, nil)
	svc.On("GetThumbnailByHash", mock.Anything, hash).Return(&models.Thumbnail{ContentHash: hash}, nil)
	svc.On("DeleteAssistant", mock.Anything, "asst_1").Return(&models.DeletionStatus{ID: "asst_1", Deleted: true}, nil)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/get-all-thumbnails", http.StatusOK},
		{http.MethodGet, "/thumbnails/abc", http.StatusOK},
		{http.MethodGet, "/thumbnails/hash/" + hash, http.StatusOK},
		{http.MethodDelete, "/delete-assistant/asst_1", http.StatusOK},
		{http.MethodOptions, "/review-thumbnail", http.StatusNoContent},
		{http.MethodGet, "/review-thumbnail", http.StatusMethodNotAllowed},
		{http.MethodGet, "/nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
