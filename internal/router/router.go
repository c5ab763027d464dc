package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/BerylCAtieno/thumbnail-review-api/internal/handlers"
	"github.com/BerylCAtieno/thumbnail-review-api/internal/metrics"
	"github.com/BerylCAtieno/thumbnail-review-api/internal/middleware"
	"github.com/BerylCAtieno/thumbnail-review-api/internal/services"
	"github.com/BerylCAtieno/thumbnail-review-api/internal/utils"
)

func NewRouter(reviewService services.ReviewService, m *metrics.Metrics, logger *utils.Logger, maxFileSize int64) http.Handler {
	r := mux.NewRouter()

	// Middlewares
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics(m))
	r.Use(middleware.CORS())

	thumbHandler := handlers.NewThumbnailHandler(reviewService, logger, maxFileSize)
	assistantHandler := handlers.NewAssistantHandler(reviewService, logger, maxFileSize)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods(http.MethodGet)
	r.Handle("/metrics", m.Handler()).Methods(http.MethodGet)

	// Reviews and records
	r.HandleFunc("/review-thumbnail", thumbHandler.ReviewThumbnail).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/get-all-thumbnails", thumbHandler.ListThumbnails).Methods(http.MethodGet)
	r.HandleFunc("/thumbnails/hash/{hash}", thumbHandler.GetThumbnailByHash).Methods(http.MethodGet)
	r.HandleFunc("/thumbnails/hash/{hash}", thumbHandler.UpdateThumbnail).Methods(http.MethodPatch, http.MethodOptions)
	r.HandleFunc("/thumbnails/{id}", thumbHandler.GetThumbnail).Methods(http.MethodGet)
	r.HandleFunc("/thumbnail-data", thumbHandler.CreateThumbnail).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/save-database", thumbHandler.SaveImage).Methods(http.MethodPost, http.MethodOptions)

	// Reviewer platform
	r.HandleFunc("/thumbnail-review/create-assistant", assistantHandler.CreateAssistant).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/get-assistants", assistantHandler.ListAssistants).Methods(http.MethodGet)
	r.HandleFunc("/delete-assistant/{id}", assistantHandler.DeleteAssistant).Methods(http.MethodDelete, http.MethodOptions)
	r.HandleFunc("/get-file-list", assistantHandler.ListFiles).Methods(http.MethodGet)
	r.HandleFunc("/image-create", assistantHandler.UploadImage).Methods(http.MethodPost, http.MethodOptions)

	return r
}
