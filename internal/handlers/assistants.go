package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/BerylCAtieno/thumbnail-review-api/internal/models"
	"github.com/BerylCAtieno/thumbnail-review-api/internal/services"
	"github.com/BerylCAtieno/thumbnail-review-api/internal/utils"
)

// AssistantHandler manages reviewer assistants and files on the reviewer platform.
type AssistantHandler struct {
	service     services.ReviewService
	logger      *utils.Logger
	maxFileSize int64
}

func NewAssistantHandler(service services.ReviewService, logger *utils.Logger, maxFileSize int64) *AssistantHandler {
	return &AssistantHandler{
		service:     service,
		logger:      logger,
		maxFileSize: maxFileSize,
	}
}

func (h *AssistantHandler) CreateAssistant(w http.ResponseWriter, r *http.Request) {
	assistant, err := h.service.CreateAssistant(r.Context())
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{"assistant": assistant})
}

func (h *AssistantHandler) ListAssistants(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListAssistants(r.Context())
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{"data": list})
}

func (h *AssistantHandler) DeleteAssistant(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.DeleteAssistant(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{"data": status})
}

func (h *AssistantHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	files, err := h.service.ListFiles(r.Context())
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, map[string]interface{}{"data": files})
}

// UploadImage puts an image on the reviewer platform without reviewing it.
func (h *AssistantHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	upload, err := parseUpload(w, r, h.maxFileSize)
	if errors.Is(err, errNoFile) {
		respondError(h.logger, w, utils.NewBadRequestError("No file provided"))
		return
	}
	if err != nil {
		respondError(h.logger, w, err)
		return
	}
	if !models.IsImageType(upload.ContentType) {
		respondError(h.logger, w, utils.NewBadRequestError("Only PNG, JPEG, GIF and WEBP images are allowed"))
		return
	}

	file, err := h.service.UploadImage(r.Context(), upload.Filename, upload.Data)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, file)
}
