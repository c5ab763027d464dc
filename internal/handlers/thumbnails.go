package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/BerylCAtieno/thumbnail-review-api/internal/models"
	"github.com/BerylCAtieno/thumbnail-review-api/internal/services"
	"github.com/BerylCAtieno/thumbnail-review-api/internal/utils"
)

const maxJSONBody = 1 << 20

type ThumbnailHandler struct {
	service     services.ReviewService
	logger      *utils.Logger
	maxFileSize int64
}

func NewThumbnailHandler(service services.ReviewService, logger *utils.Logger, maxFileSize int64) *ThumbnailHandler {
	return &ThumbnailHandler{
		service:     service,
		logger:      logger,
		maxFileSize: maxFileSize,
	}
}

// ReviewThumbnail handles a multipart submission of an image and its
// transcription.
func (h *ThumbnailHandler) ReviewThumbnail(w http.ResponseWriter, r *http.Request) {
	upload, err := parseUpload(w, r, h.maxFileSize)
	if err != nil && !errors.Is(err, errNoFile) {
		respondError(h.logger, w, err)
		return
	}

	req := &models.ReviewRequest{
		UserName:      strings.TrimSpace(r.FormValue("userName")),
		UserEmail:     strings.TrimSpace(r.FormValue("userEmail")),
		Transcription: strings.TrimSpace(r.FormValue("transcription")),
		ImageURL:      strings.TrimSpace(r.FormValue("imageUrl")),
	}
	if upload != nil {
		req.File = upload.Data
		req.Filename = upload.Filename
		req.ContentType = upload.ContentType
	}

	h.logger.Info("Thumbnail review requested",
		"filename", req.Filename,
		"content_type", req.ContentType,
		"size", len(req.File),
		"user_email", req.UserEmail)

	resp, err := h.service.ReviewThumbnail(r.Context(), req)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, resp)
}

func (h *ThumbnailHandler) ListThumbnails(w http.ResponseWriter, r *http.Request) {
	thumbs, err := h.service.ListThumbnails(r.Context())
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, thumbs)
}

func (h *ThumbnailHandler) GetThumbnail(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(h.logger, w, utils.NewBadRequestError("Thumbnail ID is required"))
		return
	}

	thumb, err := h.service.GetThumbnail(r.Context(), id)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, thumb)
}

func (h *ThumbnailHandler) GetThumbnailByHash(w http.ResponseWriter, r *http.Request) {
	thumb, err := h.service.GetThumbnailByHash(r.Context(), mux.Vars(r)["hash"])
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, thumb)
}

func (h *ThumbnailHandler) UpdateThumbnail(w http.ResponseWriter, r *http.Request) {
	var upd models.ThumbnailUpdate
	if err := decodeJSON(w, r, &upd); err != nil {
		respondError(h.logger, w, err)
		return
	}

	thumb, err := h.service.UpdateThumbnail(r.Context(), mux.Vars(r)["hash"], upd)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, thumb)
}

// CreateThumbnail stores a record supplied as JSON, without a review.
func (h *ThumbnailHandler) CreateThumbnail(w http.ResponseWriter, r *http.Request) {
	var req models.CreateThumbnailRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(h.logger, w, err)
		return
	}

	thumb, err := h.service.CreateThumbnail(r.Context(), &req)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusCreated, thumb)
}

// SaveImage publishes an uploaded image in object storage.
func (h *ThumbnailHandler) SaveImage(w http.ResponseWriter, r *http.Request) {
	upload, err := parseUpload(w, r, h.maxFileSize)
	if errors.Is(err, errNoFile) {
		respondError(h.logger, w, utils.NewBadRequestError("No file provided"))
		return
	}
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	resp, err := h.service.SaveImage(r.Context(), upload.Filename, upload.Data, upload.ContentType)
	if err != nil {
		respondError(h.logger, w, err)
		return
	}

	respondJSON(h.logger, w, http.StatusOK, resp)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return utils.NewBadRequestError("Invalid JSON body")
	}
	return nil
}
