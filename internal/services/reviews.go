package services

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/BerylCAtieno/thumbnail-review-api/internal/hasher"
	"github.com/BerylCAtieno/thumbnail-review-api/internal/metrics"
	"github.com/BerylCAtieno/thumbnail-review-api/internal/models"
	"github.com/BerylCAtieno/thumbnail-review-api/internal/repository"
	"github.com/BerylCAtieno/thumbnail-review-api/internal/reviewer"
	"github.com/BerylCAtieno/thumbnail-review-api/internal/utils"
	"github.com/BerylCAtieno/thumbnail-review-api/internal/verdict"
)

const (
	defaultImageName = "thumbnail.png"
	cleanupTimeout   = 15 * time.Second
)

// ReviewThumbnail hashes the image, has the reviewer judge it and stores the
// verdict under the content hash. A resubmission of the same bytes updates
// the existing record in place.
func (s *reviewService) ReviewThumbnail(ctx context.Context, req *models.ReviewRequest) (*models.ReviewResponse, error) {
	if err := s.validateReview(req); err != nil {
		s.metrics.RecordReview(metrics.OutcomeInvalid)
		return nil, err
	}

	contentHash := hasher.SumBytes(req.File)
	log := s.logger.With("content_hash", contentHash, "user_email", req.UserEmail)

	existing, err := s.repo.FindByContentHash(ctx, contentHash)
	if err != nil {
		log.Error("Failed to look up thumbnail", "error", err)
		return nil, utils.NewPersistenceError("Failed to look up thumbnail", err)
	}
	if existing != nil {
		s.metrics.IncrementKnownContent()
		log.Info("Thumbnail content already reviewed, record will be updated", "id", existing.ID, "previous_status", existing.ApprovalStatus)
	}

	filename := req.Filename
	if filename == "" {
		filename = defaultImageName
	}

	file, err := s.reviewer.UploadFile(ctx, filename, req.File, reviewer.PurposeVision)
	if err != nil {
		s.metrics.RecordReview(metrics.OutcomeUploadFailed)
		log.Error("Failed to upload thumbnail to reviewer", "error", err)
		return nil, utils.NewExternalServiceError("Failed to upload thumbnail for review", err)
	}
	log = log.With("file_id", file.ID)

	outcome, err := s.reviewer.Review(ctx, reviewer.ReviewInput{
		FileID:        file.ID,
		Transcription: req.Transcription,
	})
	if err != nil {
		s.metrics.RecordReview(metrics.OutcomeReviewFailed)
		log.Error("Thumbnail review failed", "error", err)
		s.discardFile(ctx, log, file.ID)
		return nil, utils.NewExternalServiceError("Thumbnail review failed", err)
	}
	s.metrics.ObserveReviewDuration(outcome.Elapsed)

	v := verdict.Parse(outcome.Verdict)
	status := verdict.NormalizeStatus(v.Result)
	if status == "" {
		s.metrics.RecordReview(metrics.OutcomeEmptyVerdict)
		log.Error("Reviewer verdict has no result", "verdict", outcome.Verdict)
		s.discardFile(ctx, log, file.ID)
		return nil, utils.NewExternalServiceError("Reviewer returned a malformed verdict", nil)
	}

	stored, inserted, err := s.repo.Upsert(ctx, &models.Thumbnail{
		UserName:             req.UserName,
		UserEmail:            req.UserEmail,
		FileID:               file.ID,
		Title:                req.Transcription,
		ImageURL:             req.ImageURL,
		ApprovalStatus:       status,
		ApprovalStatusReason: v.Reason,
		Warning:              v.Warning,
		ContentHash:          contentHash,
	})
	if err != nil {
		s.metrics.RecordReview(metrics.OutcomeStoreFailed)
		log.Error("Failed to store review", "error", err)
		s.discardFile(ctx, log, file.ID)
		return nil, utils.NewPersistenceError("Failed to save review", err)
	}

	if inserted {
		s.metrics.RecordReview(metrics.OutcomeInserted)
	} else {
		s.metrics.RecordReview(metrics.OutcomeUpdated)
	}
	s.metrics.RecordApprovalStatus(status)

	log.Info("Thumbnail reviewed",
		"id", stored.ID,
		"status", status,
		"inserted", inserted,
		"elapsed", outcome.Elapsed)

	return &models.ReviewResponse{
		Thumbnail:  stored,
		Transcript: outcome.Transcript,
		Inserted:   inserted,
	}, nil
}

func (s *reviewService) validateReview(req *models.ReviewRequest) error {
	var fieldErrs []utils.FieldError

	if err := validateStruct(req); err != nil {
		var appErr *utils.AppError
		if !errors.As(err, &appErr) || appErr.Errors == nil {
			return err
		}
		fieldErrs = appErr.Errors
	}
	switch {
	case len(req.File) == 0:
		fieldErrs = append(fieldErrs, utils.FieldError{Field: "file", Msg: "Image file is required"})
	case !models.IsImageType(req.ContentType):
		fieldErrs = append(fieldErrs, utils.FieldError{Field: "file", Msg: "Only PNG, JPEG, GIF and WEBP images are allowed"})
	}

	if len(fieldErrs) > 0 {
		return utils.NewValidationError(fieldErrs)
	}
	return nil
}

// discardFile removes an uploaded reviewer file whose review will not be
// stored. It runs even when the request context is already cancelled.
func (s *reviewService) discardFile(ctx context.Context, log *utils.Logger, fileID string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()

	if _, err := s.reviewer.DeleteFile(ctx, fileID); err != nil {
		s.metrics.IncrementOrphanedFiles()
		log.Warn("Orphaned reviewer file left behind", "error", err)
		return
	}
	log.Info("Discarded reviewer file of failed review")
}

func (s *reviewService) ListThumbnails(ctx context.Context) ([]models.Thumbnail, error) {
	thumbs, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("Failed to list thumbnails", "error", err)
		return nil, utils.NewPersistenceError("Failed to retrieve thumbnails", err)
	}
	return thumbs, nil
}

func (s *reviewService) GetThumbnail(ctx context.Context, id string) (*models.Thumbnail, error) {
	thumb, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get thumbnail", "error", err, "id", id)
		return nil, utils.NewPersistenceError("Failed to retrieve thumbnail", err)
	}
	if thumb == nil {
		return nil, utils.NewNotFoundError("Thumbnail not found")
	}
	return thumb, nil
}

func (s *reviewService) GetThumbnailByHash(ctx context.Context, contentHash string) (*models.Thumbnail, error) {
	if !hasher.Valid(contentHash) {
		return nil, utils.NewBadRequestError("Invalid content hash")
	}

	thumb, err := s.repo.FindByContentHash(ctx, contentHash)
	if err != nil {
		s.logger.Error("Failed to get thumbnail", "error", err, "content_hash", contentHash)
		return nil, utils.NewPersistenceError("Failed to retrieve thumbnail", err)
	}
	if thumb == nil {
		return nil, utils.NewNotFoundError("Thumbnail not found")
	}
	return thumb, nil
}

// CreateThumbnail stores a record directly, without a review. Content that
// already has a record is rejected.
func (s *reviewService) CreateThumbnail(ctx context.Context, req *models.CreateThumbnailRequest) (*models.Thumbnail, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	status := verdict.NormalizeStatus(req.ApprovalStatus)
	if status == "" {
		return nil, utils.NewValidationError([]utils.FieldError{{Field: "approvalStatus", Msg: fieldMessages["ApprovalStatus"]}})
	}

	thumb := &models.Thumbnail{
		UserName:             req.UserName,
		UserEmail:            req.UserEmail,
		FileID:               req.FileID,
		Title:                req.Title,
		ImageURL:             req.ImageURL,
		ApprovalStatus:       status,
		ApprovalStatusReason: req.ApprovalStatusReason,
		Warning:              req.Warning,
		ContentHash:          req.ContentHash,
	}

	if err := s.repo.Insert(ctx, thumb); err != nil {
		if errors.Is(err, repository.ErrDuplicateContentHash) {
			return nil, utils.NewConflictError("Thumbnail with this content hash already exists")
		}
		s.logger.Error("Failed to insert thumbnail", "error", err, "content_hash", req.ContentHash)
		return nil, utils.NewPersistenceError("Failed to save thumbnail", err)
	}

	s.logger.Info("Thumbnail created", "id", thumb.ID, "content_hash", thumb.ContentHash)
	return thumb, nil
}

func (s *reviewService) UpdateThumbnail(ctx context.Context, contentHash string, upd models.ThumbnailUpdate) (*models.Thumbnail, error) {
	if !hasher.Valid(contentHash) {
		return nil, utils.NewBadRequestError("Invalid content hash")
	}

	// Quote-only statuses normalize to empty and leave the stored one alone.
	upd.ApprovalStatus = verdict.NormalizeStatus(upd.ApprovalStatus)

	thumb, err := s.repo.Update(ctx, contentHash, upd)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.NewNotFoundError("Thumbnail not found")
	}
	if err != nil {
		s.logger.Error("Failed to update thumbnail", "error", err, "content_hash", contentHash)
		return nil, utils.NewPersistenceError("Failed to update thumbnail", err)
	}

	return thumb, nil
}

// SaveImage publishes an image in the bucket and returns its public URL.
func (s *reviewService) SaveImage(ctx context.Context, filename string, data []byte, contentType string) (*models.SaveImageResponse, error) {
	if len(data) == 0 {
		return nil, utils.NewBadRequestError("No file provided")
	}

	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "" || name == "." || name == "/" {
		name = defaultImageName
	}
	key := fmt.Sprintf("thumbnails/%s", name)

	url, err := s.storage.Upload(ctx, key, data, contentType)
	if err != nil {
		s.logger.Error("Failed to upload image", "error", err, "key", key)
		return nil, utils.NewExternalServiceError("Failed to store image", err)
	}

	s.logger.Info("Image stored", "key", key, "size", len(data))
	return &models.SaveImageResponse{URL: url, Key: key}, nil
}
