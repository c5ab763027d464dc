package services

import (
	"context"
	"net/http"
	"os"
	"path/filepath"

	"github.com/BerylCAtieno/thumbnail-review-api/internal/extractor"
	"github.com/BerylCAtieno/thumbnail-review-api/internal/models"
	"github.com/BerylCAtieno/thumbnail-review-api/internal/reviewer"
	"github.com/BerylCAtieno/thumbnail-review-api/internal/utils"
)

const assistantListLimit = 20

const baseInstructions = `You review YouTube thumbnails for legal, ethical and content compliance. ` +
	`Scrutinize each thumbnail for nudity, revealing images, ethical violations and logo misuse. ` +
	`Answer in this format:
Result: Approved or Rejected
Reason: the reason for rejection, or N/A when approved
Warnings/Recommendations: guidance on logo usage, permissions and authenticity of the content

A transcription of the text in the thumbnail is provided by the user. ` +
	`Withhold judgment until both the image and the transcription have been provided.`

func (s *reviewService) ListAssistants(ctx context.Context) ([]models.Assistant, error) {
	list, err := s.reviewer.ListAssistants(ctx, assistantListLimit)
	if err != nil {
		s.logger.Error("Failed to list assistants", "error", err)
		return nil, utils.NewExternalServiceError("Failed to list assistants", err)
	}
	return list, nil
}

// CreateAssistant uploads the guidelines document and creates a reviewer
// assistant whose instructions carry the guideline text.
func (s *reviewService) CreateAssistant(ctx context.Context) (*models.Assistant, error) {
	name := filepath.Base(s.opts.GuidelinesPath)

	data, err := os.ReadFile(s.opts.GuidelinesPath)
	if err != nil {
		s.logger.Error("Failed to read guidelines", "error", err, "path", s.opts.GuidelinesPath)
		return nil, utils.NewInternalError("Failed to read thumbnail guidelines")
	}

	guidelines, err := extractor.ExtractGuidelines(name, data)
	if err != nil {
		s.logger.Error("Failed to extract guidelines", "error", err, "path", s.opts.GuidelinesPath)
		return nil, utils.NewInternalError("Failed to read thumbnail guidelines")
	}

	file, err := s.reviewer.UploadFile(ctx, name, data, reviewer.PurposeAssistants)
	if err != nil {
		s.logger.Error("Failed to upload guidelines", "error", err)
		return nil, utils.NewExternalServiceError("Failed to upload guidelines", err)
	}

	assistant, err := s.reviewer.CreateAssistant(ctx, reviewer.AssistantParams{
		Name:         s.opts.AssistantName,
		Model:        s.opts.Model,
		Instructions: baseInstructions + "\n\nThumbnail guidelines:\n" + guidelines,
	})
	if err != nil {
		s.logger.Error("Failed to create assistant", "error", err, "guidelines_file_id", file.ID)
		return nil, utils.NewExternalServiceError("Failed to create assistant", err)
	}

	s.logger.Info("Assistant created", "assistant_id", assistant.ID, "guidelines_file_id", file.ID, "guidelines_chars", len(guidelines))
	return assistant, nil
}

func (s *reviewService) DeleteAssistant(ctx context.Context, assistantID string) (*models.DeletionStatus, error) {
	if assistantID == "" {
		return nil, utils.NewBadRequestError("Assistant ID is required")
	}

	status, err := s.reviewer.DeleteAssistant(ctx, assistantID)
	if reviewer.IsAPIStatus(err, http.StatusNotFound) {
		return nil, utils.NewNotFoundError("Assistant not found")
	}
	if err != nil {
		s.logger.Error("Failed to delete assistant", "error", err, "assistant_id", assistantID)
		return nil, utils.NewExternalServiceError("Failed to delete assistant", err)
	}

	s.logger.Info("Assistant deleted", "assistant_id", assistantID)
	return status, nil
}

func (s *reviewService) ListFiles(ctx context.Context) ([]models.RemoteFile, error) {
	files, err := s.reviewer.ListFiles(ctx)
	if err != nil {
		s.logger.Error("Failed to list reviewer files", "error", err)
		return nil, utils.NewExternalServiceError("Failed to list files", err)
	}
	return files, nil
}

// UploadImage puts an image on the reviewer platform without reviewing it.
func (s *reviewService) UploadImage(ctx context.Context, filename string, data []byte) (*models.RemoteFile, error) {
	if len(data) == 0 {
		return nil, utils.NewBadRequestError("No file provided")
	}
	if filename == "" {
		filename = defaultImageName
	}

	file, err := s.reviewer.UploadFile(ctx, filename, data, reviewer.PurposeVision)
	if err != nil {
		s.logger.Error("Failed to upload image to reviewer", "error", err)
		return nil, utils.NewExternalServiceError("Failed to upload image", err)
	}
	return file, nil
}
