package services

import (
	"context"

	"github.com/BerylCAtieno/thumbnail-review-api/internal/metrics"
	"github.com/BerylCAtieno/thumbnail-review-api/internal/models"
	"github.com/BerylCAtieno/thumbnail-review-api/internal/repository"
	"github.com/BerylCAtieno/thumbnail-review-api/internal/reviewer"
	"github.com/BerylCAtieno/thumbnail-review-api/internal/storage"
	"github.com/BerylCAtieno/thumbnail-review-api/internal/utils"
)

type ReviewService interface {
	ReviewThumbnail(ctx context.Context, req *models.ReviewRequest) (*models.ReviewResponse, error)
	ListThumbnails(ctx context.Context) ([]models.Thumbnail, error)
	GetThumbnail(ctx context.Context, id string) (*models.Thumbnail, error)
	GetThumbnailByHash(ctx context.Context, contentHash string) (*models.Thumbnail, error)
	CreateThumbnail(ctx context.Context, req *models.CreateThumbnailRequest) (*models.Thumbnail, error)
	UpdateThumbnail(ctx context.Context, contentHash string, upd models.ThumbnailUpdate) (*models.Thumbnail, error)
	SaveImage(ctx context.Context, filename string, data []byte, contentType string) (*models.SaveImageResponse, error)

	ListAssistants(ctx context.Context) ([]models.Assistant, error)
	CreateAssistant(ctx context.Context) (*models.Assistant, error)
	DeleteAssistant(ctx context.Context, assistantID string) (*models.DeletionStatus, error)
	ListFiles(ctx context.Context) ([]models.RemoteFile, error)
	UploadImage(ctx context.Context, filename string, data []byte) (*models.RemoteFile, error)
}

// Options holds the reviewer settings used when creating assistants.
type Options struct {
	AssistantName  string
	Model          string
	GuidelinesPath string
}

type reviewService struct {
	repo     repository.Repository
	storage  storage.Storage
	reviewer reviewer.Reviewer
	metrics  *metrics.Metrics
	logger   *utils.Logger
	opts     Options
}

// NewService wires the service to its collaborators. All of them are built
// by the caller; nothing here reads configuration or dials out.
func NewService(
	repo repository.Repository,
	store storage.Storage,
	rev reviewer.Reviewer,
	m *metrics.Metrics,
	logger *utils.Logger,
	opts Options,
) ReviewService {
	if m == nil {
		m = metrics.NewNoop()
	}

	return &reviewService{
		repo:     repo,
		storage:  store,
		reviewer: rev,
		metrics:  m,
		logger:   logger,
		opts:     opts,
	}
}
