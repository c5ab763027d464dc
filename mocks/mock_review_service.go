package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/BerylCAtieno/thumbnail-review-api/internal/models"
)

// MockReviewService is a mock implementation of services.ReviewService.
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) ReviewThumbnail(ctx context.Context, req *models.ReviewRequest) (*models.ReviewResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReviewResponse), args.Error(1)
}

func (m *MockReviewService) ListThumbnails(ctx context.Context) ([]models.Thumbnail, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Thumbnail), args.Error(1)
}

func (m *MockReviewService) GetThumbnail(ctx context.Context, id string) (*models.Thumbnail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Thumbnail), args.Error(1)
}

func (m *MockReviewService) GetThumbnailByHash(ctx context.Context, contentHash string) (*models.Thumbnail, error) {
	args := m.Called(ctx, contentHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Thumbnail), args.Error(1)
}

func (m *MockReviewService) CreateThumbnail(ctx context.Context, req *models.CreateThumbnailRequest) (*models.Thumbnail, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Thumbnail), args.Error(1)
}

func (m *MockReviewService) UpdateThumbnail(ctx context.Context, contentHash string, upd models.ThumbnailUpdate) (*models.Thumbnail, error) {
	args := m.Called(ctx, contentHash, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Thumbnail), args.Error(1)
}

func (m *MockReviewService) SaveImage(ctx context.Context, filename string, data []byte, contentType string) (*models.SaveImageResponse, error) {
	args := m.Called(ctx, filename, data, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SaveImageResponse), args.Error(1)
}

func (m *MockReviewService) ListAssistants(ctx context.Context) ([]models.Assistant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Assistant), args.Error(1)
}

func (m *MockReviewService) CreateAssistant(ctx context.Context) (*models.Assistant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Assistant), args.Error(1)
}

func (m *MockReviewService) DeleteAssistant(ctx context.Context, assistantID string) (*models.DeletionStatus, error) {
	args := m.Called(ctx, assistantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeletionStatus), args.Error(1)
}

func (m *MockReviewService) ListFiles(ctx context.Context) ([]models.RemoteFile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RemoteFile), args.Error(1)
}

func (m *MockReviewService) UploadImage(ctx context.Context, filename string, data []byte) (*models.RemoteFile, error) {
	args := m.Called(ctx, filename, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RemoteFile), args.Error(1)
}
