package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/BerylCAtieno/thumbnail-review-api/internal/models"
	"github.com/BerylCAtieno/thumbnail-review-api/internal/reviewer"
)

// MockReviewer is a mock implementation of reviewer.Reviewer.
type MockReviewer struct {
	mock.Mock
}

func (m *MockReviewer) UploadFile(ctx context.Context, filename string, data []byte, purpose string) (*models.RemoteFile, error) {
	args := m.Called(ctx, filename, data, purpose)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RemoteFile), args.Error(1)
}

func (m *MockReviewer) DeleteFile(ctx context.Context, fileID string) (*models.DeletionStatus, error) {
	args := m.Called(ctx, fileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeletionStatus), args.Error(1)
}

func (m *MockReviewer) ListFiles(ctx context.Context) ([]models.RemoteFile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RemoteFile), args.Error(1)
}

func (m *MockReviewer) Review(ctx context.Context, in reviewer.ReviewInput) (*models.ReviewOutcome, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReviewOutcome), args.Error(1)
}

func (m *MockReviewer) ListAssistants(ctx context.Context, limit int) ([]models.Assistant, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Assistant), args.Error(1)
}

func (m *MockReviewer) CreateAssistant(ctx context.Context, params reviewer.AssistantParams) (*models.Assistant, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Assistant), args.Error(1)
}

func (m *MockReviewer) DeleteAssistant(ctx context.Context, assistantID string) (*models.DeletionStatus, error) {
	args := m.Called(ctx, assistantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DeletionStatus), args.Error(1)
}
