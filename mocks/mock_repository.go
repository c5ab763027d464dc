package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/BerylCAtieno/thumbnail-review-api/internal/models"
)

// MockRepository is a mock implementation of repository.Repository.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindByContentHash(ctx context.Context, contentHash string) (*models.Thumbnail, error) {
	args := m.Called(ctx, contentHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Thumbnail), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*models.Thumbnail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Thumbnail), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context) ([]models.Thumbnail, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Thumbnail), args.Error(1)
}

func (m *MockRepository) Insert(ctx context.Context, thumb *models.Thumbnail) error {
	args := m.Called(ctx, thumb)
	return args.Error(0)
}

func (m *MockRepository) Update(ctx context.Context, contentHash string, upd models.ThumbnailUpdate) (*models.Thumbnail, error) {
	args := m.Called(ctx, contentHash, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Thumbnail), args.Error(1)
}

func (m *MockRepository) Upsert(ctx context.Context, thumb *models.Thumbnail) (*models.Thumbnail, bool, error) {
	args := m.Called(ctx, thumb)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.Thumbnail), args.Bool(1), args.Error(2)
}
