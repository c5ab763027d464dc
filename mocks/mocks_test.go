package mocks

import (
	"github.com/BerylCAtieno/thumbnail-review-api/internal/repository"
	"github.com/BerylCAtieno/thumbnail-review-api/internal/reviewer"
	"github.com/BerylCAtieno/thumbnail-review-api/internal/services"
	"github.com/BerylCAtieno/thumbnail-review-api/internal/storage"
)

var (
	_ repository.Repository  = (*MockRepository)(nil)
	_ storage.Storage        = (*MockStorage)(nil)
	_ reviewer.Reviewer      = (*MockReviewer)(nil)
	_ services.ReviewService = (*MockReviewService)(nil)
)
