package repository

import (
	"context"

	"campusmarket/internal/domain/entity"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	ListByReviewedUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Review, int64, error)
}
