package repository

import (
	"context"
	"time"

	"campusmarket/internal/domain/entity"
)

type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	Delete(ctx context.Context, id string) error

	// MarkSold flips isSold exactly once; marking an already sold item
	// returns an INVALID_STATE error so concurrent completions cannot both
	// claim the item.
	MarkSold(ctx context.Context, id string) error

	ListUnsold(ctx context.Context) ([]*entity.Item, error)
	ListByIDs(ctx context.Context, ids []string) ([]*entity.Item, error)
	CountBySellerSince(ctx context.Context, sellerID string, since time.Time) (int64, error)

	List(ctx context.Context, limit, offset int) ([]*entity.Item, int64, error)
	Count(ctx context.Context) (int64, error)
}
