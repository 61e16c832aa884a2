package repository

import (
	"context"
	"time"

	"campusmarket/internal/domain/entity"
)

// OrderFilter narrows order history listings. Zero values mean "no filter".
type OrderFilter struct {
	Status string
	From   *time.Time
	To     *time.Time
}

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)

	// UpdateStatus transitions the order to the given status only if its
	// current status is one of allowedFrom, atomically. It returns the
	// updated order, or an INVALID_STATE error when the precondition fails.
	// This is the compare-and-swap that keeps concurrent confirm/cancel
	// calls from racing to an inconsistent outcome.
	UpdateStatus(ctx context.Context, id string, allowedFrom []string, to string) (*entity.Order, error)

	SetReviewed(ctx context.Context, id string) error

	ListByBuyer(ctx context.Context, buyerID string, filter OrderFilter, limit, offset int) ([]*entity.Order, int64, error)
	ListBySeller(ctx context.Context, sellerID string, filter OrderFilter, limit, offset int) ([]*entity.Order, int64, error)

	// ListByParticipant returns every order where the user is buyer or
	// seller, for the chat unread summary.
	ListByParticipant(ctx context.Context, userID string) ([]*entity.Order, error)

	// HasActiveOrder reports whether the buyer already holds a
	// non-terminal order for the item.
	HasActiveOrder(ctx context.Context, buyerID, itemID string) (bool, error)

	List(ctx context.Context, limit, offset int) ([]*entity.Order, int64, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
}
