package repository

import (
	"context"

	"campusmarket/internal/domain/entity"
)

type MessageRepository interface {
	// CreateWithCap persists the message only while the order holds fewer
	// than limit messages. Count and write happen atomically, so two
	// concurrent posts can never both take the last slot; at the cap it
	// returns a LIMIT_EXCEEDED error.
	CreateWithCap(ctx context.Context, message *entity.Message, limit int64) error

	// ListByOrder returns the full message log, oldest first.
	ListByOrder(ctx context.Context, orderID string) ([]*entity.Message, error)

	// MarkReadExceptSender flips isRead on every message in the order not
	// authored by userID. Idempotent.
	MarkReadExceptSender(ctx context.Context, orderID, userID string) error

	// ListUnread returns unread messages across the given orders excluding
	// those authored by userID, oldest first.
	ListUnread(ctx context.Context, orderIDs []string, userID string) ([]*entity.Message, error)
}
