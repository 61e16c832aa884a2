package repository

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"campusmarket/internal/domain/entity"
	"campusmarket/internal/domain/repository"
	"campusmarket/pkg/errors"
)

// Messages live in a subcollection of their order document, so an order's
// chat log is always addressed through the order itself.
type firestoreMessageRepository struct {
	client *firestore.Client
}

func NewFirestoreMessageRepository(client *firestore.Client) repository.MessageRepository {
	return &firestoreMessageRepository{
		client: client,
	}
}

func (r *firestoreMessageRepository) messages(orderID string) *firestore.CollectionRef {
	return r.client.Collection("orders").Doc(orderID).Collection("messages")
}

func (r *firestoreMessageRepository) CreateWithCap(ctx context.Context, message *entity.Message, limit int64) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}

	message.CreatedAt = time.Now()

	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docs, err := tx.Documents(r.messages(message.OrderID)).GetAll()
		if err != nil {
			return errors.Internal("Failed to count messages", err)
		}
		if int64(len(docs)) >= limit {
			return errors.LimitExceeded("Message limit reached for this order", nil)
		}

		if err := tx.Set(r.messages(message.OrderID).Doc(message.ID), message); err != nil {
			return errors.Internal("Failed to create message", err)
		}
		return nil
	})
}

func (r *firestoreMessageRepository) ListByOrder(ctx context.Context, orderID string) ([]*entity.Message, error) {
	iter := r.messages(orderID).OrderBy("createdAt", firestore.Asc).Documents(ctx)

	var messages []*entity.Message
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate messages", err)
		}

		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			return nil, errors.Internal("Failed to parse message data", err)
		}
		messages = append(messages, &message)
	}

	return messages, nil
}

func (r *firestoreMessageRepository) MarkReadExceptSender(ctx context.Context, orderID, userID string) error {
	docs, err := r.messages(orderID).Documents(ctx).GetAll()
	if err != nil {
		return errors.Internal("Failed to fetch messages", err)
	}

	for _, doc := range docs {
		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			continue
		}
		if message.SenderID == userID || message.IsRead {
			continue
		}

		_, err := doc.Ref.Update(ctx, []firestore.Update{
			{Path: "isRead", Value: true},
		})
		if err != nil {
			return errors.Internal("Failed to update message read status", err)
		}
	}

	return nil
}

func (r *firestoreMessageRepository) ListUnread(ctx context.Context, orderIDs []string, userID string) ([]*entity.Message, error) {
	var unread []*entity.Message

	for _, orderID := range orderIDs {
		docs, err := r.messages(orderID).Where("isRead", "==", false).Documents(ctx).GetAll()
		if err != nil {
			return nil, errors.Internal("Failed to fetch unread messages", err)
		}

		for _, doc := range docs {
			var message entity.Message
			if err := doc.DataTo(&message); err != nil {
				continue
			}
			if message.SenderID == userID {
				continue
			}
			unread = append(unread, &message)
		}
	}

	sort.Slice(unread, func(i, j int) bool {
		return unread[i].CreatedAt.Before(unread[j].CreatedAt)
	})

	return unread, nil
}
