package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"campusmarket/internal/domain/entity"
	"campusmarket/internal/domain/repository"
	"campusmarket/pkg/errors"
)

type firestoreItemRepository struct {
	client *firestore.Client
}

func NewFirestoreItemRepository(client *firestore.Client) repository.ItemRepository {
	return &firestoreItemRepository{
		client: client,
	}
}

func (r *firestoreItemRepository) Create(ctx context.Context, item *entity.Item) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}

	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now

	_, err := r.client.Collection("items").Doc(item.ID).Set(ctx, item)
	if err != nil {
		return errors.Internal("Failed to create item", err)
	}

	return nil
}

func (r *firestoreItemRepository) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	doc, err := r.client.Collection("items").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Item", err)
		}
		return nil, errors.Internal("Failed to get item", err)
	}

	var item entity.Item
	if err := doc.DataTo(&item); err != nil {
		return nil, errors.Internal("Failed to parse item data", err)
	}

	return &item, nil
}

func (r *firestoreItemRepository) Update(ctx context.Context, item *entity.Item) error {
	item.UpdatedAt = time.Now()

	_, err := r.client.Collection("items").Doc(item.ID).Set(ctx, item)
	if err != nil {
		return errors.Internal("Failed to update item", err)
	}

	return nil
}

func (r *firestoreItemRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("items").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete item", err)
	}

	return nil
}

// MarkSold is transactional so only the first completing order claims the
// item; every later attempt sees isSold already true and fails.
func (r *firestoreItemRepository) MarkSold(ctx context.Context, id string) error {
	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docRef := r.client.Collection("items").Doc(id)
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Item", err)
			}
			return errors.Internal("Failed to get item", err)
		}

		var item entity.Item
		if err := doc.DataTo(&item); err != nil {
			return errors.Internal("Failed to parse item data", err)
		}

		if item.IsSold {
			return errors.InvalidState("Item is already sold", nil)
		}

		item.IsSold = true
		item.UpdatedAt = time.Now()

		return tx.Set(docRef, &item)
	})
}

func (r *firestoreItemRepository) ListUnsold(ctx context.Context) ([]*entity.Item, error) {
	iter := r.client.Collection("items").
		Where("isSold", "==", false).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)

	var items []*entity.Item
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate items", err)
		}

		var item entity.Item
		if err := doc.DataTo(&item); err != nil {
			continue
		}
		items = append(items, &item)
	}

	return items, nil
}

func (r *firestoreItemRepository) ListByIDs(ctx context.Context, ids []string) ([]*entity.Item, error) {
	var items []*entity.Item

	for _, id := range ids {
		item, err := r.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, "NOT_FOUND") {
				continue
			}
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

func (r *firestoreItemRepository) CountBySellerSince(ctx context.Context, sellerID string, since time.Time) (int64, error) {
	docs, err := r.client.Collection("items").
		Where("sellerId", "==", sellerID).
		Where("createdAt", ">=", since).
		Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to count items", err)
	}

	return int64(len(docs)), nil
}

func (r *firestoreItemRepository) List(ctx context.Context, limit, offset int) ([]*entity.Item, int64, error) {
	allDocs, err := r.client.Collection("items").OrderBy("createdAt", firestore.Desc).Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to fetch items", err)
	}

	total := int64(len(allDocs))

	start := offset
	if start > len(allDocs) {
		start = len(allDocs)
	}
	end := len(allDocs)
	if limit > 0 && start+limit < end {
		end = start + limit
	}

	var items []*entity.Item
	for _, doc := range allDocs[start:end] {
		var item entity.Item
		if err := doc.DataTo(&item); err != nil {
			continue
		}
		items = append(items, &item)
	}

	return items, total, nil
}

func (r *firestoreItemRepository) Count(ctx context.Context) (int64, error) {
	docs, err := r.client.Collection("items").Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to count items", err)
	}

	return int64(len(docs)), nil
}
