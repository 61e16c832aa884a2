package repository

import (
	"context"
	"sort"
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

type firestoreOrderRepository struct {
	client *firestore.Client
}

func NewFirestoreOrderRepository(client *firestore.Client) repository.OrderRepository {
	return &firestoreOrderRepository{
		client: client,
	}
}

func (r *firestoreOrderRepository) Create(ctx context.Context, order *entity.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}

	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	_, err := r.client.Collection("orders").Doc(order.ID).Set(ctx, order)
	if err != nil {
		return errors.Internal("Failed to create order", err)
	}

	return nil
}

func (r *firestoreOrderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	doc, err := r.client.Collection("orders").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Order", err)
		}
		return nil, errors.Internal("Failed to get order", err)
	}

	var order entity.Order
	if err := doc.DataTo(&order); err != nil {
		return nil, errors.Internal("Failed to parse order data", err)
	}

	return &order, nil
}

// UpdateStatus runs the transition inside a Firestore transaction so a
// concurrent confirm/cancel on the same order cannot both win.
func (r *firestoreOrderRepository) UpdateStatus(ctx context.Context, id string, allowedFrom []string, to string) (*entity.Order, error) {
	var updated entity.Order

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docRef := r.client.Collection("orders").Doc(id)
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Order", err)
			}
			return errors.Internal("Failed to get order", err)
		}

		var order entity.Order
		if err := doc.DataTo(&order); err != nil {
			return errors.Internal("Failed to parse order data", err)
		}

		allowed := false
		for _, from := range allowedFrom {
			if order.Status == from {
				allowed = true
				break
			}
		}
		if !allowed {
			return errors.InvalidState("Order status is "+order.Status, nil)
		}

		order.Status = to
		order.UpdatedAt = time.Now()
		updated = order

		return tx.Set(docRef, &order)
	})

	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *firestoreOrderRepository) SetReviewed(ctx context.Context, id string) error {
	_, err := r.client.Collection("orders").Doc(id).Update(ctx, []firestore.Update{
		{Path: "isReviewed", Value: true},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Order", err)
		}
		return errors.Internal("Failed to mark order reviewed", err)
	}

	return nil
}

func (r *firestoreOrderRepository) ListByBuyer(ctx context.Context, buyerID string, filter repository.OrderFilter, limit, offset int) ([]*entity.Order, int64, error) {
	return r.listByField(ctx, "buyerId", buyerID, filter, limit, offset)
}

func (r *firestoreOrderRepository) ListBySeller(ctx context.Context, sellerID string, filter repository.OrderFilter, limit, offset int) ([]*entity.Order, int64, error) {
	return r.listByField(ctx, "sellerId", sellerID, filter, limit, offset)
}

// listByField fetches all orders for one party and applies the status/date
// filters and pagination in memory, which keeps us off composite Firestore
// indexes for every filter combination.
func (r *firestoreOrderRepository) listByField(ctx context.Context, field, value string, filter repository.OrderFilter, limit, offset int) ([]*entity.Order, int64, error) {
	docs, err := r.client.Collection("orders").Where(field, "==", value).Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to fetch orders", err)
	}

	var orders []*entity.Order
	for _, doc := range docs {
		var order entity.Order
		if err := doc.DataTo(&order); err != nil {
			continue
		}
		if filter.Status != "" && order.Status != filter.Status {
			continue
		}
		if filter.From != nil && order.UpdatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && order.UpdatedAt.After(*filter.To) {
			continue
		}
		orders = append(orders, &order)
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].UpdatedAt.After(orders[j].UpdatedAt)
	})

	total := int64(len(orders))

	start := offset
	if start > len(orders) {
		start = len(orders)
	}
	end := len(orders)
	if limit > 0 && start+limit < end {
		end = start + limit
	}

	return orders[start:end], total, nil
}

func (r *firestoreOrderRepository) ListByParticipant(ctx context.Context, userID string) ([]*entity.Order, error) {
	var orders []*entity.Order
	seen := make(map[string]bool)

	for _, field := range []string{"buyerId", "sellerId"} {
		docs, err := r.client.Collection("orders").Where(field, "==", userID).Documents(ctx).GetAll()
		if err != nil {
			return nil, errors.Internal("Failed to fetch orders", err)
		}
		for _, doc := range docs {
			var order entity.Order
			if err := doc.DataTo(&order); err != nil {
				continue
			}
			if seen[order.ID] {
				continue
			}
			seen[order.ID] = true
			orders = append(orders, &order)
		}
	}

	return orders, nil
}

func (r *firestoreOrderRepository) HasActiveOrder(ctx context.Context, buyerID, itemID string) (bool, error) {
	docs, err := r.client.Collection("orders").
		Where("buyerId", "==", buyerID).
		Where("itemId", "==", itemID).
		Documents(ctx).GetAll()
	if err != nil {
		return false, errors.Internal("Failed to query orders", err)
	}

	for _, doc := range docs {
		var order entity.Order
		if err := doc.DataTo(&order); err != nil {
			continue
		}
		if !order.IsTerminal() {
			return true, nil
		}
	}

	return false, nil
}

func (r *firestoreOrderRepository) List(ctx context.Context, limit, offset int) ([]*entity.Order, int64, error) {
	query := r.client.Collection("orders").OrderBy("createdAt", firestore.Desc)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to fetch orders", err)
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

	var orders []*entity.Order
	for _, doc := range allDocs[start:end] {
		var order entity.Order
		if err := doc.DataTo(&order); err != nil {
			continue
		}
		orders = append(orders, &order)
	}

	return orders, total, nil
}

func (r *firestoreOrderRepository) Count(ctx context.Context) (int64, error) {
	iter := r.client.Collection("orders").Documents(ctx)
	defer iter.Stop()

	var count int64
	for {
		_, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, errors.Internal("Failed to count orders", err)
		}
		count++
	}

	return count, nil
}

func (r *firestoreOrderRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	iter := r.client.Collection("orders").Documents(ctx)
	defer iter.Stop()

	counts := make(map[string]int64)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to count orders", err)
		}

		var order entity.Order
		if err := doc.DataTo(&order); err != nil {
			continue
		}
		counts[order.Status]++
	}

	return counts, nil
}
