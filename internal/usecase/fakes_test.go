package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"campusmarket/internal/domain/entity"
	"campusmarket/internal/domain/repository"
	"campusmarket/pkg/errors"
)

// In-memory repositories backing the use case tests. They mirror the
// semantics of the Firestore implementations, including the atomic
// status precondition on UpdateStatus and the claim-once MarkSold.

type memOrderRepo struct {
	mu     sync.Mutex
	seq    int
	orders map[string]*entity.Order
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: map[string]*entity.Order{}}
}

func (r *memOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	if order.ID == "" {
		order.ID = fmt.Sprintf("order-%d", r.seq)
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	cloned := *order
	r.orders[order.ID] = &cloned
	return nil
}

func (r *memOrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, errors.NotFound("Order", nil)
	}
	cloned := *order
	return &cloned, nil
}

func (r *memOrderRepo) UpdateStatus(ctx context.Context, id string, allowedFrom []string, to string) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, errors.NotFound("Order", nil)
	}
	allowed := false
	for _, from := range allowedFrom {
		if order.Status == from {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, errors.InvalidState("Order is in status "+order.Status, nil)
	}
	order.Status = to
	order.UpdatedAt = time.Now()
	cloned := *order
	return &cloned, nil
}

func (r *memOrderRepo) SetReviewed(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return errors.NotFound("Order", nil)
	}
	order.IsReviewed = true
	return nil
}

func (r *memOrderRepo) ListByBuyer(ctx context.Context, buyerID string, filter repository.OrderFilter, limit, offset int) ([]*entity.Order, int64, error) {
	return r.list(func(o *entity.Order) bool { return o.BuyerID == buyerID }, filter, limit, offset)
}

func (r *memOrderRepo) ListBySeller(ctx context.Context, sellerID string, filter repository.OrderFilter, limit, offset int) ([]*entity.Order, int64, error) {
	return r.list(func(o *entity.Order) bool { return o.SellerID == sellerID }, filter, limit, offset)
}

func (r *memOrderRepo) ListByParticipant(ctx context.Context, userID string) ([]*entity.Order, error) {
	orders, _, err := r.list(func(o *entity.Order) bool { return o.IsParticipant(userID) }, repository.OrderFilter{}, 0, 0)
	return orders, err
}

func (r *memOrderRepo) HasActiveOrder(ctx context.Context, buyerID, itemID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, order := range r.orders {
		if order.BuyerID == buyerID && order.ItemID == itemID && !order.IsTerminal() {
			return true, nil
		}
	}
	return false, nil
}

func (r *memOrderRepo) List(ctx context.Context, limit, offset int) ([]*entity.Order, int64, error) {
	return r.list(func(o *entity.Order) bool { return true }, repository.OrderFilter{}, limit, offset)
}

func (r *memOrderRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.orders)), nil
}

func (r *memOrderRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := map[string]int64{}
	for _, order := range r.orders {
		counts[order.Status]++
	}
	return counts, nil
}

func (r *memOrderRepo) list(match func(*entity.Order) bool, filter repository.OrderFilter, limit, offset int) ([]*entity.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.Order
	for _, order := range r.orders {
		if !match(order) {
			continue
		}
		if filter.Status != "" && order.Status != filter.Status {
			continue
		}
		if filter.From != nil && order.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && order.CreatedAt.After(*filter.To) {
			continue
		}
		cloned := *order
		result = append(result, &cloned)
	}
	total := int64(len(result))
	if offset > len(result) {
		offset = len(result)
	}
	result = result[offset:]
	if limit > 0 && limit < len(result) {
		result = result[:limit]
	}
	return result, total, nil
}

type memItemRepo struct {
	mu    sync.Mutex
	seq   int
	items map[string]*entity.Item
}

func newMemItemRepo() *memItemRepo {
	return &memItemRepo{items: map[string]*entity.Item{}}
}

func (r *memItemRepo) Create(ctx context.Context, item *entity.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	if item.ID == "" {
		item.ID = fmt.Sprintf("item-%d", r.seq)
	}
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	cloned := *item
	r.items[item.ID] = &cloned
	return nil
}

func (r *memItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, errors.NotFound("Item", nil)
	}
	cloned := *item
	return &cloned, nil
}

func (r *memItemRepo) Update(ctx context.Context, item *entity.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.ID]; !ok {
		return errors.NotFound("Item", nil)
	}
	item.UpdatedAt = time.Now()
	cloned := *item
	r.items[item.ID] = &cloned
	return nil
}

func (r *memItemRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *memItemRepo) MarkSold(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return errors.NotFound("Item", nil)
	}
	if item.IsSold {
		return errors.InvalidState("Item is already sold", nil)
	}
	item.IsSold = true
	return nil
}

func (r *memItemRepo) ListUnsold(ctx context.Context) ([]*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.Item
	for _, item := range r.items {
		if !item.IsSold {
			cloned := *item
			result = append(result, &cloned)
		}
	}
	return result, nil
}

func (r *memItemRepo) ListByIDs(ctx context.Context, ids []string) ([]*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.Item
	for _, id := range ids {
		if item, ok := r.items[id]; ok {
			cloned := *item
			result = append(result, &cloned)
		}
	}
	return result, nil
}

func (r *memItemRepo) CountBySellerSince(ctx context.Context, sellerID string, since time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, item := range r.items {
		if item.SellerID == sellerID && !item.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (r *memItemRepo) List(ctx context.Context, limit, offset int) ([]*entity.Item, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.Item
	for _, item := range r.items {
		cloned := *item
		result = append(result, &cloned)
	}
	total := int64(len(result))
	if offset > len(result) {
		offset = len(result)
	}
	result = result[offset:]
	if limit > 0 && limit < len(result) {
		result = result[:limit]
	}
	return result, total, nil
}

func (r *memItemRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.items)), nil
}

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*entity.User{}}
}

func (r *memUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cloned := *user
	r.users[user.ID] = &cloned
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	cloned := *user
	return &cloned, nil
}

func (r *memUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return errors.NotFound("User", nil)
	}
	cloned := *user
	r.users[user.ID] = &cloned
	return nil
}

func (r *memUserRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) List(ctx context.Context, limit, offset int) ([]*entity.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.User
	for _, user := range r.users {
		cloned := *user
		result = append(result, &cloned)
	}
	total := int64(len(result))
	if offset > len(result) {
		offset = len(result)
	}
	result = result[offset:]
	if limit > 0 && limit < len(result) {
		result = result[:limit]
	}
	return result, total, nil
}

func (r *memUserRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

type memMessageRepo struct {
	mu       sync.Mutex
	seq      int
	messages []*entity.Message
}

func newMemMessageRepo() *memMessageRepo {
	return &memMessageRepo{}
}

func (r *memMessageRepo) CreateWithCap(ctx context.Context, message *entity.Message, limit int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, existing := range r.messages {
		if existing.OrderID == message.OrderID {
			count++
		}
	}
	if count >= limit {
		return errors.LimitExceeded("Message limit reached for this order", nil)
	}
	r.seq++
	if message.ID == "" {
		message.ID = fmt.Sprintf("msg-%d", r.seq)
	}
	message.CreatedAt = time.Now()
	cloned := *message
	r.messages = append(r.messages, &cloned)
	return nil
}

func (r *memMessageRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.Message
	for _, message := range r.messages {
		if message.OrderID == orderID {
			cloned := *message
			result = append(result, &cloned)
		}
	}
	return result, nil
}

func (r *memMessageRepo) CountByOrder(ctx context.Context, orderID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, message := range r.messages {
		if message.OrderID == orderID {
			count++
		}
	}
	return count, nil
}

func (r *memMessageRepo) MarkReadExceptSender(ctx context.Context, orderID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, message := range r.messages {
		if message.OrderID == orderID && message.SenderID != userID {
			message.IsRead = true
		}
	}
	return nil
}

func (r *memMessageRepo) ListUnread(ctx context.Context, orderIDs []string, userID string) ([]*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := make(map[string]bool, len(orderIDs))
	for _, id := range orderIDs {
		wanted[id] = true
	}
	var result []*entity.Message
	for _, message := range r.messages {
		if wanted[message.OrderID] && !message.IsRead && message.SenderID != userID {
			cloned := *message
			result = append(result, &cloned)
		}
	}
	return result, nil
}

type memNotificationRepo struct {
	mu            sync.Mutex
	seq           int
	notifications map[string]*entity.Notification
	order         []string
}

func newMemNotificationRepo() *memNotificationRepo {
	return &memNotificationRepo{notifications: map[string]*entity.Notification{}}
}

func (r *memNotificationRepo) Create(ctx context.Context, notification *entity.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	if notification.ID == "" {
		notification.ID = fmt.Sprintf("notif-%d", r.seq)
	}
	notification.CreatedAt = time.Now()
	cloned := *notification
	r.notifications[notification.ID] = &cloned
	r.order = append(r.order, notification.ID)
	return nil
}

func (r *memNotificationRepo) GetByID(ctx context.Context, id string) (*entity.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	notification, ok := r.notifications[id]
	if !ok {
		return nil, errors.NotFound("Notification", nil)
	}
	cloned := *notification
	return &cloned, nil
}

func (r *memNotificationRepo) Update(ctx context.Context, notification *entity.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.notifications[notification.ID]; !ok {
		return errors.NotFound("Notification", nil)
	}
	cloned := *notification
	r.notifications[notification.ID] = &cloned
	return nil
}

func (r *memNotificationRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Notification, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.Notification
	for _, id := range r.order {
		if n := r.notifications[id]; n.UserID == userID {
			cloned := *n
			result = append(result, &cloned)
		}
	}
	total := int64(len(result))
	if offset > len(result) {
		offset = len(result)
	}
	result = result[offset:]
	if limit > 0 && limit < len(result) {
		result = result[:limit]
	}
	return result, total, nil
}

func (r *memNotificationRepo) CountUnread(ctx context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, n := range r.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

type memReviewRepo struct {
	mu      sync.Mutex
	seq     int
	reviews map[string]*entity.Review
}

func newMemReviewRepo() *memReviewRepo {
	return &memReviewRepo{reviews: map[string]*entity.Review{}}
}

func (r *memReviewRepo) Create(ctx context.Context, review *entity.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	if review.ID == "" {
		review.ID = fmt.Sprintf("review-%d", r.seq)
	}
	review.CreatedAt = time.Now()
	cloned := *review
	r.reviews[review.ID] = &cloned
	return nil
}

func (r *memReviewRepo) ListByReviewedUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Review, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entity.Review
	for _, review := range r.reviews {
		if review.ReviewedUserID == userID {
			cloned := *review
			result = append(result, &cloned)
		}
	}
	total := int64(len(result))
	if offset > len(result) {
		offset = len(result)
	}
	result = result[offset:]
	if limit > 0 && limit < len(result) {
		result = result[:limit]
	}
	return result, total, nil
}

// recordingNotifier captures Dispatch calls synchronously so tests can
// assert on fanout without racing a goroutine.
type recordingNotifier struct {
	mu         sync.Mutex
	dispatches []dispatchedNotification
}

type dispatchedNotification struct {
	UserID string
	Title  string
	Meta   entity.NotificationMeta
}

func (n *recordingNotifier) Dispatch(userID, title, message string, meta entity.NotificationMeta) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.dispatches = append(n.dispatches, dispatchedNotification{UserID: userID, Title: title, Meta: meta})
}

func (n *recordingNotifier) titlesFor(userID string) []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	var titles []string
	for _, d := range n.dispatches {
		if d.UserID == userID {
			titles = append(titles, d.Title)
		}
	}
	return titles
}
