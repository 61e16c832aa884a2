package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusmarket/internal/domain/entity"
	"campusmarket/internal/domain/repository"
	"campusmarket/pkg/errors"
)

type orderFixture struct {
	orders   *memOrderRepo
	items    *memItemRepo
	users    *memUserRepo
	notifier *recordingNotifier
	uc       *OrderUseCase
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()

	f := &orderFixture{
		orders:   newMemOrderRepo(),
		items:    newMemItemRepo(),
		users:    newMemUserRepo(),
		notifier: &recordingNotifier{},
	}
	f.uc = NewOrderUseCase(f.orders, f.items, f.users, f.notifier)

	ctx := context.Background()
	require.NoError(t, f.users.Create(ctx, &entity.User{ID: "buyer", Name: "Asha"}))
	require.NoError(t, f.users.Create(ctx, &entity.User{ID: "seller", Name: "Ravi"}))
	require.NoError(t, f.items.Create(ctx, &entity.Item{ID: "item-1", Title: "Calculus Textbook", SellerID: "seller", Price: 250}))

	return f
}

func TestCreateOrder(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order, err := f.uc.CreateOrder(ctx, "buyer", "item-1")
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.Equal(t, "buyer", order.BuyerID)
	assert.Equal(t, "seller", order.SellerID)
	assert.Equal(t, []string{"New Order Received"}, f.notifier.titlesFor("seller"))
}

func TestCreateOrderRejectsSelfPurchase(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.uc.CreateOrder(context.Background(), "seller", "item-1")
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestCreateOrderRejectsSoldItem(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	require.NoError(t, f.items.MarkSold(ctx, "item-1"))

	_, err := f.uc.CreateOrder(ctx, "buyer", "item-1")
	assert.True(t, errors.Is(err, "INVALID_STATE"))
}

func TestCreateOrderRejectsDuplicateActiveOrder(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	_, err := f.uc.CreateOrder(ctx, "buyer", "item-1")
	require.NoError(t, err)

	_, err = f.uc.CreateOrder(ctx, "buyer", "item-1")
	assert.True(t, errors.Is(err, "CONFLICT"))
}

func TestCreateOrderAllowedAfterCancellation(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order, err := f.uc.CreateOrder(ctx, "buyer", "item-1")
	require.NoError(t, err)

	_, err = f.uc.CancelOrder(ctx, order.ID, "seller")
	require.NoError(t, err)

	_, err = f.uc.CreateOrder(ctx, "buyer", "item-1")
	assert.NoError(t, err)
}

func TestConfirmOrder(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order, err := f.uc.CreateOrder(ctx, "buyer", "item-1")
	require.NoError(t, err)

	confirmed, err := f.uc.ConfirmOrder(ctx, order.ID, "seller")
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusConfirmed, confirmed.Status)
	assert.Equal(t, []string{"Order Accepted"}, f.notifier.titlesFor("buyer"))
}

func TestConfirmOrderSellerOnly(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order, err := f.uc.CreateOrder(ctx, "buyer", "item-1")
	require.NoError(t, err)

	_, err = f.uc.ConfirmOrder(ctx, order.ID, "buyer")
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestConfirmOrderRequiresPending(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order, err := f.uc.CreateOrder(ctx, "buyer", "item-1")
	require.NoError(t, err)

	_, err = f.uc.CancelOrder(ctx, order.ID, "seller")
	require.NoError(t, err)

	_, err = f.uc.ConfirmOrder(ctx, order.ID, "seller")
	assert.True(t, errors.Is(err, "INVALID_STATE"))
}

func TestCancelConfirmedOrder(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order, err := f.uc.CreateOrder(ctx, "buyer", "item-1")
	require.NoError(t, err)
	_, err = f.uc.ConfirmOrder(ctx, order.ID, "seller")
	require.NoError(t, err)

	cancelled, err := f.uc.CancelOrder(ctx, order.ID, "seller")
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusCancelled, cancelled.Status)
	assert.Contains(t, f.notifier.titlesFor("buyer"), "Order Cancelled")
	assert.Contains(t, f.notifier.titlesFor("seller"), "Order Cancelled")
}

func TestCancelCompletedOrderFails(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order, err := f.uc.CreateOrder(ctx, "buyer", "item-1")
	require.NoError(t, err)
	_, err = f.uc.ConfirmOrder(ctx, order.ID, "seller")
	require.NoError(t, err)
	_, err = f.uc.CompleteOrder(ctx, order.ID, "seller")
	require.NoError(t, err)

	_, err = f.uc.CancelOrder(ctx, order.ID, "seller")
	assert.True(t, errors.Is(err, "INVALID_STATE"))
}

func TestCompleteOrderMarksItemSold(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order, err := f.uc.CreateOrder(ctx, "buyer", "item-1")
	require.NoError(t, err)
	_, err = f.uc.ConfirmOrder(ctx, order.ID, "seller")
	require.NoError(t, err)

	completed, err := f.uc.CompleteOrder(ctx, order.ID, "seller")
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusCompleted, completed.Status)

	item, err := f.items.GetByID(ctx, "item-1")
	require.NoError(t, err)
	assert.True(t, item.IsSold)

	assert.Equal(t, []string{"Item Sold 🎉"}, f.notifier.titlesFor("seller")[1:])
	assert.Contains(t, f.notifier.titlesFor("buyer"), "Order Completed")
}

func TestCompleteOrderRequiresConfirmed(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order, err := f.uc.CreateOrder(ctx, "buyer", "item-1")
	require.NoError(t, err)

	_, err = f.uc.CompleteOrder(ctx, order.ID, "seller")
	assert.True(t, errors.Is(err, "INVALID_STATE"))
}

// Two buyers, one item: both orders reach CONFIRMED, but only the first
// completion claims the item.
func TestCompleteOrderFirstWinnerOnly(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	require.NoError(t, f.users.Create(ctx, &entity.User{ID: "buyer2", Name: "Meera"}))

	first, err := f.uc.CreateOrder(ctx, "buyer", "item-1")
	require.NoError(t, err)
	second, err := f.uc.CreateOrder(ctx, "buyer2", "item-1")
	require.NoError(t, err)

	_, err = f.uc.ConfirmOrder(ctx, first.ID, "seller")
	require.NoError(t, err)
	_, err = f.uc.ConfirmOrder(ctx, second.ID, "seller")
	require.NoError(t, err)

	_, err = f.uc.CompleteOrder(ctx, first.ID, "seller")
	require.NoError(t, err)

	_, err = f.uc.CompleteOrder(ctx, second.ID, "seller")
	assert.True(t, errors.Is(err, "INVALID_STATE"))

	stale, err := f.orders.GetByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusConfirmed, stale.Status)
}

// lostCompletionOrderRepo fails the CONFIRMED to COMPLETED transition, as
// when a concurrent cancel lands between the item claim and the status write.
type lostCompletionOrderRepo struct {
	*memOrderRepo
}

func (r *lostCompletionOrderRepo) UpdateStatus(ctx context.Context, id string, allowedFrom []string, to string) (*entity.Order, error) {
	if to == entity.OrderStatusCompleted {
		return nil, errors.InvalidState("Order status is CANCELLED", nil)
	}
	return r.memOrderRepo.UpdateStatus(ctx, id, allowedFrom, to)
}

func TestCompleteOrderSurvivesLostStatusRace(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	f.uc = NewOrderUseCase(&lostCompletionOrderRepo{f.orders}, f.items, f.users, f.notifier)

	order, err := f.uc.CreateOrder(ctx, "buyer", "item-1")
	require.NoError(t, err)
	_, err = f.uc.ConfirmOrder(ctx, order.ID, "seller")
	require.NoError(t, err)

	_, err = f.uc.CompleteOrder(ctx, order.ID, "seller")
	assert.True(t, errors.Is(err, "INVALID_STATE"))

	item, err := f.items.GetByID(ctx, "item-1")
	require.NoError(t, err)
	assert.True(t, item.IsSold)
}

func TestGetBuyerHistoryDefaultsToTerminal(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	require.NoError(t, f.items.Create(ctx, &entity.Item{ID: "item-2", Title: "Lamp", SellerID: "seller"}))

	open, err := f.uc.CreateOrder(ctx, "buyer", "item-1")
	require.NoError(t, err)

	closed, err := f.uc.CreateOrder(ctx, "buyer", "item-2")
	require.NoError(t, err)
	_, err = f.uc.CancelOrder(ctx, closed.ID, "seller")
	require.NoError(t, err)

	history, total, err := f.uc.GetBuyerHistory(ctx, "buyer", repository.OrderFilter{}, 0, 0)
	require.NoError(t, err)

	assert.Equal(t, int64(1), total)
	require.Len(t, history, 1)
	assert.Equal(t, closed.ID, history[0].ID)
	assert.NotEqual(t, open.ID, history[0].ID)
}

func TestGetBuyerHistoryStatusFilter(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order, err := f.uc.CreateOrder(ctx, "buyer", "item-1")
	require.NoError(t, err)

	history, total, err := f.uc.GetBuyerHistory(ctx, "buyer", repository.OrderFilter{Status: entity.OrderStatusPending}, 0, 0)
	require.NoError(t, err)

	assert.Equal(t, int64(1), total)
	require.Len(t, history, 1)
	assert.Equal(t, order.ID, history[0].ID)
}

func TestGetOrderDetailsParticipantsOnly(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	require.NoError(t, f.users.Create(ctx, &entity.User{ID: "stranger", Name: "Kiran"}))

	order, err := f.uc.CreateOrder(ctx, "buyer", "item-1")
	require.NoError(t, err)

	detail, err := f.uc.GetOrderDetails(ctx, order.ID, "buyer")
	require.NoError(t, err)
	assert.Equal(t, "Calculus Textbook", detail.Item.Title)
	assert.Equal(t, "Asha", detail.Buyer.Name)
	assert.Equal(t, "Ravi", detail.Seller.Name)

	_, err = f.uc.GetOrderDetails(ctx, order.ID, "stranger")
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}
