package usecase

import (
	"context"

	"campusmarket/internal/domain/entity"
	"campusmarket/internal/domain/repository"
	"campusmarket/pkg/errors"
	"campusmarket/pkg/logger"
)

// Notifier is the fanout hook the order lifecycle fires after the primary
// write has succeeded. Dispatch must not block and must swallow failures.
type Notifier interface {
	Dispatch(userID, title, message string, meta entity.NotificationMeta)
}

type OrderUseCase struct {
	orderRepo repository.OrderRepository
	itemRepo  repository.ItemRepository
	userRepo  repository.UserRepository
	notifier  Notifier
}

func NewOrderUseCase(
	orderRepo repository.OrderRepository,
	itemRepo repository.ItemRepository,
	userRepo repository.UserRepository,
	notifier Notifier,
) *OrderUseCase {
	return &OrderUseCase{
		orderRepo: orderRepo,
		itemRepo:  itemRepo,
		userRepo:  userRepo,
		notifier:  notifier,
	}
}

// PartyView is the populated profile slice attached to order details.
type PartyView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	MobileNo    string `json:"mobile_no"`
	CollegeName string `json:"college_name"`
}

type OrderDetail struct {
	*entity.Order
	Item   *entity.Item `json:"item"`
	Buyer  *PartyView   `json:"buyer"`
	Seller *PartyView   `json:"seller"`
}

func (uc *OrderUseCase) CreateOrder(ctx context.Context, buyerID, itemID string) (*entity.Order, error) {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if item.IsSold {
		return nil, errors.InvalidState("Item is already sold", nil)
	}

	if item.SellerID == buyerID {
		return nil, errors.Forbidden("You cannot buy your own item", nil)
	}

	active, err := uc.orderRepo.HasActiveOrder(ctx, buyerID, itemID)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, errors.Conflict("You already have an active order for this item")
	}

	order := &entity.Order{
		BuyerID:  buyerID,
		SellerID: item.SellerID,
		ItemID:   item.ID,
		Status:   entity.OrderStatusPending,
	}

	if err := uc.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	uc.notifier.Dispatch(item.SellerID, "New Order Received",
		"Someone wants to buy your item: "+item.Title,
		entity.NotificationMeta{OrderID: order.ID, ItemID: item.ID})

	return order, nil
}

func (uc *OrderUseCase) ConfirmOrder(ctx context.Context, orderID, sellerID string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.SellerID != sellerID {
		return nil, errors.Forbidden("Only the seller can confirm this order", nil)
	}

	order, err = uc.orderRepo.UpdateStatus(ctx, orderID,
		[]string{entity.OrderStatusPending}, entity.OrderStatusConfirmed)
	if err != nil {
		return nil, err
	}

	uc.notifier.Dispatch(order.BuyerID, "Order Accepted",
		"Seller has accepted your order",
		entity.NotificationMeta{OrderID: order.ID, ItemID: order.ItemID})

	return order, nil
}

// CancelOrder is permitted from PENDING and CONFIRMED. The seller backing
// out of an already confirmed order is deliberate policy, not an accident.
func (uc *OrderUseCase) CancelOrder(ctx context.Context, orderID, sellerID string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.SellerID != sellerID {
		return nil, errors.Forbidden("Only the seller can cancel this order", nil)
	}

	order, err = uc.orderRepo.UpdateStatus(ctx, orderID,
		[]string{entity.OrderStatusPending, entity.OrderStatusConfirmed}, entity.OrderStatusCancelled)
	if err != nil {
		return nil, err
	}

	uc.notifier.Dispatch(order.BuyerID, "Order Cancelled",
		"Your order was cancelled",
		entity.NotificationMeta{OrderID: order.ID})
	uc.notifier.Dispatch(order.SellerID, "Order Cancelled",
		"An order for your item was cancelled",
		entity.NotificationMeta{OrderID: order.ID})

	return order, nil
}

// CompleteOrder closes a CONFIRMED order and claims the item. The item is
// marked sold first: that write is the arbiter when several confirmed
// orders exist for one item, so exactly one completion wins.
func (uc *OrderUseCase) CompleteOrder(ctx context.Context, orderID, sellerID string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.SellerID != sellerID {
		return nil, errors.Forbidden("Only the seller can complete this order", nil)
	}

	if order.Status != entity.OrderStatusConfirmed {
		return nil, errors.InvalidState("Order must be CONFIRMED first", nil)
	}

	itemID := order.ItemID

	if err := uc.itemRepo.MarkSold(ctx, itemID); err != nil {
		return nil, err
	}

	order, err = uc.orderRepo.UpdateStatus(ctx, orderID,
		[]string{entity.OrderStatusConfirmed}, entity.OrderStatusCompleted)
	if err != nil {
		// The item was claimed but the order slipped out of CONFIRMED
		// underneath us. Surface the error; the item stays sold.
		logger.Error("order %s: item %s marked sold but completion failed: %v", orderID, itemID, err)
		return nil, err
	}

	uc.notifier.Dispatch(order.SellerID, "Item Sold 🎉",
		"Your item has been sold successfully",
		entity.NotificationMeta{OrderID: order.ID})
	uc.notifier.Dispatch(order.BuyerID, "Order Completed",
		"You have successfully purchased the item",
		entity.NotificationMeta{OrderID: order.ID})

	return order, nil
}

func (uc *OrderUseCase) GetMyOrders(ctx context.Context, buyerID string) ([]*entity.Order, error) {
	orders, _, err := uc.orderRepo.ListByBuyer(ctx, buyerID, repository.OrderFilter{}, 0, 0)
	return orders, err
}

// GetBuyerHistory lists the buyer's closed orders. Without an explicit
// status filter only terminal orders appear.
func (uc *OrderUseCase) GetBuyerHistory(ctx context.Context, buyerID string, filter repository.OrderFilter, limit, offset int) ([]*entity.Order, int64, error) {
	if filter.Status != "" {
		return uc.orderRepo.ListByBuyer(ctx, buyerID, filter, limit, offset)
	}

	orders, _, err := uc.orderRepo.ListByBuyer(ctx, buyerID, filter, 0, 0)
	if err != nil {
		return nil, 0, err
	}

	var terminal []*entity.Order
	for _, order := range orders {
		if order.IsTerminal() {
			terminal = append(terminal, order)
		}
	}

	total := int64(len(terminal))

	start := offset
	if start > len(terminal) {
		start = len(terminal)
	}
	end := len(terminal)
	if limit > 0 && start+limit < end {
		end = start + limit
	}

	return terminal[start:end], total, nil
}

func (uc *OrderUseCase) GetSellerHistory(ctx context.Context, sellerID string, filter repository.OrderFilter, limit, offset int) ([]*entity.Order, int64, error) {
	return uc.orderRepo.ListBySeller(ctx, sellerID, filter, limit, offset)
}

func (uc *OrderUseCase) GetOrderDetails(ctx context.Context, orderID, userID string) (*OrderDetail, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !order.IsParticipant(userID) {
		return nil, errors.Forbidden("You are not a participant of this order", nil)
	}

	detail := &OrderDetail{Order: order}

	if item, err := uc.itemRepo.GetByID(ctx, order.ItemID); err == nil {
		detail.Item = item
	}
	if buyer, err := uc.userRepo.GetByID(ctx, order.BuyerID); err == nil {
		detail.Buyer = partyView(buyer)
	}
	if seller, err := uc.userRepo.GetByID(ctx, order.SellerID); err == nil {
		detail.Seller = partyView(seller)
	}

	return detail, nil
}

func partyView(user *entity.User) *PartyView {
	return &PartyView{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		MobileNo:    user.MobileNo,
		CollegeName: user.CollegeName,
	}
}
