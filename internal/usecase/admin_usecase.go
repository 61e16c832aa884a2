package usecase

import (
	"context"

	"campusmarket/internal/domain/entity"
	"campusmarket/internal/domain/repository"
	"campusmarket/pkg/logger"
)

type AdminUseCase struct {
	userRepo   repository.UserRepository
	itemRepo   repository.ItemRepository
	orderRepo  repository.OrderRepository
	authClient AuthClient
}

func NewAdminUseCase(
	userRepo repository.UserRepository,
	itemRepo repository.ItemRepository,
	orderRepo repository.OrderRepository,
	authClient AuthClient,
) *AdminUseCase {
	return &AdminUseCase{
		userRepo:   userRepo,
		itemRepo:   itemRepo,
		orderRepo:  orderRepo,
		authClient: authClient,
	}
}

type Stats struct {
	Users          int64            `json:"users"`
	Items          int64            `json:"items"`
	Orders         int64            `json:"orders"`
	OrdersByStatus map[string]int64 `json:"orders_by_status"`
}

func (uc *AdminUseCase) GetStats(ctx context.Context) (*Stats, error) {
	users, err := uc.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	items, err := uc.itemRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	orders, err := uc.orderRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	byStatus, err := uc.orderRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	return &Stats{
		Users:          users,
		Items:          items,
		Orders:         orders,
		OrdersByStatus: byStatus,
	}, nil
}

func (uc *AdminUseCase) ListUsers(ctx context.Context, limit, offset int) ([]*entity.User, int64, error) {
	return uc.userRepo.List(ctx, limit, offset)
}

func (uc *AdminUseCase) ListItems(ctx context.Context, limit, offset int) ([]*entity.Item, int64, error) {
	return uc.itemRepo.List(ctx, limit, offset)
}

func (uc *AdminUseCase) ListOrders(ctx context.Context, limit, offset int) ([]*entity.Order, int64, error) {
	return uc.orderRepo.List(ctx, limit, offset)
}

// DeleteUser removes the profile document and the auth account. A failure
// deleting the auth account is logged but the profile is already gone.
func (uc *AdminUseCase) DeleteUser(ctx context.Context, userID string) error {
	if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}

	if err := uc.userRepo.Delete(ctx, userID); err != nil {
		return err
	}

	if err := uc.authClient.DeleteUser(ctx, userID); err != nil {
		logger.Error("failed to delete auth account %s: %v", userID, err)
	}

	return nil
}

func (uc *AdminUseCase) DeleteItem(ctx context.Context, itemID string) error {
	if _, err := uc.itemRepo.GetByID(ctx, itemID); err != nil {
		return err
	}

	return uc.itemRepo.Delete(ctx, itemID)
}
