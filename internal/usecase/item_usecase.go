package usecase

import (
	"context"
	"time"

	"campusmarket/internal/domain/entity"
	"campusmarket/internal/domain/repository"
	"campusmarket/pkg/errors"
)

type ItemUseCase struct {
	itemRepo      repository.ItemRepository
	userRepo      repository.UserRepository
	maxDailyItems int
}

func NewItemUseCase(itemRepo repository.ItemRepository, userRepo repository.UserRepository, maxDailyItems int) *ItemUseCase {
	if maxDailyItems <= 0 {
		maxDailyItems = 5
	}
	return &ItemUseCase{
		itemRepo:      itemRepo,
		userRepo:      userRepo,
		maxDailyItems: maxDailyItems,
	}
}

type CreateItemInput struct {
	Title       string
	Price       float64
	Description string
	Images      []string
	Category    string
	SubCategory string
}

// ItemView is an item enriched with its seller's public profile.
type ItemView struct {
	*entity.Item
	Seller *entity.SellerSummary `json:"seller,omitempty"`
}

func (uc *ItemUseCase) CreateItem(ctx context.Context, sellerID string, input CreateItemInput) (*entity.Item, error) {
	startOfDay := time.Now().Truncate(24 * time.Hour)

	count, err := uc.itemRepo.CountBySellerSince(ctx, sellerID, startOfDay)
	if err != nil {
		return nil, err
	}
	if count >= int64(uc.maxDailyItems) {
		return nil, errors.LimitExceeded("You have reached your daily listing limit", nil)
	}

	item := &entity.Item{
		Title:       input.Title,
		Price:       input.Price,
		Description: input.Description,
		Images:      input.Images,
		Category:    input.Category,
		SubCategory: input.SubCategory,
		SellerID:    sellerID,
	}

	if err := uc.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

func (uc *ItemUseCase) ListItems(ctx context.Context) ([]*ItemView, error) {
	items, err := uc.itemRepo.ListUnsold(ctx)
	if err != nil {
		return nil, err
	}

	return uc.attachSellers(ctx, items), nil
}

func (uc *ItemUseCase) GetItem(ctx context.Context, itemID string) (*ItemView, error) {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	views := uc.attachSellers(ctx, []*entity.Item{item})
	return views[0], nil
}

type UpdateItemInput struct {
	Title       string
	Price       float64
	Description string
	Images      []string
	Category    string
	SubCategory string
}

func (uc *ItemUseCase) UpdateItem(ctx context.Context, itemID, userID string, input UpdateItemInput) (*entity.Item, error) {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if item.SellerID != userID {
		return nil, errors.Forbidden("You are not allowed to update this item", nil)
	}

	item.Title = input.Title
	item.Price = input.Price
	item.Description = input.Description
	item.Images = input.Images
	item.Category = input.Category
	item.SubCategory = input.SubCategory

	if err := uc.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

func (uc *ItemUseCase) DeleteItem(ctx context.Context, itemID, userID string) error {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}

	if item.SellerID != userID {
		return errors.Forbidden("You are not allowed to delete this item", nil)
	}

	return uc.itemRepo.Delete(ctx, itemID)
}

func (uc *ItemUseCase) attachSellers(ctx context.Context, items []*entity.Item) []*ItemView {
	sellers := make(map[string]*entity.SellerSummary)

	views := make([]*ItemView, 0, len(items))
	for _, item := range items {
		summary, ok := sellers[item.SellerID]
		if !ok {
			if seller, err := uc.userRepo.GetByID(ctx, item.SellerID); err == nil {
				summary = &entity.SellerSummary{
					ID:            seller.ID,
					Name:          seller.Name,
					CollegeName:   seller.CollegeName,
					AverageRating: seller.AverageRating,
					RatingCount:   seller.RatingCount,
				}
			}
			sellers[item.SellerID] = summary
		}
		views = append(views, &ItemView{Item: item, Seller: summary})
	}

	return views
}
