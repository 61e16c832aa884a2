package usecase

import (
	"context"

	"campusmarket/internal/domain/entity"
	"campusmarket/internal/domain/repository"
	"campusmarket/pkg/errors"
	"campusmarket/pkg/logger"
)

type ReviewUseCase struct {
	reviewRepo repository.ReviewRepository
	orderRepo  repository.OrderRepository
	userRepo   repository.UserRepository
}

func NewReviewUseCase(
	reviewRepo repository.ReviewRepository,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
) *ReviewUseCase {
	return &ReviewUseCase{
		reviewRepo: reviewRepo,
		orderRepo:  orderRepo,
		userRepo:   userRepo,
	}
}

type CreateReviewInput struct {
	OrderID string
	Rating  int
	Comment string
}

// CreateReview lets the buyer of a completed, not yet reviewed order rate
// the seller once, and folds the rating into the seller's running average.
func (uc *ReviewUseCase) CreateReview(ctx context.Context, reviewerID string, input CreateReviewInput) (*entity.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, errors.Validation("Rating must be between 1 and 5")
	}

	order, err := uc.orderRepo.GetByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}

	if order.BuyerID != reviewerID {
		return nil, errors.Forbidden("You are not authorized to review this order", nil)
	}

	if order.Status != entity.OrderStatusCompleted {
		return nil, errors.InvalidState("Order must be completed before reviewing", nil)
	}

	if order.IsReviewed {
		return nil, errors.Conflict("This order has already been reviewed")
	}

	review := &entity.Review{
		ReviewerID:     reviewerID,
		ReviewedUserID: order.SellerID,
		OrderID:        order.ID,
		Rating:         input.Rating,
		Comment:        input.Comment,
	}

	if err := uc.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	if err := uc.orderRepo.SetReviewed(ctx, order.ID); err != nil {
		logger.Error("failed to mark order %s reviewed: %v", order.ID, err)
	}

	if err := uc.updateSellerRating(ctx, order.SellerID, input.Rating); err != nil {
		logger.Error("failed to update rating for seller %s: %v", order.SellerID, err)
	}

	return review, nil
}

func (uc *ReviewUseCase) ListUserReviews(ctx context.Context, userID string, limit, offset int) ([]*entity.Review, int64, error) {
	return uc.reviewRepo.ListByReviewedUser(ctx, userID, limit, offset)
}

// updateSellerRating recomputes the running average:
// avg' = (avg*count + rating) / (count+1).
func (uc *ReviewUseCase) updateSellerRating(ctx context.Context, sellerID string, rating int) error {
	seller, err := uc.userRepo.GetByID(ctx, sellerID)
	if err != nil {
		return err
	}

	total := seller.AverageRating * float64(seller.RatingCount)
	seller.RatingCount++
	seller.AverageRating = (total + float64(rating)) / float64(seller.RatingCount)

	return uc.userRepo.Update(ctx, seller)
}
