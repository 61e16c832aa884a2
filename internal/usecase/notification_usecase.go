package usecase

import (
	"context"
	"time"

	"campusmarket/internal/domain/entity"
	"campusmarket/internal/domain/repository"
	"campusmarket/pkg/errors"
	"campusmarket/pkg/logger"
)

type NotificationUseCase struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationUseCase(notificationRepo repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{
		notificationRepo: notificationRepo,
	}
}

// Notify persists one durable notification for the recipient. It does not
// push anything over the realtime transport; lifecycle notifications are
// fetched by polling.
func (uc *NotificationUseCase) Notify(ctx context.Context, userID, title, message string, meta entity.NotificationMeta) error {
	notification := &entity.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    entity.NotificationTypeOrder,
		Meta:    meta,
	}

	return uc.notificationRepo.Create(ctx, notification)
}

// Dispatch schedules Notify as a background task with its own failure
// domain: the primary operation has already answered its caller, and a
// notification that cannot be written is logged and dropped, never retried.
func (uc *NotificationUseCase) Dispatch(userID, title, message string, meta entity.NotificationMeta) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := uc.Notify(ctx, userID, title, message, meta); err != nil {
			logger.Error("notification dispatch failed for user %s: %v", userID, err)
		}
	}()
}

func (uc *NotificationUseCase) GetMyNotifications(ctx context.Context, userID string, limit, offset int) ([]*entity.Notification, int64, error) {
	return uc.notificationRepo.ListByUser(ctx, userID, limit, offset)
}

func (uc *NotificationUseCase) GetUnreadCount(ctx context.Context, userID string) (int64, error) {
	return uc.notificationRepo.CountUnread(ctx, userID)
}

// MarkAsRead flips isRead on a notification owned by the caller. A
// notification belonging to someone else reads as absent, not forbidden.
func (uc *NotificationUseCase) MarkAsRead(ctx context.Context, userID, notificationID string) error {
	notification, err := uc.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}

	if notification.UserID != userID {
		return errors.NotFound("Notification", nil)
	}

	if notification.IsRead {
		return nil
	}

	notification.IsRead = true
	return uc.notificationRepo.Update(ctx, notification)
}
