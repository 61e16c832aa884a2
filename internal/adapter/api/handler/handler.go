package handler

import (
	"campusmarket/internal/usecase"
)

var (
	userHandler         *UserHandler
	itemHandler         *ItemHandler
	orderHandler        *OrderHandler
	notificationHandler *NotificationHandler
	reviewHandler       *ReviewHandler
	adminHandler        *AdminHandler
)

func Setup(
	userUseCase *usecase.UserUseCase,
	itemUseCase *usecase.ItemUseCase,
	orderUseCase *usecase.OrderUseCase,
	notificationUseCase *usecase.NotificationUseCase,
	reviewUseCase *usecase.ReviewUseCase,
	adminUseCase *usecase.AdminUseCase,
) {
	userHandler = NewUserHandler(userUseCase)
	itemHandler = NewItemHandler(itemUseCase)
	orderHandler = NewOrderHandler(orderUseCase)
	notificationHandler = NewNotificationHandler(notificationUseCase)
	reviewHandler = NewReviewHandler(reviewUseCase)
	adminHandler = NewAdminHandler(adminUseCase)
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetItemHandler() *ItemHandler {
	return itemHandler
}

func GetOrderHandler() *OrderHandler {
	return orderHandler
}

func GetNotificationHandler() *NotificationHandler {
	return notificationHandler
}

func GetReviewHandler() *ReviewHandler {
	return reviewHandler
}

func GetAdminHandler() *AdminHandler {
	return adminHandler
}
