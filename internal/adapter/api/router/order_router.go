package router

import (
	"campusmarket/internal/adapter/api/handler"
	"campusmarket/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupOrderRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	orderHandler := handler.GetOrderHandler()

	orders := e.Group("/api/order")
	orders.Use(authMiddleware.Authenticate)

	orders.POST("/:itemId", orderHandler.CreateOrder)
	orders.PATCH("/:orderId/confirm", orderHandler.ConfirmOrder)
	orders.PATCH("/:orderId/cancel", orderHandler.CancelOrder)
	orders.PATCH("/:orderId/complete", orderHandler.CompleteOrder)

	orders.GET("/my", orderHandler.GetMyOrders)
	orders.GET("/history", orderHandler.GetBuyerHistory)
	orders.GET("/sold", orderHandler.GetSellerHistory)
	orders.GET("/details/:orderId", orderHandler.GetOrderDetails)
}
