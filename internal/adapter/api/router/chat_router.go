package router

import (
	"campusmarket/internal/adapter/api/handler"
	"campusmarket/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupChatRouter(e *echo.Echo, chatHandler *handler.ChatHandler, authMiddleware *middleware.AuthMiddleware) {
	chat := e.Group("/api/chat")
	chat.Use(authMiddleware.Authenticate)

	chat.GET("/unread/count", chatHandler.GetUnreadSummary)
	chat.GET("/:orderId", chatHandler.GetHistory)
	chat.PUT("/read/:orderId", chatHandler.MarkRead)
}
