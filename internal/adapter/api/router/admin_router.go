package router

import (
	"campusmarket/internal/adapter/api/handler"
	"campusmarket/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupAdminRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	adminHandler := handler.GetAdminHandler()

	admin := e.Group("/api/admin")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)

	admin.GET("/stats", adminHandler.GetStats)
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/items", adminHandler.ListItems)
	admin.GET("/orders", adminHandler.ListOrders)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.DELETE("/items/:id", adminHandler.DeleteItem)
}
