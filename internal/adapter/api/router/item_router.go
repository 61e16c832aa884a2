package router

import (
	"campusmarket/internal/adapter/api/handler"
	"campusmarket/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupItemRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	itemHandler := handler.GetItemHandler()

	items := e.Group("/api/item")
	items.GET("/all", itemHandler.ListItems)
	items.GET("/:id", itemHandler.GetItem)

	myItems := e.Group("/api/item")
	myItems.Use(authMiddleware.Authenticate)
	myItems.POST("/add", itemHandler.CreateItem)
	myItems.PUT("/:id", itemHandler.UpdateItem)
	myItems.DELETE("/:id", itemHandler.DeleteItem)
}
