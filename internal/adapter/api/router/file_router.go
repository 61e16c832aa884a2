package router

import (
	"campusmarket/internal/adapter/api/handler"
	"campusmarket/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupFileRouter(e *echo.Echo, fileHandler *handler.FileHandler, authMiddleware *middleware.AuthMiddleware) {
	upload := e.Group("/api/upload")
	upload.Use(authMiddleware.Authenticate)
	upload.POST("", fileHandler.Upload)
}
