package router

import (
	"campusmarket/internal/adapter/api/handler"
	"campusmarket/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupReviewRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	reviewHandler := handler.GetReviewHandler()

	reviews := e.Group("/api/review")
	reviews.Use(authMiddleware.Authenticate)

	reviews.POST("/create", reviewHandler.CreateReview)
	reviews.GET("/user/:userId", reviewHandler.ListUserReviews)
}
