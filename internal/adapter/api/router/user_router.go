package router

import (
	"campusmarket/internal/adapter/api/handler"
	"campusmarket/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupUserRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	userHandler := handler.GetUserHandler()

	users := e.Group("/api/user")
	users.POST("/register", userHandler.Register)
	users.POST("/login", userHandler.Login)

	me := e.Group("/api/user")
	me.Use(authMiddleware.Authenticate)
	me.GET("/me", userHandler.GetMe)
	me.PUT("/update", userHandler.UpdateProfile)
	me.POST("/favorite/:id", userHandler.ToggleFavorite)

	favorites := e.Group("/api/favorite")
	favorites.Use(authMiddleware.Authenticate)
	favorites.GET("", userHandler.GetFavorites)
}
