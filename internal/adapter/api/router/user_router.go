package router

import (
	"github.com/labstack/echo/v4"

	"chitchat/internal/adapter/api/handler"
	"chitchat/internal/adapter/api/middleware"
)

// SetupUserRouter registers profile and discovery routes.
func SetupUserRouter(e *echo.Echo, userHandler *handler.UserHandler, authMiddleware *middleware.AuthMiddleware) {
	userGroup := e.Group("/api/users")
	userGroup.Use(authMiddleware.Authenticate)

	userGroup.GET("/random", userHandler.GetRandomUsers) // GET /api/users/random
	userGroup.GET("/search", userHandler.SearchUsers)    // GET /api/users/search?q=
	userGroup.PUT("/profile", userHandler.UpdateProfile) // PUT /api/users/profile
	userGroup.PUT("/avatar", userHandler.UpdateAvatar)   // PUT /api/users/avatar
	userGroup.GET("/:id", userHandler.GetUser)           // GET /api/users/:id
}
