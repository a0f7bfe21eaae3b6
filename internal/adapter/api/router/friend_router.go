package router

import (
	"github.com/labstack/echo/v4"

	"chitchat/internal/adapter/api/handler"
	"chitchat/internal/adapter/api/middleware"
)

// SetupFriendRouter registers the social graph routes.
func SetupFriendRouter(e *echo.Echo, friendHandler *handler.FriendHandler, authMiddleware *middleware.AuthMiddleware) {
	friendGroup := e.Group("/api/friends")
	friendGroup.Use(authMiddleware.Authenticate)

	friendGroup.POST("/request", friendHandler.SendRequest)              // POST /api/friends/request
	friendGroup.PUT("/request/:requestId", friendHandler.RespondToRequest) // PUT /api/friends/request/:requestId
	friendGroup.GET("/requests", friendHandler.GetRequests)              // GET /api/friends/requests
	friendGroup.GET("", friendHandler.GetFriends)                        // GET /api/friends
	friendGroup.DELETE("/:friendId", friendHandler.RemoveFriend)         // DELETE /api/friends/:friendId
}
