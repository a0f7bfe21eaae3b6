package router

import (
	"github.com/labstack/echo/v4"

	"chitchat/internal/adapter/api/handler"
	"chitchat/internal/adapter/api/middleware"
)

// SetupChatRouter registers the chat REST surface (excluding WebSocket).
func SetupChatRouter(e *echo.Echo, chatHandler *handler.ChatHandler, authMiddleware *middleware.AuthMiddleware) {
	chatGroup := e.Group("/api/chat")
	chatGroup.Use(authMiddleware.Authenticate)

	chatGroup.GET("/conversations", chatHandler.GetConversations)       // GET /api/chat/conversations
	chatGroup.POST("/send", chatHandler.SendMessage)                    // POST /api/chat/send
	chatGroup.PUT("/message/:messageId/read", chatHandler.MarkMessageRead) // PUT /api/chat/message/:messageId/read
	chatGroup.GET("/:userId", chatHandler.GetHistory)                   // GET /api/chat/:userId
}
