package router

import (
	"github.com/labstack/echo/v4"

	"chitchat/internal/adapter/api/handler"
)

// SetupWebSocketRouter registers the realtime endpoint. Identification happens
// in-band via join_room, so no auth middleware sits in front of the upgrade.
func SetupWebSocketRouter(e *echo.Echo, wsHandler *handler.WebSocketHandler) {
	e.GET("/ws", wsHandler.HandleWebSocket)
}
