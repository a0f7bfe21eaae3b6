package handler

import (
	"net/http"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	ws "chitchat/internal/infrastructure/websocket"
	"chitchat/pkg/errors"
)

type WebSocketHandler struct {
	hub      *ws.Hub
	upgrader gorillaws.Upgrader
}

// NewWebSocketHandler builds the realtime endpoint. allowedOrigins is the same
// allowlist the CORS layer uses; requests without an Origin header (native
// clients) are accepted.
func NewWebSocketHandler(hub *ws.Hub, allowedOrigins []string) *WebSocketHandler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = struct{}{}
	}

	return &WebSocketHandler{
		hub: hub,
		upgrader: gorillaws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				_, ok := allowed[origin]
				return ok
			},
		},
	}
}

// HandleWebSocket upgrades the connection and starts the pumps. The client is
// not registered for delivery until it identifies itself with a join_room
// event.
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Internal("Failed to upgrade connection", err)
	}

	client := ws.NewClient(conn)

	go client.WritePump()
	go client.ReadPump(h.hub)

	return nil
}
