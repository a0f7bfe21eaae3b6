package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"chitchat/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192

	// SendBufferSize is the per-connection outbound queue length.
	SendBufferSize = 256
)

// Client represents one live websocket connection. UserID stays empty until
// the connection identifies itself with a join_room event.
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte

	closeOnce sync.Once
}

func NewClient(conn *websocket.Conn) *Client {
	return &Client{
		Conn: conn,
		Send: make(chan []byte, SendBufferSize),
	}
}

// close tears down the network connection, which unblocks both pumps. The Send
// channel is never closed: a frame already in flight through the event handler
// may still produce a reply after eviction, and that reply must drop, not
// panic.
func (c *Client) close() {
	c.closeOnce.Do(func() {
		if c.Conn != nil {
			c.Conn.Close()
		}
	})
}

// ReadPump reads frames off the connection and hands them to the hub's event
// handler. Events from a single connection are handled in order. The pump owns
// the disconnect: when the read loop exits for any reason the connection is
// unregistered.
func (c *Client) ReadPump(h *Hub) {
	defer h.disconnect(c)

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("Websocket read error for user %q: %v", c.UserID, err)
			}
			break
		}

		h.dispatch(c, message)
	}
}

// WritePump drains the send queue onto the wire and keeps the connection alive
// with periodic pings. One goroutine per connection serializes all writes. The
// pump exits when a write or ping fails, which close() forces by closing the
// underlying connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
