package websocket

import (
	"sync"

	"chitchat/pkg/logger"
)

// EventHandler receives every frame read from a client connection plus the
// disconnect signal. It is wired once at startup; the hub itself never
// interprets payloads.
type EventHandler interface {
	HandleEvent(client *Client, raw []byte)
	// HandleDisconnect is called after the connection is removed from the
	// registry. last is true when it was the user's final live connection.
	HandleDisconnect(client *Client, last bool)
}

// Hub is the connection registry: it maps a user to the set of live
// connections held by that user. A user counts as online while at least one
// registration remains, so a second device dropping never flips presence.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
	handler EventHandler
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]map[*Client]struct{}),
	}
}

func (h *Hub) SetHandler(handler EventHandler) {
	h.handler = handler
}

// Register adds a live connection for the client's user. It reports whether
// this was the user's first connection (the Offline → Online transition).
func (h *Hub) Register(client *Client) bool {
	if client.UserID == "" {
		return false
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.clients[client.UserID]
	if !ok {
		conns = make(map[*Client]struct{})
		h.clients[client.UserID] = conns
	}
	conns[client] = struct{}{}

	return len(conns) == 1
}

// Unregister removes a connection and reports whether it was the last one for
// its user (the Online → Offline transition). Unknown connections report false.
// The client's Send channel stays open: late replies to an evicted connection
// go nowhere, but concurrent senders must never hit a closed channel.
func (h *Hub) Unregister(client *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.clients[client.UserID]
	if !ok {
		return false
	}
	if _, ok := conns[client]; !ok {
		return false
	}

	delete(conns, client)

	if len(conns) == 0 {
		delete(h.clients, client.UserID)
		return true
	}
	return false
}

// SendToUser delivers an event to every live connection of one user. With no
// registrations it is a silent no-op: the recipient is offline and will catch
// up from history.
func (h *Hub) SendToUser(userID string, event []byte) {
	h.mu.RLock()
	conns := h.clients[userID]
	stale := h.push(conns, event)
	h.mu.RUnlock()

	h.dropStale(userID, stale)
}

// BroadcastExcept fans an event out to every connected user except one. Used
// for presence changes, which in this design every user may observe.
func (h *Hub) BroadcastExcept(event []byte, excludeUserID string) {
	h.mu.RLock()
	var stale []*Client
	for userID, conns := range h.clients {
		if userID == excludeUserID {
			continue
		}
		stale = append(stale, h.push(conns, event)...)
	}
	h.mu.RUnlock()

	for _, client := range stale {
		h.dropStale(client.UserID, []*Client{client})
	}
}

// push queues an event on each connection, collecting those whose send buffer
// is full. Called with at least a read lock held.
func (h *Hub) push(conns map[*Client]struct{}, event []byte) []*Client {
	var stale []*Client
	for client := range conns {
		select {
		case client.Send <- event:
		default:
			stale = append(stale, client)
		}
	}
	return stale
}

// dropStale disconnects clients that stopped draining their send buffer. The
// hub must never block on a slow consumer.
func (h *Hub) dropStale(userID string, stale []*Client) {
	for _, client := range stale {
		logger.Warn("Dropping slow websocket connection for user %s", userID)
		h.disconnect(client)
	}
}

func (h *Hub) IsOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID]) > 0
}

// OnlineUsers returns the number of distinct users with a live connection.
func (h *Hub) OnlineUsers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// disconnect tears a connection down and notifies the handler. Reached from
// the read pump on connection loss and from dropStale.
func (h *Hub) disconnect(client *Client) {
	last := h.Unregister(client)
	client.close()

	if h.handler != nil {
		h.handler.HandleDisconnect(client, last)
	}
}

// dispatch forwards a raw inbound frame to the wired handler.
func (h *Hub) dispatch(client *Client, raw []byte) {
	if h.handler == nil {
		logger.Warn("Dropping event from user %q: no event handler wired", client.UserID)
		return
	}
	h.handler.HandleEvent(client, raw)
}
