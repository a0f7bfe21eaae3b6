package usecase

import (
	"context"
	"encoding/json"

	ws "chitchat/internal/infrastructure/websocket"
	"chitchat/pkg/logger"
)

// EventDispatcher decodes inbound socket frames into their typed variants and
// routes them to the message router, read-state synchronizer, presence
// tracker or call relay. Unknown or malformed events are answered with an
// error event and never forwarded.
type EventDispatcher struct {
	chat     *ChatUseCase
	presence *PresenceUseCase
	calls    *CallRelay
	hub      *ws.Hub
}

func NewEventDispatcher(chat *ChatUseCase, presence *PresenceUseCase, calls *CallRelay, hub *ws.Hub) *EventDispatcher {
	return &EventDispatcher{
		chat:     chat,
		presence: presence,
		calls:    calls,
		hub:      hub,
	}
}

func (d *EventDispatcher) HandleEvent(client *ws.Client, raw []byte) {
	var event ws.Event
	if err := json.Unmarshal(raw, &event); err != nil {
		logger.Warn("Rejecting malformed frame from user %q: %v", client.UserID, err)
		d.sendError(client, "Invalid event format")
		return
	}

	ctx := context.Background()

	if event.Type == ws.EventJoinRoom {
		d.handleJoin(ctx, client, event.Data)
		return
	}

	// Every other event needs an identified connection.
	if client.UserID == "" {
		d.sendError(client, "join_room required before other events")
		return
	}

	switch event.Type {
	case ws.EventSendMessage:
		d.handleSendMessage(ctx, client, event.Data)

	case ws.EventMarkMessagesRead:
		d.handleMarkMessagesRead(ctx, client, event.Data)

	case ws.EventCallUser:
		var payload ws.CallPayload
		if !d.decode(client, event.Data, &payload) {
			return
		}
		d.calls.CallUser(client.UserID, payload)

	case ws.EventCallAccepted:
		var payload ws.CallPayload
		if !d.decode(client, event.Data, &payload) {
			return
		}
		d.calls.CallAccepted(client.UserID, payload)

	case ws.EventCallRejected:
		var payload ws.CallPayload
		if !d.decode(client, event.Data, &payload) {
			return
		}
		d.calls.CallRejected(client.UserID, payload)

	case ws.EventCallEnd:
		var payload ws.CallPayload
		if !d.decode(client, event.Data, &payload) {
			return
		}
		d.calls.CallEnd(client.UserID, payload)

	case ws.EventWebRTCSignal:
		var payload ws.SignalPayload
		if !d.decode(client, event.Data, &payload) {
			return
		}
		d.calls.ForwardSignal(client.UserID, payload)

	default:
		logger.Warn("Unknown event type %q from user %s", event.Type, client.UserID)
		d.sendError(client, "Unknown event type")
	}
}

// HandleDisconnect flips presence only when the user's final connection is
// gone; a second device dropping leaves the user online.
func (d *EventDispatcher) HandleDisconnect(client *ws.Client, last bool) {
	if client.UserID == "" || !last {
		return
	}
	d.presence.SetOffline(context.Background(), client.UserID)
}

func (d *EventDispatcher) handleJoin(ctx context.Context, client *ws.Client, data json.RawMessage) {
	var payload ws.JoinRoomPayload
	if !d.decode(client, data, &payload) {
		return
	}
	if payload.UserID == "" {
		d.sendError(client, "userId is required")
		return
	}
	if client.UserID != "" && client.UserID != payload.UserID {
		d.sendError(client, "Connection already joined as another user")
		return
	}

	client.UserID = payload.UserID
	first := d.hub.Register(client)
	logger.Info("User %s joined (first connection: %v)", payload.UserID, first)

	if first {
		d.presence.SetOnline(ctx, payload.UserID)
	}
}

func (d *EventDispatcher) handleSendMessage(ctx context.Context, client *ws.Client, data json.RawMessage) {
	var payload ws.SendMessagePayload
	if !d.decode(client, data, &payload) {
		return
	}

	// The sender identity comes from the connection; a senderId in the
	// payload is ignored rather than trusted.
	_, err := d.chat.SendMessage(ctx, client.UserID, SendMessageInput{
		ReceiverID: payload.ReceiverID,
		Content:    payload.Message,
		Type:       payload.MessageType,
	})
	if err != nil {
		logger.Warn("send_message from %s failed: %v", client.UserID, err)
		d.send(client, ws.EventMessageError, ws.ErrorPayload{Error: "Failed to send message"})
	}
}

func (d *EventDispatcher) handleMarkMessagesRead(ctx context.Context, client *ws.Client, data json.RawMessage) {
	var payload ws.MarkMessagesReadPayload
	if !d.decode(client, data, &payload) {
		return
	}

	if _, err := d.chat.MarkMessagesRead(ctx, client.UserID, payload.MessageIDs, payload.SenderID); err != nil {
		// Read-state sync is retried naturally by the next mark; log only.
		logger.Warn("mark_messages_read from %s failed: %v", client.UserID, err)
	}
}

func (d *EventDispatcher) decode(client *ws.Client, data json.RawMessage, out interface{}) bool {
	if len(data) == 0 {
		d.sendError(client, "Missing event payload")
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		logger.Warn("Rejecting malformed payload from user %q: %v", client.UserID, err)
		d.sendError(client, "Invalid event payload")
		return false
	}
	return true
}

func (d *EventDispatcher) send(client *ws.Client, eventType string, payload interface{}) {
	event, err := ws.NewEvent(eventType, payload)
	if err != nil {
		logger.Error("Failed to encode %s event: %v", eventType, err)
		return
	}
	select {
	case client.Send <- event:
	default:
		logger.Warn("Dropping %s event for user %q: send buffer full", eventType, client.UserID)
	}
}

func (d *EventDispatcher) sendError(client *ws.Client, message string) {
	d.send(client, ws.EventError, ws.ErrorPayload{Error: message})
}
