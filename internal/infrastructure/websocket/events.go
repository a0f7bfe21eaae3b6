package websocket

import (
	"encoding/json"
	"time"
)

// Event types carried over the realtime channel.
const (
	EventJoinRoom            = "join_room"
	EventSendMessage         = "send_message"
	EventReceiveMessage      = "receive_message"
	EventConversationUpdated = "conversation_updated"
	EventMarkMessagesRead    = "mark_messages_read"
	EventMessagesRead        = "messages_read"
	EventUserOnline          = "user_online"
	EventUserOffline         = "user_offline"
	EventCallUser            = "call_user"
	EventCallAccepted        = "call_accepted"
	EventCallRejected        = "call_rejected"
	EventCallEnd             = "call_end"
	EventWebRTCSignal        = "webrtc_signal"
	EventMessageError        = "message_error"
	EventError               = "error"
)

// Event is the envelope for every frame on the channel. Data holds the typed
// payload for the event; unknown event types are rejected, not forwarded.
type Event struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp string          `json:"timestamp,omitempty"`
}

// NewEvent marshals a typed payload into a wire-ready envelope.
func NewEvent(eventType string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Event{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

type JoinRoomPayload struct {
	UserID string `json:"userId"`
}

type SendMessagePayload struct {
	ReceiverID  string `json:"receiverId"`
	Message     string `json:"message"`
	SenderID    string `json:"senderId,omitempty"`
	MessageType string `json:"messageType,omitempty"`
}

type ReceiveMessagePayload struct {
	SenderID  string    `json:"senderId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	MessageID string    `json:"messageId"`
}

type LastMessagePayload struct {
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	IsRead    bool      `json:"isRead"`
}

// ConversationUpdatedPayload carries the counterpart identity and the fresh
// last-message summary so every live session can update its conversation list
// without re-fetching.
type ConversationUpdatedPayload struct {
	UserID      string             `json:"userId"`
	LastMessage LastMessagePayload `json:"lastMessage"`
}

type MarkMessagesReadPayload struct {
	MessageIDs []string `json:"messageIds"`
	SenderID   string   `json:"senderId"`
}

type MessagesReadPayload struct {
	MessageIDs []string  `json:"messageIds"`
	SenderID   string    `json:"senderId"`
	ReadBy     string    `json:"readBy"`
	ReadAt     time.Time `json:"readAt"`
}

type PresencePayload struct {
	UserID string `json:"userId"`
}

// CallPayload is shared by all call signaling events. Type is only meaningful
// on call_user ("voice" or "video").
type CallPayload struct {
	From string `json:"from"`
	To   string `json:"to"`
	Type string `json:"type,omitempty"`
}

// SignalPayload relays WebRTC negotiation data (SDP offers/answers, ICE
// candidates) between the two peers. The relay never inspects Signal.
type SignalPayload struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Signal json.RawMessage `json:"signal"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}
