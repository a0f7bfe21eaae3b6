package entity

import (
	"sort"
	"strings"
	"time"
)

type Message struct {
	ID             string     `json:"id" firestore:"id"`
	ConversationID string     `json:"-" firestore:"conversationId"`
	Participants   []string   `json:"-" firestore:"participants"` // both user ids, for one-sided queries
	SenderID       string     `json:"sender_id" firestore:"senderId"`
	ReceiverID     string     `json:"receiver_id" firestore:"receiverId"`
	Content        string     `json:"content" firestore:"content"` // opaque to the server, may be client-side ciphertext
	Type           string     `json:"message_type" firestore:"messageType"`
	IsRead         bool       `json:"is_read" firestore:"isRead"`
	ReadAt         *time.Time `json:"read_at,omitempty" firestore:"readAt,omitempty"`
	CreatedAt      time.Time  `json:"created_at" firestore:"createdAt"`
}

const (
	MessageTypeText  = "text"
	MessageTypeImage = "image"
	MessageTypeFile  = "file"
)

func ValidMessageType(t string) bool {
	return t == MessageTypeText || t == MessageTypeImage || t == MessageTypeFile
}

// ConversationKey derives the stable identity of the conversation between two
// users, independent of who sent first.
func ConversationKey(userA, userB string) string {
	pair := []string{userA, userB}
	sort.Strings(pair)
	return strings.Join(pair, "|")
}

// ConversationSummary is a derived view over the messages collection: the most
// recent message exchanged with one counterpart plus the number of messages
// from that counterpart the user has not read yet. It is never persisted.
type ConversationSummary struct {
	CounterpartID string
	LastMessage   *Message
	UnreadCount   int
}
