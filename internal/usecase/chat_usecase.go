package usecase

import (
	"context"
	"time"

	"chitchat/internal/domain/entity"
	"chitchat/internal/domain/repository"
	ws "chitchat/internal/infrastructure/websocket"
	"chitchat/pkg/errors"
	"chitchat/pkg/logger"
)

// ChatUseCase is the realtime message router and read-state synchronizer: it
// persists outgoing messages, delivers them to the recipient's live
// connections and keeps both parties' conversation lists and unread counters
// in sync.
type ChatUseCase struct {
	messageRepo  repository.MessageRepository
	userRepo     repository.UserRepository
	hub          *ws.Hub
	historyLimit int
}

func NewChatUseCase(
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	hub *ws.Hub,
	historyLimit int,
) *ChatUseCase {
	if historyLimit <= 0 {
		historyLimit = 100
	}
	return &ChatUseCase{
		messageRepo:  messageRepo,
		userRepo:     userRepo,
		hub:          hub,
		historyLimit: historyLimit,
	}
}

type SendMessageInput struct {
	ReceiverID string
	Content    string
	Type       string
}

type ConversationResponse struct {
	User        *entity.UserSummary `json:"user"`
	LastMessage *entity.Message     `json:"lastMessage"`
	UnreadCount int                 `json:"unreadCount"`
}

// SendMessage validates, persists and delivers one message. Persistence
// failure aborts the whole operation: the caller must be able to tell the
// client the message was not sent. Delivery to an offline receiver is a
// no-op, the message waits in history.
func (uc *ChatUseCase) SendMessage(ctx context.Context, senderID string, input SendMessageInput) (*entity.Message, error) {
	if senderID == "" || input.ReceiverID == "" {
		return nil, errors.BadRequest("Sender and receiver are required", nil)
	}
	if senderID == input.ReceiverID {
		logger.Debug("SendMessage rejected: user %s attempted to message themselves", senderID)
		return nil, errors.BadRequest("Cannot send message to yourself", nil)
	}
	if input.Content == "" {
		return nil, errors.BadRequest("Message content is required", nil)
	}

	kind := input.Type
	if kind == "" {
		kind = entity.MessageTypeText
	}
	if !entity.ValidMessageType(kind) {
		return nil, errors.BadRequest("Invalid message type", nil)
	}

	message := &entity.Message{
		SenderID:   senderID,
		ReceiverID: input.ReceiverID,
		Content:    input.Content,
		Type:       kind,
		IsRead:     false,
	}

	if err := uc.messageRepo.Create(ctx, message); err != nil {
		logger.Error("SendMessage: failed to persist message from %s to %s: %v", senderID, input.ReceiverID, err)
		return nil, err
	}

	uc.deliver(input.ReceiverID, ws.EventReceiveMessage, ws.ReceiveMessagePayload{
		SenderID:  senderID,
		Message:   message.Content,
		Timestamp: message.CreatedAt,
		MessageID: message.ID,
	})

	// Both sides get the conversation delta, so the sender's other devices
	// update their lists without a re-fetch.
	summary := ws.LastMessagePayload{
		Content:   message.Content,
		CreatedAt: message.CreatedAt,
		IsRead:    false,
	}
	uc.deliver(senderID, ws.EventConversationUpdated, ws.ConversationUpdatedPayload{
		UserID:      input.ReceiverID,
		LastMessage: summary,
	})
	uc.deliver(input.ReceiverID, ws.EventConversationUpdated, ws.ConversationUpdatedPayload{
		UserID:      senderID,
		LastMessage: summary,
	})

	return message, nil
}

// MarkMessagesRead flips the read flag on the given messages (scoped to the
// reader as receiver), then notifies the counterpart for read receipts and the
// reader's own other sessions for unread-counter sync. Re-marking already-read
// messages is harmless; the notification may be observed twice, so consumers
// must clamp unread decrements at zero.
func (uc *ChatUseCase) MarkMessagesRead(ctx context.Context, readerID string, messageIDs []string, counterpartID string) (int, error) {
	if readerID == "" {
		return 0, errors.BadRequest("Reader is required", nil)
	}

	updated, err := uc.messageRepo.MarkRead(ctx, messageIDs, readerID)
	if err != nil {
		logger.Error("MarkMessagesRead: failed to update read state for %s: %v", readerID, err)
		return updated, err
	}

	payload := ws.MessagesReadPayload{
		MessageIDs: messageIDs,
		SenderID:   counterpartID,
		ReadBy:     readerID,
		ReadAt:     time.Now(),
	}
	if counterpartID != "" {
		uc.deliver(counterpartID, ws.EventMessagesRead, payload)
	}
	uc.deliver(readerID, ws.EventMessagesRead, payload)

	return updated, nil
}

// MarkMessageRead is the single-message REST path. Unlike the bulk socket
// path, a foreign message is an explicit authorization failure here.
func (uc *ChatUseCase) MarkMessageRead(ctx context.Context, messageID, userID string) error {
	message, err := uc.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}

	if message.ReceiverID != userID {
		return errors.Forbidden("Only the receiver can mark a message as read", nil)
	}

	_, err = uc.messageRepo.MarkRead(ctx, []string{messageID}, userID)
	return err
}

// History returns the most recent window of messages between the caller and
// one counterpart, oldest-first.
func (uc *ChatUseCase) History(ctx context.Context, userID, otherUserID string) ([]*entity.Message, error) {
	if otherUserID == "" {
		return nil, errors.BadRequest("User id is required", nil)
	}
	return uc.messageRepo.History(ctx, userID, otherUserID, uc.historyLimit)
}

// ListConversations resolves the derived conversation summaries and joins in
// each counterpart's public profile.
func (uc *ChatUseCase) ListConversations(ctx context.Context, userID string) ([]*ConversationResponse, error) {
	summaries, err := uc.messageRepo.ConversationsFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	conversations := make([]*ConversationResponse, 0, len(summaries))
	for _, summary := range summaries {
		counterpart, err := uc.userRepo.GetByID(ctx, summary.CounterpartID)
		if err != nil {
			// A deleted counterpart should not break the whole list.
			logger.Warn("ListConversations: counterpart %s not resolvable: %v", summary.CounterpartID, err)
			continue
		}
		conversations = append(conversations, &ConversationResponse{
			User:        counterpart.Summary(),
			LastMessage: summary.LastMessage,
			UnreadCount: summary.UnreadCount,
		})
	}

	return conversations, nil
}

func (uc *ChatUseCase) deliver(userID, eventType string, payload interface{}) {
	event, err := ws.NewEvent(eventType, payload)
	if err != nil {
		logger.Error("Failed to encode %s event for user %s: %v", eventType, userID, err)
		return
	}
	uc.hub.SendToUser(userID, event)
}
