package repository

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"chitchat/internal/domain/entity"
	"chitchat/internal/domain/repository"
	"chitchat/pkg/errors"
	"chitchat/pkg/logger"
)

type firestoreMessageRepository struct {
	client *firestore.Client
}

func NewFirestoreMessageRepository(client *firestore.Client) repository.MessageRepository {
	return &firestoreMessageRepository{
		client: client,
	}
}

func (r *firestoreMessageRepository) Create(ctx context.Context, message *entity.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}

	message.CreatedAt = time.Now()
	message.ConversationID = entity.ConversationKey(message.SenderID, message.ReceiverID)
	message.Participants = []string{message.SenderID, message.ReceiverID}

	_, err := r.client.Collection("messages").Doc(message.ID).Set(ctx, message)
	if err != nil {
		return errors.Internal("Failed to create message", err)
	}

	return nil
}

func (r *firestoreMessageRepository) GetByID(ctx context.Context, id string) (*entity.Message, error) {
	doc, err := r.client.Collection("messages").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Message", err)
		}
		return nil, errors.Internal("Failed to get message", err)
	}

	var message entity.Message
	if err := doc.DataTo(&message); err != nil {
		return nil, errors.Internal("Failed to parse message data", err)
	}

	return &message, nil
}

func (r *firestoreMessageRepository) History(ctx context.Context, userA, userB string, limit int) ([]*entity.Message, error) {
	// Only the tail window of a conversation is ever returned; older messages
	// stay out of memory no matter how long the conversation runs.
	query := r.client.Collection("messages").
		Where("conversationId", "==", entity.ConversationKey(userA, userB)).
		OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	var messages []*entity.Message

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			logger.Error("Firestore error while iterating history between %s and %s: %v", userA, userB, err)
			return nil, errors.Internal("Failed to iterate messages", err)
		}

		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			logger.Error("Error parsing message data for conversation %s/%s: %v", userA, userB, err)
			return nil, errors.Internal("Failed to parse message data", err)
		}

		messages = append(messages, &message)
	}

	// Reverse the window to oldest-first, the order clients render in.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}

func (r *firestoreMessageRepository) ConversationsFor(ctx context.Context, userID string) ([]*entity.ConversationSummary, error) {
	query := r.client.Collection("messages").Where("participants", "array-contains", userID)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		logger.Error("Firestore error while fetching conversations for user %s: %v", userID, err)
		return nil, errors.Internal("Failed to fetch conversations", err)
	}

	var messages []*entity.Message
	for _, doc := range docs {
		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			logger.Warn("Skipping malformed message document %s: %v", doc.Ref.ID, err)
			continue
		}
		messages = append(messages, &message)
	}

	return buildConversationSummaries(messages, userID), nil
}

// buildConversationSummaries derives the conversation list view from raw
// messages: per counterpart, the most recent message plus the count of unread
// messages addressed to the user. The result must always equal what a
// deterministic aggregation over the stored messages would produce.
func buildConversationSummaries(messages []*entity.Message, userID string) []*entity.ConversationSummary {
	summaries := make(map[string]*entity.ConversationSummary)

	for _, message := range messages {
		counterpart := message.SenderID
		if counterpart == userID {
			counterpart = message.ReceiverID
		}

		summary, ok := summaries[counterpart]
		if !ok {
			summary = &entity.ConversationSummary{CounterpartID: counterpart}
			summaries[counterpart] = summary
		}

		if summary.LastMessage == nil || moreRecent(message, summary.LastMessage) {
			summary.LastMessage = message
		}
		if message.SenderID == counterpart && message.ReceiverID == userID && !message.IsRead {
			summary.UnreadCount++
		}
	}

	result := make([]*entity.ConversationSummary, 0, len(summaries))
	for _, summary := range summaries {
		result = append(result, summary)
	}

	sort.Slice(result, func(i, j int) bool {
		return moreRecent(result[i].LastMessage, result[j].LastMessage)
	})

	return result
}

// moreRecent orders messages by creation time, falling back to the message
// identity so that equal timestamps still sort deterministically.
func moreRecent(a, b *entity.Message) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

func (r *firestoreMessageRepository) MarkRead(ctx context.Context, messageIDs []string, readerID string) (int, error) {
	now := time.Now()
	updated := 0

	for _, id := range messageIDs {
		docRef := r.client.Collection("messages").Doc(id)
		doc, err := docRef.Get(ctx)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				logger.Debug("MarkRead: message %s not found, skipping", id)
				continue
			}
			return updated, errors.Internal("Failed to get message", err)
		}

		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			return updated, errors.Internal("Failed to parse message data", err)
		}

		// Ownership is part of the query: only the receiver flips the flag,
		// foreign identities are skipped rather than errored.
		if message.ReceiverID != readerID || message.IsRead {
			continue
		}

		_, err = docRef.Update(ctx, []firestore.Update{
			{Path: "isRead", Value: true},
			{Path: "readAt", Value: now},
		})
		if err != nil {
			return updated, errors.Internal("Failed to update message read status", err)
		}
		updated++
	}

	return updated, nil
}
