package repository

import (
	"context"

	"chitchat/internal/domain/entity"
)

type MessageRepository interface {
	// Create persists a message, assigning its identity and creation timestamp.
	Create(ctx context.Context, message *entity.Message) error
	GetByID(ctx context.Context, id string) (*entity.Message, error)

	// History returns the most recent `limit` messages between the two users,
	// ordered oldest-first.
	History(ctx context.Context, userA, userB string, limit int) ([]*entity.Message, error)

	// ConversationsFor returns one summary per counterpart the user has
	// exchanged messages with, ordered by last-message recency.
	ConversationsFor(ctx context.Context, userID string) ([]*entity.ConversationSummary, error)

	// MarkRead flips the read flag on the given messages, restricted to those
	// whose receiver is readerID. Identities owned by someone else are skipped,
	// not errored. Returns the number of messages actually updated.
	MarkRead(ctx context.Context, messageIDs []string, readerID string) (int, error)
}
