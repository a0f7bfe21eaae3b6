package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chitchat/internal/domain/entity"
)

func msg(id, sender, receiver string, createdAt time.Time, read bool) *entity.Message {
	return &entity.Message{
		ID:         id,
		SenderID:   sender,
		ReceiverID: receiver,
		Content:    "content-" + id,
		Type:       entity.MessageTypeText,
		IsRead:     read,
		CreatedAt:  createdAt,
	}
}

func TestBuildConversationSummaries(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	messages := []*entity.Message{
		msg("m1", "bob", "alice", base, true),
		msg("m2", "alice", "bob", base.Add(1*time.Minute), false),
		msg("m3", "bob", "alice", base.Add(2*time.Minute), false),
		msg("m4", "carol", "alice", base.Add(30*time.Second), false),
		msg("m5", "carol", "alice", base.Add(45*time.Second), false),
	}

	summaries := buildConversationSummaries(messages, "alice")

	require.Len(t, summaries, 2)

	// Ordered by last-message recency: bob's m3 is newer than carol's m5.
	assert.Equal(t, "bob", summaries[0].CounterpartID)
	assert.Equal(t, "m3", summaries[0].LastMessage.ID)
	assert.Equal(t, 1, summaries[0].UnreadCount)

	assert.Equal(t, "carol", summaries[1].CounterpartID)
	assert.Equal(t, "m5", summaries[1].LastMessage.ID)
	assert.Equal(t, 2, summaries[1].UnreadCount)
}

func TestUnreadCountsOnlyInboundUnread(t *testing.T) {
	base := time.Now()

	messages := []*entity.Message{
		// Outbound unread must not count against the viewer.
		msg("m1", "alice", "bob", base, false),
		// Inbound but already read.
		msg("m2", "bob", "alice", base.Add(time.Second), true),
		// The only one that counts.
		msg("m3", "bob", "alice", base.Add(2*time.Second), false),
	}

	summaries := buildConversationSummaries(messages, "alice")

	require.Len(t, summaries, 1)
	assert.Equal(t, 1, summaries[0].UnreadCount)
}

func TestBuildConversationSummariesIndependentOfInputOrder(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	forward := []*entity.Message{
		msg("m1", "bob", "alice", base, false),
		msg("m2", "bob", "alice", base.Add(time.Minute), false),
	}
	reversed := []*entity.Message{forward[1], forward[0]}

	a := buildConversationSummaries(forward, "alice")
	b := buildConversationSummaries(reversed, "alice")

	require.Len(t, a, 1)
	require.Len(t, b, 1)
	assert.Equal(t, a[0].LastMessage.ID, b[0].LastMessage.ID)
	assert.Equal(t, a[0].UnreadCount, b[0].UnreadCount)
}

func TestMoreRecentTieBreaksOnID(t *testing.T) {
	at := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	older := msg("aaa", "bob", "alice", at, false)
	newer := msg("bbb", "bob", "alice", at, false)

	assert.True(t, moreRecent(newer, older))
	assert.False(t, moreRecent(older, newer))

	summaries := buildConversationSummaries([]*entity.Message{older, newer}, "alice")
	require.Len(t, summaries, 1)
	assert.Equal(t, "bbb", summaries[0].LastMessage.ID)
}

func TestBuildConversationSummariesEmpty(t *testing.T) {
	assert.Empty(t, buildConversationSummaries(nil, "alice"))
}
