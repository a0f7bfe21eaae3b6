package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"chitchat/internal/domain/entity"
)

type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, message *entity.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockMessageRepository) GetByID(ctx context.Context, id string) (*entity.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Message), args.Error(1)
}

func (m *MockMessageRepository) History(ctx context.Context, userA, userB string, limit int) ([]*entity.Message, error) {
	args := m.Called(ctx, userA, userB, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Message), args.Error(1)
}

func (m *MockMessageRepository) ConversationsFor(ctx context.Context, userID string) ([]*entity.ConversationSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.ConversationSummary), args.Error(1)
}

func (m *MockMessageRepository) MarkRead(ctx context.Context, messageIDs []string, readerID string) (int, error) {
	args := m.Called(ctx, messageIDs, readerID)
	return args.Int(0), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePresence(ctx context.Context, userID string, online bool, lastSeen time.Time) error {
	args := m.Called(ctx, userID, online, lastSeen)
	return args.Error(0)
}

func (m *MockUserRepository) Search(ctx context.Context, query string, excludeIDs []string, limit int) ([]*entity.User, error) {
	args := m.Called(ctx, query, excludeIDs, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.User), args.Error(1)
}

func (m *MockUserRepository) ListRandom(ctx context.Context, excludeIDs []string, limit int) ([]*entity.User, error) {
	args := m.Called(ctx, excludeIDs, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.User), args.Error(1)
}
