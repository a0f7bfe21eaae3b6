package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"chitchat/internal/domain/entity"
	"chitchat/pkg/errors"
)

func TestSendRequestAppendsPendingRequest(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := NewFriendUseCase(userRepo)

	userRepo.On("GetByID", mock.Anything, "bob").Return(&entity.User{ID: "bob"}, nil)
	userRepo.On("GetByID", mock.Anything, "alice").Return(&entity.User{ID: "alice"}, nil)

	var saved *entity.User
	userRepo.On("Update", mock.Anything, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*entity.User)
		}).
		Return(nil)

	require.NoError(t, uc.SendRequest(context.Background(), "alice", "bob"))

	require.NotNil(t, saved)
	assert.Equal(t, "bob", saved.ID)
	require.Len(t, saved.FriendRequests, 1)
	assert.Equal(t, "alice", saved.FriendRequests[0].From)
	assert.Equal(t, entity.FriendRequestPending, saved.FriendRequests[0].Status)
	assert.NotEmpty(t, saved.FriendRequests[0].ID)
}

func TestSendRequestToSelfRejected(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := NewFriendUseCase(userRepo)

	err := uc.SendRequest(context.Background(), "alice", "alice")

	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
	userRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestSendRequestWhenAlreadyFriends(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := NewFriendUseCase(userRepo)

	userRepo.On("GetByID", mock.Anything, "bob").Return(&entity.User{ID: "bob"}, nil)
	userRepo.On("GetByID", mock.Anything, "alice").Return(&entity.User{
		ID:      "alice",
		Friends: []string{"bob"},
	}, nil)

	err := uc.SendRequest(context.Background(), "alice", "bob")

	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
	userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestSendRequestDuplicatePendingRejected(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := NewFriendUseCase(userRepo)

	userRepo.On("GetByID", mock.Anything, "bob").Return(&entity.User{
		ID: "bob",
		FriendRequests: []entity.FriendRequest{
			{ID: "req-1", From: "alice", Status: entity.FriendRequestPending},
		},
	}, nil)
	userRepo.On("GetByID", mock.Anything, "alice").Return(&entity.User{ID: "alice"}, nil)

	err := uc.SendRequest(context.Background(), "alice", "bob")

	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
	userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAcceptRequestLinksBothSides(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := NewFriendUseCase(userRepo)

	userRepo.On("GetByID", mock.Anything, "bob").Return(&entity.User{
		ID: "bob",
		FriendRequests: []entity.FriendRequest{
			{ID: "req-1", From: "alice", Status: entity.FriendRequestPending},
		},
	}, nil)
	userRepo.On("GetByID", mock.Anything, "alice").Return(&entity.User{ID: "alice"}, nil)

	var updates []*entity.User
	userRepo.On("Update", mock.Anything, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			updates = append(updates, args.Get(1).(*entity.User))
		}).
		Return(nil)

	require.NoError(t, uc.RespondToRequest(context.Background(), "bob", "req-1", "accept"))

	require.Len(t, updates, 2)
	requester, recipient := updates[0], updates[1]
	assert.Equal(t, "alice", requester.ID)
	assert.Contains(t, requester.Friends, "bob")
	assert.Equal(t, "bob", recipient.ID)
	assert.Contains(t, recipient.Friends, "alice")
	assert.Equal(t, entity.FriendRequestAccepted, recipient.FriendRequests[0].Status)
}

func TestRejectRequestLeavesFriendsUntouched(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := NewFriendUseCase(userRepo)

	userRepo.On("GetByID", mock.Anything, "bob").Return(&entity.User{
		ID: "bob",
		FriendRequests: []entity.FriendRequest{
			{ID: "req-1", From: "alice", Status: entity.FriendRequestPending},
		},
	}, nil)

	var saved *entity.User
	userRepo.On("Update", mock.Anything, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*entity.User)
		}).
		Return(nil)

	require.NoError(t, uc.RespondToRequest(context.Background(), "bob", "req-1", "reject"))

	require.NotNil(t, saved)
	assert.Empty(t, saved.Friends)
	assert.Equal(t, entity.FriendRequestRejected, saved.FriendRequests[0].Status)
	userRepo.AssertNumberOfCalls(t, "Update", 1)
}

func TestRespondInvalidAction(t *testing.T) {
	uc := NewFriendUseCase(new(MockUserRepository))

	err := uc.RespondToRequest(context.Background(), "bob", "req-1", "maybe")

	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestRespondUnknownRequest(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := NewFriendUseCase(userRepo)

	userRepo.On("GetByID", mock.Anything, "bob").Return(&entity.User{ID: "bob"}, nil)

	err := uc.RespondToRequest(context.Background(), "bob", "req-404", "accept")

	require.Error(t, err)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestRespondAlreadyProcessedRequest(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := NewFriendUseCase(userRepo)

	userRepo.On("GetByID", mock.Anything, "bob").Return(&entity.User{
		ID: "bob",
		FriendRequests: []entity.FriendRequest{
			{ID: "req-1", From: "alice", Status: entity.FriendRequestRejected},
		},
	}, nil)

	err := uc.RespondToRequest(context.Background(), "bob", "req-1", "accept")

	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestPendingRequestsSkipsProcessedAndUnresolvable(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := NewFriendUseCase(userRepo)

	now := time.Now()
	userRepo.On("GetByID", mock.Anything, "bob").Return(&entity.User{
		ID: "bob",
		FriendRequests: []entity.FriendRequest{
			{ID: "req-1", From: "alice", Status: entity.FriendRequestPending, CreatedAt: now},
			{ID: "req-2", From: "carol", Status: entity.FriendRequestAccepted},
			{ID: "req-3", From: "ghost", Status: entity.FriendRequestPending},
		},
	}, nil)
	userRepo.On("GetByID", mock.Anything, "alice").Return(&entity.User{ID: "alice", Username: "alice"}, nil)
	userRepo.On("GetByID", mock.Anything, "ghost").Return(nil, errors.NotFound("User", nil))

	requests, err := uc.PendingRequests(context.Background(), "bob")

	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, "req-1", requests[0].ID)
	assert.Equal(t, "alice", requests[0].From.ID)
}

func TestListFriendsSkipsUnresolvable(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := NewFriendUseCase(userRepo)

	userRepo.On("GetByID", mock.Anything, "alice").Return(&entity.User{
		ID:      "alice",
		Friends: []string{"bob", "ghost"},
	}, nil)
	userRepo.On("GetByID", mock.Anything, "bob").Return(&entity.User{ID: "bob"}, nil)
	userRepo.On("GetByID", mock.Anything, "ghost").Return(nil, errors.NotFound("User", nil))

	friends, err := uc.ListFriends(context.Background(), "alice")

	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, "bob", friends[0].ID)
}

func TestRemoveFriendUnlinksBothSides(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := NewFriendUseCase(userRepo)

	userRepo.On("GetByID", mock.Anything, "alice").Return(&entity.User{
		ID:      "alice",
		Friends: []string{"bob", "carol"},
	}, nil)
	userRepo.On("GetByID", mock.Anything, "bob").Return(&entity.User{
		ID:      "bob",
		Friends: []string{"alice"},
	}, nil)

	var updates []*entity.User
	userRepo.On("Update", mock.Anything, mock.AnythingOfType("*entity.User")).
		Run(func(args mock.Arguments) {
			updates = append(updates, args.Get(1).(*entity.User))
		}).
		Return(nil)

	require.NoError(t, uc.RemoveFriend(context.Background(), "alice", "bob"))

	require.Len(t, updates, 2)
	assert.Equal(t, []string{"carol"}, updates[0].Friends)
	assert.Empty(t, updates[1].Friends)
}

func TestRemoveFriendToleratesMissingCounterpart(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := NewFriendUseCase(userRepo)

	userRepo.On("GetByID", mock.Anything, "alice").Return(&entity.User{
		ID:      "alice",
		Friends: []string{"ghost"},
	}, nil)
	userRepo.On("GetByID", mock.Anything, "ghost").Return(nil, errors.NotFound("User", nil))
	userRepo.On("Update", mock.Anything, mock.AnythingOfType("*entity.User")).Return(nil)

	require.NoError(t, uc.RemoveFriend(context.Background(), "alice", "ghost"))
	userRepo.AssertNumberOfCalls(t, "Update", 1)
}
