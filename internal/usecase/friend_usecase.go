package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"chitchat/internal/domain/entity"
	"chitchat/internal/domain/repository"
	"chitchat/pkg/errors"
	"chitchat/pkg/logger"
)

// FriendUseCase maintains the social graph. Friendship only gates discovery
// suggestions; any two users may message each other regardless.
type FriendUseCase struct {
	userRepo repository.UserRepository
}

func NewFriendUseCase(userRepo repository.UserRepository) *FriendUseCase {
	return &FriendUseCase{userRepo: userRepo}
}

func (uc *FriendUseCase) SendRequest(ctx context.Context, fromID, toID string) error {
	if fromID == toID {
		return errors.BadRequest("Cannot send friend request to yourself", nil)
	}

	target, err := uc.userRepo.GetByID(ctx, toID)
	if err != nil {
		return err
	}

	sender, err := uc.userRepo.GetByID(ctx, fromID)
	if err != nil {
		return err
	}

	if sender.IsFriendsWith(toID) {
		return errors.BadRequest("Already friends with this user", nil)
	}

	for _, request := range target.FriendRequests {
		if request.From == fromID && request.Status == entity.FriendRequestPending {
			return errors.BadRequest("Friend request already sent", nil)
		}
	}

	target.FriendRequests = append(target.FriendRequests, entity.FriendRequest{
		ID:        uuid.New().String(),
		From:      fromID,
		Status:    entity.FriendRequestPending,
		CreatedAt: time.Now(),
	})

	return uc.userRepo.Update(ctx, target)
}

// RespondToRequest accepts or rejects a pending request addressed to userID.
// Accepting links both users' friend lists.
func (uc *FriendUseCase) RespondToRequest(ctx context.Context, userID, requestID, action string) error {
	if action != "accept" && action != "reject" {
		return errors.BadRequest("Action must be accept or reject", nil)
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	var request *entity.FriendRequest
	for i := range user.FriendRequests {
		if user.FriendRequests[i].ID == requestID {
			request = &user.FriendRequests[i]
			break
		}
	}
	if request == nil {
		return errors.NotFound("Friend request", nil)
	}
	if request.Status != entity.FriendRequestPending {
		return errors.BadRequest("Request already processed", nil)
	}

	if action == "accept" {
		request.Status = entity.FriendRequestAccepted
		user.Friends = append(user.Friends, request.From)

		requester, err := uc.userRepo.GetByID(ctx, request.From)
		if err != nil {
			return err
		}
		requester.Friends = append(requester.Friends, userID)
		if err := uc.userRepo.Update(ctx, requester); err != nil {
			return err
		}
	} else {
		request.Status = entity.FriendRequestRejected
	}

	return uc.userRepo.Update(ctx, user)
}

// PendingRequests resolves the profiles behind the user's open requests.
func (uc *FriendUseCase) PendingRequests(ctx context.Context, userID string) ([]*PendingRequestResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	requests := make([]*PendingRequestResponse, 0)
	for _, request := range user.FriendRequests {
		if request.Status != entity.FriendRequestPending {
			continue
		}
		sender, err := uc.userRepo.GetByID(ctx, request.From)
		if err != nil {
			logger.Warn("Friend request %s references unresolvable user %s: %v", request.ID, request.From, err)
			continue
		}
		requests = append(requests, &PendingRequestResponse{
			ID:        request.ID,
			From:      sender.Summary(),
			CreatedAt: request.CreatedAt,
		})
	}

	return requests, nil
}

type PendingRequestResponse struct {
	ID        string              `json:"id"`
	From      *entity.UserSummary `json:"from"`
	CreatedAt time.Time           `json:"created_at"`
}

func (uc *FriendUseCase) ListFriends(ctx context.Context, userID string) ([]*entity.UserSummary, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	friends := make([]*entity.UserSummary, 0, len(user.Friends))
	for _, friendID := range user.Friends {
		friend, err := uc.userRepo.GetByID(ctx, friendID)
		if err != nil {
			logger.Warn("Friend list for %s references unresolvable user %s: %v", userID, friendID, err)
			continue
		}
		friends = append(friends, friend.Summary())
	}

	return friends, nil
}

// RemoveFriend unlinks both sides of the relationship.
func (uc *FriendUseCase) RemoveFriend(ctx context.Context, userID, friendID string) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	user.Friends = removeID(user.Friends, friendID)
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return err
	}

	friend, err := uc.userRepo.GetByID(ctx, friendID)
	if err != nil {
		// The other side may already be gone; the caller's list is clean.
		logger.Warn("RemoveFriend: friend %s not resolvable: %v", friendID, err)
		return nil
	}

	friend.Friends = removeID(friend.Friends, userID)
	return uc.userRepo.Update(ctx, friend)
}

func removeID(ids []string, target string) []string {
	result := ids[:0]
	for _, id := range ids {
		if id != target {
			result = append(result, id)
		}
	}
	return result
}
