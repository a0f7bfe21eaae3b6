package usecase

import (
	"context"
	"time"

	"chitchat/internal/domain/repository"
	ws "chitchat/internal/infrastructure/websocket"
	"chitchat/pkg/logger"
)

// PresenceUseCase tracks the Offline → Online → Offline transitions. The
// registry already guarantees the transitions fire only on the first
// registration and the last removal, so a user with three tabs open stays
// online until the third one drops.
type PresenceUseCase struct {
	userRepo repository.UserRepository
	hub      *ws.Hub
}

func NewPresenceUseCase(userRepo repository.UserRepository, hub *ws.Hub) *PresenceUseCase {
	return &PresenceUseCase{
		userRepo: userRepo,
		hub:      hub,
	}
}

// SetOnline persists the online flag and announces the user to everyone else.
// Presence is best-effort: a store failure is logged and must not fail the
// connection or suppress the broadcast.
func (uc *PresenceUseCase) SetOnline(ctx context.Context, userID string) {
	if err := uc.userRepo.UpdatePresence(ctx, userID, true, time.Now()); err != nil {
		logger.Warn("Presence: failed to persist online state for %s: %v", userID, err)
	}

	uc.broadcast(ws.EventUserOnline, userID)
}

// SetOffline persists the offline flag with a fresh last-seen timestamp and
// announces the departure.
func (uc *PresenceUseCase) SetOffline(ctx context.Context, userID string) {
	if err := uc.userRepo.UpdatePresence(ctx, userID, false, time.Now()); err != nil {
		logger.Warn("Presence: failed to persist offline state for %s: %v", userID, err)
	}

	uc.broadcast(ws.EventUserOffline, userID)
}

func (uc *PresenceUseCase) broadcast(eventType, userID string) {
	event, err := ws.NewEvent(eventType, ws.PresencePayload{UserID: userID})
	if err != nil {
		logger.Error("Presence: failed to encode %s event for %s: %v", eventType, userID, err)
		return
	}
	uc.hub.BroadcastExcept(event, userID)
}
