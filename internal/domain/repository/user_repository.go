package repository

import (
	"context"
	"time"

	"chitchat/internal/domain/entity"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error

	// UpdatePresence persists the online flag and last-seen timestamp only.
	UpdatePresence(ctx context.Context, userID string, online bool, lastSeen time.Time) error

	// Search matches username, first name or last name by prefix.
	Search(ctx context.Context, query string, excludeIDs []string, limit int) ([]*entity.User, error)

	// ListRandom returns discovery candidates, newest accounts first.
	ListRandom(ctx context.Context, excludeIDs []string, limit int) ([]*entity.User, error)
}
