package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"chitchat/internal/domain/entity"
	"chitchat/internal/domain/repository"
	"chitchat/pkg/errors"
	"chitchat/pkg/logger"
)

type firestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUserRepository(client *firestore.Client) repository.UserRepository {
	return &firestoreUserRepository{
		client: client,
	}
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	doc, err := r.client.Collection("users").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("User", err)
		}
		return nil, errors.Internal("Failed to get user", err)
	}

	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, errors.Internal("Failed to parse user data", err)
	}
	if user.ID == "" {
		user.ID = doc.Ref.ID
	}

	return &user, nil
}

func (r *firestoreUserRepository) Update(ctx context.Context, user *entity.User) error {
	updateData := map[string]interface{}{
		"username":  user.Username,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
		"bio":       user.Bio,
		"avatar":    user.Avatar,
		"age":       user.Age,
		"location":  user.Location,
		"updatedAt": time.Now(),
	}

	// Empty strings would clobber existing profile data on a partial update.
	cleanUpdateData := make(map[string]interface{})
	for key, value := range updateData {
		if strVal, ok := value.(string); ok && strVal == "" {
			continue
		}
		if intVal, ok := value.(int); ok && intVal == 0 {
			continue
		}
		cleanUpdateData[key] = value
	}

	// Slices are always written: removing the last friend or clearing requests
	// must persist as an empty list, not be skipped.
	cleanUpdateData["interests"] = notNil(user.Interests)
	cleanUpdateData["friends"] = notNil(user.Friends)
	if user.FriendRequests == nil {
		cleanUpdateData["friendRequests"] = []entity.FriendRequest{}
	} else {
		cleanUpdateData["friendRequests"] = user.FriendRequests
	}

	_, err := r.client.Collection("users").Doc(user.ID).Set(ctx, cleanUpdateData, firestore.MergeAll)
	if err != nil {
		return errors.Internal("Failed to update user", err)
	}

	return nil
}

func notNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func (r *firestoreUserRepository) UpdatePresence(ctx context.Context, userID string, online bool, lastSeen time.Time) error {
	_, err := r.client.Collection("users").Doc(userID).Update(ctx, []firestore.Update{
		{Path: "isOnline", Value: online},
		{Path: "lastSeen", Value: lastSeen},
	})
	if err != nil {
		return errors.Internal("Failed to update presence", err)
	}

	return nil
}

func (r *firestoreUserRepository) Search(ctx context.Context, query string, excludeIDs []string, limit int) ([]*entity.User, error) {
	excluded := make(map[string]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = struct{}{}
	}

	seen := make(map[string]struct{})
	var users []*entity.User

	// Firestore has no substring matching, so search is a prefix scan over
	// each of the name fields, merged and de-duplicated.
	for _, field := range []string{"username", "firstName", "lastName"} {
		q := r.client.Collection("users").
			Where(field, ">=", query).
			Where(field, "<", query+"").
			Limit(limit)

		iter := q.Documents(ctx)
		for {
			doc, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				logger.Error("Firestore error while searching users by %s: %v", field, err)
				return nil, errors.Internal("Failed to search users", err)
			}

			var user entity.User
			if err := doc.DataTo(&user); err != nil {
				logger.Warn("Skipping malformed user document %s: %v", doc.Ref.ID, err)
				continue
			}
			if user.ID == "" {
				user.ID = doc.Ref.ID
			}

			if _, ok := excluded[user.ID]; ok {
				continue
			}
			if _, ok := seen[user.ID]; ok {
				continue
			}
			seen[user.ID] = struct{}{}
			users = append(users, &user)
		}
	}

	if limit > 0 && len(users) > limit {
		users = users[:limit]
	}

	return users, nil
}

func (r *firestoreUserRepository) ListRandom(ctx context.Context, excludeIDs []string, limit int) ([]*entity.User, error) {
	excluded := make(map[string]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = struct{}{}
	}

	// Over-fetch so the exclusion filter still leaves enough candidates.
	query := r.client.Collection("users").
		OrderBy("createdAt", firestore.Desc).
		Limit(limit + len(excludeIDs))

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to fetch discovery users", err)
	}

	var users []*entity.User
	for _, doc := range docs {
		var user entity.User
		if err := doc.DataTo(&user); err != nil {
			logger.Warn("Skipping malformed user document %s: %v", doc.Ref.ID, err)
			continue
		}
		if user.ID == "" {
			user.ID = doc.Ref.ID
		}
		if _, ok := excluded[user.ID]; ok {
			continue
		}
		users = append(users, &user)
		if limit > 0 && len(users) >= limit {
			break
		}
	}

	return users, nil
}
