package usecase

import (
	"context"

	"chitchat/internal/domain/entity"
	"chitchat/internal/domain/repository"
	"chitchat/pkg/errors"
)

const (
	discoveryLimit = 10
	searchLimit    = 20
)

// UserUseCase covers profile reads/updates and discovery. The messaging core
// only consults it for participant metadata; friendship gates discovery
// visibility, never messaging.
type UserUseCase struct {
	userRepo repository.UserRepository
}

func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo}
}

type UpdateProfileInput struct {
	FirstName string
	LastName  string
	Bio       string
	Age       int
	Location  string
	Interests []string
}

func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}
	if input.Bio != "" {
		user.Bio = input.Bio
	}
	if input.Age != 0 {
		user.Age = input.Age
	}
	if input.Location != "" {
		user.Location = input.Location
	}
	if input.Interests != nil {
		user.Interests = input.Interests
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (uc *UserUseCase) UpdateAvatar(ctx context.Context, userID, avatarURL string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Avatar = avatarURL
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Search finds users by name prefix, hiding the caller and existing friends.
func (uc *UserUseCase) Search(ctx context.Context, userID, query string) ([]*entity.UserSummary, error) {
	if len(query) < 2 {
		return nil, errors.BadRequest("Search query must be at least 2 characters", nil)
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	users, err := uc.userRepo.Search(ctx, query, append([]string{userID}, user.Friends...), searchLimit)
	if err != nil {
		return nil, err
	}

	return summaries(users), nil
}

// RandomUsers lists discovery suggestions, excluding the caller and anyone
// already friended.
func (uc *UserUseCase) RandomUsers(ctx context.Context, userID string) ([]*entity.UserSummary, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	users, err := uc.userRepo.ListRandom(ctx, append([]string{userID}, user.Friends...), discoveryLimit)
	if err != nil {
		return nil, err
	}

	return summaries(users), nil
}

func summaries(users []*entity.User) []*entity.UserSummary {
	result := make([]*entity.UserSummary, 0, len(users))
	for _, user := range users {
		result = append(result, user.Summary())
	}
	return result
}
