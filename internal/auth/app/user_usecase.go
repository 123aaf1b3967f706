package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"gonotes/internal/auth/domain/entities"
	"gonotes/internal/auth/ports/api"
	"gonotes/internal/auth/ports/repositories"
	"gonotes/pkg/logger"
)

const (
	methodGetCurrentUser = "GetCurrentUser"

	msgRequestingUser      = "requesting current user"
	msgEmptyUserIDProvided = "empty user ID provided"
	msgUserMissing         = "user from token no longer exists"
	msgUserRetrieved       = "current user retrieved"

	msgErrFindingUserByID = "failed to find user by ID"

	errCtxValidatingUserID = "validating user ID"
	errCtxFetchingUser     = "fetching current user"
)

// UserUseCaseImpl реализует api.UserUseCase.
type UserUseCaseImpl struct {
	userRepo repositories.UserRepository
}

// NewUserUseCase создает сервис пользователя.
func NewUserUseCase(userRepo repositories.UserRepository) api.UserUseCase {
	return &UserUseCaseImpl{
		userRepo: userRepo,
	}
}

// GetCurrentUser возвращает публичное представление пользователя по ID из токена.
func (u *UserUseCaseImpl) GetCurrentUser(ctx context.Context, userID string) (*entities.PublicUser, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetCurrentUser), zap.String("userID", userID))
	log.Debug(ctx, msgRequestingUser)

	if userID == "" {
		log.Debug(ctx, msgEmptyUserIDProvided)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingUserID, entities.ErrEmptyUserID)
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgUserMissing)
		} else {
			log.Error(ctx, msgErrFindingUserByID, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxFetchingUser, err)
	}

	log.Debug(ctx, msgUserRetrieved)
	public := user.Public()
	return &public, nil
}
