// Package app содержит сценарии аутентификации: регистрацию, вход и получение текущего пользователя.
package app

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"

	"gonotes/internal/auth/domain/entities"
	"gonotes/internal/auth/domain/services"
	"gonotes/internal/auth/ports/api"
	"gonotes/internal/auth/ports/repositories"
	svc "gonotes/internal/auth/ports/services"
	"gonotes/pkg/logger"
)

const (
	methodRegister = "Register"
	methodLogin    = "Login"

	msgStartRegistration   = "starting user registration"
	msgMissingCredentials  = "email or password missing"
	msgPasswordTooShort    = "password too short"
	msgEmailExists         = "user with this email already exists"
	msgUserRegistered      = "user registered successfully"
	msgLoginAttempt        = "login attempt"
	msgLoginNonExistent    = "login attempt with non-existent email"
	msgInvalidPasswordAuth = "invalid password provided"
	msgUserLoggedIn        = "user logged in successfully"

	msgErrCheckExistingUser = "failed to check existing user"
	msgErrHashPassword      = "failed to hash password"
	msgErrCreateUser        = "failed to create user"
	msgErrIssueToken        = "failed to issue token"
	msgErrFindingUser       = "error finding user by email"
	msgErrVerifyingPassword = "error verifying password"

	errCtxValidatingCredentials = "validating credentials"
	errCtxValidatingPassword    = "validating password"
	errCtxCheckingUser          = "checking existing user"
	errCtxEmailRegistered       = "email already registered"
	errCtxHashingPassword       = "hashing password"
	errCtxCreatingUser          = "creating user"
	errCtxIssuingToken          = "issuing token"
	errCtxInvalidCredentials    = "invalid credentials"
	errCtxFindingUser           = "finding user"
	errCtxVerifyingPassword     = "verifying password"
)

// AuthUseCaseImpl реализует api.AuthUseCase.
type AuthUseCaseImpl struct {
	userRepo    repositories.UserRepository
	passwordSvc svc.PasswordService
	tokenSvc    svc.TokenService
}

// NewAuthUseCase создает сервис аутентификации.
func NewAuthUseCase(
	userRepo repositories.UserRepository,
	passwordSvc svc.PasswordService,
	tokenSvc svc.TokenService,
) api.AuthUseCase {
	return &AuthUseCaseImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
	}
}

// Register создает учетную запись и сразу выпускает токен.
func (a *AuthUseCaseImpl) Register(ctx context.Context, email, password string) (*services.AuthResult, error) {
	email = entities.NormalizeEmail(email)

	log := logger.Log(ctx).With(zap.String("method", methodRegister), zap.String("email", email))
	log.Debug(ctx, msgStartRegistration)

	if email == "" || password == "" {
		log.Debug(ctx, msgMissingCredentials)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingCredentials, entities.ErrCredentialsRequired)
	}
	if utf8.RuneCountInString(password) < entities.MinPasswordLength {
		log.Debug(ctx, msgPasswordTooShort)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingPassword, entities.ErrPasswordTooShort)
	}

	existingUser, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, entities.ErrUserNotFound) {
		log.Error(ctx, msgErrCheckExistingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingUser, err)
	}
	if existingUser != nil {
		log.Debug(ctx, msgEmailExists)
		return nil, fmt.Errorf("%s: %w", errCtxEmailRegistered, services.ErrEmailAlreadyExists)
	}

	hashedPassword, err := a.passwordSvc.Hash(ctx, password)
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	createdUser, err := a.userRepo.Create(ctx, &entities.User{
		Email:        email,
		PasswordHash: hashedPassword,
	})
	if err != nil {
		if errors.Is(err, services.ErrEmailAlreadyExists) {
			log.Debug(ctx, msgEmailExists)
		} else {
			log.Error(ctx, msgErrCreateUser, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserRegistered, zap.String("userID", createdUser.ID))

	return a.issue(ctx, log, createdUser)
}

// Login проверяет учетные данные. Неизвестный email и неверный пароль
// дают одну и ту же ошибку services.ErrInvalidCredentials.
func (a *AuthUseCaseImpl) Login(ctx context.Context, email, password string) (*services.AuthResult, error) {
	email = entities.NormalizeEmail(email)

	log := logger.Log(ctx).With(zap.String("method", methodLogin), zap.String("email", email))
	log.Debug(ctx, msgLoginAttempt)

	if email == "" || password == "" {
		log.Debug(ctx, msgMissingCredentials)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingCredentials, entities.ErrCredentialsRequired)
	}

	user, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgLoginNonExistent)
			return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	valid, err := a.passwordSvc.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		log.Error(ctx, msgErrVerifyingPassword, zap.Error(err), zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !valid {
		log.Debug(ctx, msgInvalidPasswordAuth, zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
	}

	log.Info(ctx, msgUserLoggedIn, zap.String("userID", user.ID))

	return a.issue(ctx, log, user)
}

func (a *AuthUseCaseImpl) issue(ctx context.Context, log *logger.Logger, user *entities.User) (*services.AuthResult, error) {
	token, expiresAt, err := a.tokenSvc.Issue(ctx, user.ID)
	if err != nil {
		log.Error(ctx, msgErrIssueToken, zap.Error(err), zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxIssuingToken, err)
	}

	return &services.AuthResult{
		User:      user.Public(),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}
