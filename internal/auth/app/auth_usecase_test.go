package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gonotes/internal/auth/app"
	"gonotes/internal/auth/domain/entities"
	"gonotes/internal/auth/domain/services"
	"gonotes/pkg/apperror"
)

func TestRegister(t *testing.T) {
	testEmail := "ada@example.com"
	testPassword := "secret1"
	hashedPassword := "hashed_password"
	generatedUserID := "5b7cb1b3-1d4c-4b88-a0f6-0e7c1f7c9a10"
	token := "signed-token"
	expiresAt := time.Date(2024, 11, 5, 12, 0, 0, 0, time.UTC)

	createdUser := &entities.User{
		ID:           generatedUserID,
		Email:        testEmail,
		PasswordHash: hashedPassword,
	}

	tests := []struct {
		name         string
		email        string
		password     string
		setupMocks   func(userRepo *mockUserRepository, passwordSvc *mockPasswordService, tokenSvc *mockTokenService)
		expectedErr  error
		expectedKind apperror.Kind
		errorContext string
	}{
		{
			name:     "Success - user registered",
			email:    testEmail,
			password: testPassword,
			setupMocks: func(userRepo *mockUserRepository, passwordSvc *mockPasswordService, tokenSvc *mockTokenService) {
				userRepo.On("FindByEmail", mock.Anything, testEmail).Return(nil, entities.ErrUserNotFound).Once()
				passwordSvc.On("Hash", mock.Anything, testPassword).Return(hashedPassword, nil).Once()
				userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
					return u.Email == testEmail && u.PasswordHash == hashedPassword
				})).Return(createdUser, nil).Once()
				tokenSvc.On("Issue", mock.Anything, generatedUserID).Return(token, expiresAt, nil).Once()
			},
		},
		{
			name:     "Success - email normalized before storing",
			email:    "  Ada@Example.COM ",
			password: testPassword,
			setupMocks: func(userRepo *mockUserRepository, passwordSvc *mockPasswordService, tokenSvc *mockTokenService) {
				userRepo.On("FindByEmail", mock.Anything, testEmail).Return(nil, entities.ErrUserNotFound).Once()
				passwordSvc.On("Hash", mock.Anything, testPassword).Return(hashedPassword, nil).Once()
				userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
					return u.Email == testEmail
				})).Return(createdUser, nil).Once()
				tokenSvc.On("Issue", mock.Anything, generatedUserID).Return(token, expiresAt, nil).Once()
			},
		},
		{
			name:         "Error - empty email",
			email:        "",
			password:     testPassword,
			setupMocks:   func(*mockUserRepository, *mockPasswordService, *mockTokenService) {},
			expectedErr:  entities.ErrCredentialsRequired,
			expectedKind: apperror.Validation,
			errorContext: "validating credentials",
		},
		{
			name:         "Error - empty password",
			email:        testEmail,
			password:     "",
			setupMocks:   func(*mockUserRepository, *mockPasswordService, *mockTokenService) {},
			expectedErr:  entities.ErrCredentialsRequired,
			expectedKind: apperror.Validation,
			errorContext: "validating credentials",
		},
		{
			name:         "Error - password of five characters",
			email:        testEmail,
			password:     "12345",
			setupMocks:   func(*mockUserRepository, *mockPasswordService, *mockTokenService) {},
			expectedErr:  entities.ErrPasswordTooShort,
			expectedKind: apperror.Validation,
			errorContext: "validating password",
		},
		{
			name:         "Error - пароль из пяти многобайтных символов",
			email:        testEmail,
			password:     "пароль"[:10],
			setupMocks:   func(*mockUserRepository, *mockPasswordService, *mockTokenService) {},
			expectedErr:  entities.ErrPasswordTooShort,
			expectedKind: apperror.Validation,
			errorContext: "validating password",
		},
		{
			name:     "Error - user already exists",
			email:    testEmail,
			password: testPassword,
			setupMocks: func(userRepo *mockUserRepository, passwordSvc *mockPasswordService, tokenSvc *mockTokenService) {
				userRepo.On("FindByEmail", mock.Anything, testEmail).Return(createdUser, nil).Once()
			},
			expectedErr:  services.ErrEmailAlreadyExists,
			expectedKind: apperror.DuplicateEmail,
			errorContext: "email already registered",
		},
		{
			name:     "Error - email exists with different case",
			email:    "ADA@example.com",
			password: testPassword,
			setupMocks: func(userRepo *mockUserRepository, passwordSvc *mockPasswordService, tokenSvc *mockTokenService) {
				userRepo.On("FindByEmail", mock.Anything, testEmail).Return(createdUser, nil).Once()
			},
			expectedErr:  services.ErrEmailAlreadyExists,
			expectedKind: apperror.DuplicateEmail,
			errorContext: "email already registered",
		},
		{
			name:     "Error - concurrent insert hits unique constraint",
			email:    testEmail,
			password: testPassword,
			setupMocks: func(userRepo *mockUserRepository, passwordSvc *mockPasswordService, tokenSvc *mockTokenService) {
				userRepo.On("FindByEmail", mock.Anything, testEmail).Return(nil, entities.ErrUserNotFound).Once()
				passwordSvc.On("Hash", mock.Anything, testPassword).Return(hashedPassword, nil).Once()
				userRepo.On("Create", mock.Anything, mock.Anything).Return(nil, services.ErrEmailAlreadyExists).Once()
			},
			expectedErr:  services.ErrEmailAlreadyExists,
			expectedKind: apperror.DuplicateEmail,
			errorContext: "creating user",
		},
		{
			name:     "Error - database error during user check",
			email:    testEmail,
			password: testPassword,
			setupMocks: func(userRepo *mockUserRepository, passwordSvc *mockPasswordService, tokenSvc *mockTokenService) {
				userRepo.On("FindByEmail", mock.Anything, testEmail).Return(nil, errors.New("database error")).Once()
			},
			expectedKind: apperror.Internal,
			errorContext: "checking existing user",
		},
		{
			name:     "Error - password hashing failure",
			email:    testEmail,
			password: testPassword,
			setupMocks: func(userRepo *mockUserRepository, passwordSvc *mockPasswordService, tokenSvc *mockTokenService) {
				userRepo.On("FindByEmail", mock.Anything, testEmail).Return(nil, entities.ErrUserNotFound).Once()
				passwordSvc.On("Hash", mock.Anything, testPassword).Return("", errors.New("hashing error")).Once()
			},
			expectedKind: apperror.Internal,
			errorContext: "hashing password",
		},
		{
			name:     "Error - token issue failure",
			email:    testEmail,
			password: testPassword,
			setupMocks: func(userRepo *mockUserRepository, passwordSvc *mockPasswordService, tokenSvc *mockTokenService) {
				userRepo.On("FindByEmail", mock.Anything, testEmail).Return(nil, entities.ErrUserNotFound).Once()
				passwordSvc.On("Hash", mock.Anything, testPassword).Return(hashedPassword, nil).Once()
				userRepo.On("Create", mock.Anything, mock.Anything).Return(createdUser, nil).Once()
				tokenSvc.On("Issue", mock.Anything, generatedUserID).Return("", time.Time{}, services.ErrGeneratingJWTToken).Once()
			},
			expectedErr:  services.ErrGeneratingJWTToken,
			expectedKind: apperror.Internal,
			errorContext: "issuing token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(mockUserRepository)
			passwordSvc := new(mockPasswordService)
			tokenSvc := new(mockTokenService)

			tt.setupMocks(userRepo, passwordSvc, tokenSvc)

			authUseCase := app.NewAuthUseCase(userRepo, passwordSvc, tokenSvc)
			result, err := authUseCase.Register(context.Background(), tt.email, tt.password)

			if tt.errorContext != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContext)
				assert.Equal(t, tt.expectedKind, apperror.KindOf(err))
				if tt.expectedErr != nil {
					assert.ErrorIs(t, err, tt.expectedErr)
				}
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				require.NotNil(t, result)
				assert.Equal(t, generatedUserID, result.User.ID)
				assert.Equal(t, testEmail, result.User.Email)
				assert.Equal(t, token, result.Token)
				assert.Equal(t, expiresAt, result.ExpiresAt)
			}

			userRepo.AssertExpectations(t)
			passwordSvc.AssertExpectations(t)
			tokenSvc.AssertExpectations(t)
		})
	}
}

func TestLogin(t *testing.T) {
	testEmail := "ada@example.com"
	testPassword := "secret1"
	hashedPassword := "hashed_password"
	userID := "5b7cb1b3-1d4c-4b88-a0f6-0e7c1f7c9a10"
	token := "signed-token"
	expiresAt := time.Date(2024, 11, 5, 12, 0, 0, 0, time.UTC)

	storedUser := &entities.User{
		ID:           userID,
		Email:        testEmail,
		PasswordHash: hashedPassword,
	}

	tests := []struct {
		name         string
		email        string
		password     string
		setupMocks   func(userRepo *mockUserRepository, passwordSvc *mockPasswordService, tokenSvc *mockTokenService)
		expectedErr  error
		expectedKind apperror.Kind
		errorContext string
	}{
		{
			name:     "Success - login",
			email:    testEmail,
			password: testPassword,
			setupMocks: func(userRepo *mockUserRepository, passwordSvc *mockPasswordService, tokenSvc *mockTokenService) {
				userRepo.On("FindByEmail", mock.Anything, testEmail).Return(storedUser, nil).Once()
				passwordSvc.On("Verify", mock.Anything, testPassword, hashedPassword).Return(true, nil).Once()
				tokenSvc.On("Issue", mock.Anything, userID).Return(token, expiresAt, nil).Once()
			},
		},
		{
			name:     "Success - email case ignored",
			email:    " ADA@EXAMPLE.com",
			password: testPassword,
			setupMocks: func(userRepo *mockUserRepository, passwordSvc *mockPasswordService, tokenSvc *mockTokenService) {
				userRepo.On("FindByEmail", mock.Anything, testEmail).Return(storedUser, nil).Once()
				passwordSvc.On("Verify", mock.Anything, testPassword, hashedPassword).Return(true, nil).Once()
				tokenSvc.On("Issue", mock.Anything, userID).Return(token, expiresAt, nil).Once()
			},
		},
		{
			name:         "Error - missing credentials",
			email:        testEmail,
			password:     "",
			setupMocks:   func(*mockUserRepository, *mockPasswordService, *mockTokenService) {},
			expectedErr:  entities.ErrCredentialsRequired,
			expectedKind: apperror.Validation,
			errorContext: "validating credentials",
		},
		{
			name:     "Error - unknown email",
			email:    "ghost@example.com",
			password: testPassword,
			setupMocks: func(userRepo *mockUserRepository, passwordSvc *mockPasswordService, tokenSvc *mockTokenService) {
				userRepo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, entities.ErrUserNotFound).Once()
			},
			expectedErr:  services.ErrInvalidCredentials,
			expectedKind: apperror.InvalidCredentials,
			errorContext: "invalid credentials",
		},
		{
			name:     "Error - wrong password",
			email:    testEmail,
			password: "wrongpass",
			setupMocks: func(userRepo *mockUserRepository, passwordSvc *mockPasswordService, tokenSvc *mockTokenService) {
				userRepo.On("FindByEmail", mock.Anything, testEmail).Return(storedUser, nil).Once()
				passwordSvc.On("Verify", mock.Anything, "wrongpass", hashedPassword).Return(false, nil).Once()
			},
			expectedErr:  services.ErrInvalidCredentials,
			expectedKind: apperror.InvalidCredentials,
			errorContext: "invalid credentials",
		},
		{
			name:     "Error - database failure",
			email:    testEmail,
			password: testPassword,
			setupMocks: func(userRepo *mockUserRepository, passwordSvc *mockPasswordService, tokenSvc *mockTokenService) {
				userRepo.On("FindByEmail", mock.Anything, testEmail).Return(nil, errors.New("connection reset")).Once()
			},
			expectedKind: apperror.Internal,
			errorContext: "finding user",
		},
		{
			name:     "Error - corrupted hash",
			email:    testEmail,
			password: testPassword,
			setupMocks: func(userRepo *mockUserRepository, passwordSvc *mockPasswordService, tokenSvc *mockTokenService) {
				userRepo.On("FindByEmail", mock.Anything, testEmail).Return(storedUser, nil).Once()
				passwordSvc.On("Verify", mock.Anything, testPassword, hashedPassword).Return(false, services.ErrInvalidPassword).Once()
			},
			expectedErr:  services.ErrInvalidPassword,
			expectedKind: apperror.Internal,
			errorContext: "verifying password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(mockUserRepository)
			passwordSvc := new(mockPasswordService)
			tokenSvc := new(mockTokenService)

			tt.setupMocks(userRepo, passwordSvc, tokenSvc)

			authUseCase := app.NewAuthUseCase(userRepo, passwordSvc, tokenSvc)
			result, err := authUseCase.Login(context.Background(), tt.email, tt.password)

			if tt.errorContext != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContext)
				assert.Equal(t, tt.expectedKind, apperror.KindOf(err))
				if tt.expectedErr != nil {
					assert.ErrorIs(t, err, tt.expectedErr)
				}
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				require.NotNil(t, result)
				assert.Equal(t, userID, result.User.ID)
				assert.Equal(t, testEmail, result.User.Email)
				assert.Equal(t, token, result.Token)
			}

			userRepo.AssertExpectations(t)
			passwordSvc.AssertExpectations(t)
			tokenSvc.AssertExpectations(t)
		})
	}
}
