package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"gonotes/internal/auth/domain/services"
	svc "gonotes/internal/auth/ports/services"
	"gonotes/pkg/logger"
)

const (
	methodIssue  = "Issue"
	methodVerify = "Verify"

	msgIssuingToken    = "issuing token"
	msgVerifyingToken  = "verifying token"
	msgTokenIssued     = "token issued"
	msgTokenVerified   = "token verified"
	msgTokenExpired    = "token has expired"
	msgInvalidToken    = "invalid token"
	msgEmptySecret     = "empty secret key provided"
	msgEmptyUserClaim  = "userId claim is empty"
	errSigningToken    = "error signing token" //nolint:gosec
	errCtxIssuingToken = "issuing token"
	errCtxVerifyToken  = "verifying token"
)

// Claims - формат полезной нагрузки токена: {userId, iat, exp}.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// Option настраивает ServiceJWT.
type Option func(*ServiceJWT)

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(s *ServiceJWT) {
		if now != nil {
			s.now = now
		}
	}
}

// ServiceJWT реализует TokenService на HS256.
type ServiceJWT struct {
	config services.JWTConfig
	now    func() time.Time
}

// NewJWT создает сервис токенов.
func NewJWT(secretKey string, tokenTTL time.Duration, opts ...Option) svc.TokenService {
	s := &ServiceJWT{
		config: services.JWTConfig{
			SecretKey: []byte(secretKey),
			TokenTTL:  tokenTTL,
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func domainToJWTClaims(claims services.JWTClaims) Claims {
	return Claims{
		UserID: claims.UserID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
		},
	}
}

// Issue подписывает токен для userID.
func (s *ServiceJWT) Issue(ctx context.Context, userID string) (string, time.Time, error) {
	log := logger.Log(ctx).With(zap.String("method", methodIssue), zap.String("userID", userID))
	log.Debug(ctx, msgIssuingToken)

	if len(s.config.SecretKey) == 0 {
		log.Error(ctx, msgEmptySecret)
		return "", time.Time{}, fmt.Errorf("%s: %w: empty secret key", errCtxIssuingToken, services.ErrGeneratingJWTToken)
	}

	now := s.now()
	expiresAt := now.Add(s.config.TokenTTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, domainToJWTClaims(services.JWTClaims{
		UserID:    userID,
		IssuedAt:  now,
		ExpiresAt: expiresAt,
	}))

	signed, err := token.SignedString(s.config.SecretKey)
	if err != nil {
		log.Error(ctx, errSigningToken, zap.Error(err))
		return "", time.Time{}, fmt.Errorf("%s: %w: %w", errCtxIssuingToken, services.ErrGeneratingJWTToken, err)
	}

	log.Debug(ctx, msgTokenIssued, zap.Time("expiresAt", expiresAt))
	return signed, expiresAt, nil
}

// Verify проверяет подпись, алгоритм и срок действия токена.
// Любая проблема сводится к services.ErrInvalidToken.
func (s *ServiceJWT) Verify(ctx context.Context, tokenString string) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", methodVerify))
	log.Debug(ctx, msgVerifyingToken)

	if len(s.config.SecretKey) == 0 {
		log.Error(ctx, msgEmptySecret)
		return "", fmt.Errorf("%s: %w", errCtxVerifyToken, services.ErrInvalidToken)
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (interface{}, error) { return s.config.SecretKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug(ctx, msgTokenExpired)
		} else {
			log.Debug(ctx, msgInvalidToken, zap.Error(err))
		}
		return "", fmt.Errorf("%s: %w: %w", errCtxVerifyToken, services.ErrInvalidToken, err)
	}

	if claims.UserID == "" {
		log.Debug(ctx, msgEmptyUserClaim)
		return "", fmt.Errorf("%s: %w", errCtxVerifyToken, services.ErrInvalidToken)
	}

	log.Debug(ctx, msgTokenVerified, zap.String("userID", claims.UserID))
	return claims.UserID, nil
}
