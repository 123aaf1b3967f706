package session

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"gonotes/internal/gateway/app/dto"
	"gonotes/pkg/logger"
)

// Ключи записей сессии.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

const (
	methodRestore = "Restore"
	methodSave    = "Save"
	methodClear   = "Clear"

	msgRestored       = "session restored"
	msgSaved          = "session saved"
	msgNoSession      = "no stored session"
	msgRestoreFailed  = "stored session rejected, clearing"
	errCtxEncodeUser  = "encoding user"
	errCtxClearFailed = "clearing session"
)

// Authenticator проверяет токен на сервере.
type Authenticator interface {
	SetToken(token string)
	Me(ctx context.Context) (*dto.UserResponse, error)
}

// Session управляет сохраненной аутентификацией клиента.
type Session struct {
	store *Store
	auth  Authenticator
	user  *dto.UserResponse
}

// New создает сессию поверх хранилища и клиента API.
func New(store *Store, auth Authenticator) *Session {
	return &Session{store: store, auth: auth}
}

// User возвращает текущего пользователя или nil.
func (s *Session) User() *dto.UserResponse {
	return s.user
}

// Restore загружает сохраненный токен и проверяет его запросом /api/auth/me.
// Если сервер отклонил токен, обе записи удаляются и возвращается nil без ошибки.
func (s *Session) Restore(ctx context.Context) (*dto.UserResponse, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRestore))

	token, ok, err := s.store.Get(ctx, KeyToken)
	if err != nil {
		return nil, err
	}
	if !ok || token == "" {
		log.Debug(ctx, msgNoSession)
		return nil, nil
	}

	s.auth.SetToken(token)
	user, err := s.auth.Me(ctx)
	if err != nil {
		log.Debug(ctx, msgRestoreFailed, zap.Error(err))
		if clearErr := s.Clear(ctx); clearErr != nil {
			return nil, clearErr
		}
		return nil, nil
	}

	if err := s.writeUser(ctx, *user); err != nil {
		return nil, err
	}
	s.user = user

	log.Debug(ctx, msgRestored, zap.String("user_id", user.ID))
	return user, nil
}

// Save сохраняет результат входа или регистрации.
func (s *Session) Save(ctx context.Context, resp *dto.AuthResponse) error {
	log := logger.Log(ctx).With(zap.String("method", methodSave))

	if err := s.store.Set(ctx, KeyToken, resp.Token); err != nil {
		return err
	}
	if err := s.writeUser(ctx, resp.User); err != nil {
		return err
	}

	s.auth.SetToken(resp.Token)
	user := resp.User
	s.user = &user

	log.Debug(ctx, msgSaved, zap.String("user_id", user.ID))
	return nil
}

// Clear удаляет токен и пользователя.
func (s *Session) Clear(ctx context.Context) error {
	log := logger.Log(ctx).With(zap.String("method", methodClear))

	s.auth.SetToken("")
	s.user = nil

	if err := s.store.Delete(ctx, KeyToken, KeyUser); err != nil {
		log.Error(ctx, errCtxClearFailed, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxClearFailed, err)
	}
	return nil
}

func (s *Session) writeUser(ctx context.Context, user dto.UserResponse) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxEncodeUser, err)
	}
	return s.store.Set(ctx, KeyUser, string(raw))
}
