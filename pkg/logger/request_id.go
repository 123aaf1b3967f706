package logger

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// maxRequestIDLength ограничивает длину идентификатора, пришедшего от клиента.
const maxRequestIDLength = 64

type requestIDKeyType struct{}

var requestIDKey = requestIDKeyType{}

// NewRequestIDContext кладет идентификатор запроса в контекст.
// Пустой идентификатор заменяется сгенерированным.
func NewRequestIDContext(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		requestID = GenerateRequestID()
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID извлекает идентификатор запроса из контекста.
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok
}

// GenerateRequestID генерирует новый идентификатор запроса.
func GenerateRequestID() string {
	return uuid.New().String()
}

// NormalizeRequestID возвращает входящий идентификатор, если он пригоден для логов,
// иначе генерирует новый.
func NormalizeRequestID(candidate string) string {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" || len(candidate) > maxRequestIDLength {
		return GenerateRequestID()
	}
	for _, r := range candidate {
		if r < 0x21 || r > 0x7e {
			return GenerateRequestID()
		}
	}
	return candidate
}
