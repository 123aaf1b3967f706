// Package cache содержит кэш списков заметок на Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"gonotes/internal/notes/domain/entities"
	"gonotes/internal/notes/ports/cache"
	"gonotes/pkg/logger"
)

// Константы для логирования.
const (
	LogMethodGet        = "get"
	LogMethodGeneration = "generation"
	LogMethodSet        = "set"
	LogMethodInvalidate = "invalidate"

	LogStaleSnapshot = "notes list changed while loading, cache fill skipped"

	ErrorFailedToGet           = "failed to get notes list from redis"
	ErrorFailedToGetGeneration = "failed to get notes list generation from redis"
	ErrorFailedToDecode        = "failed to decode cached notes list"
	ErrorFailedToEncode        = "failed to encode notes list"
	ErrorFailedToSet           = "failed to set notes list in redis"
	ErrorFailedToDelete        = "failed to delete notes list from redis"

	keyPrefix    = "notes:user:"
	genKeyPrefix = "notes:gen:"
	DefaultTTL   = 5 * time.Minute
)

var errStaleGeneration = errors.New("notes list generation changed")

// RedisNoteCache хранит JSON-список заметок пользователя под ключом notes:user:<id>
// и счетчик поколения под ключом notes:gen:<id>.
type RedisNoteCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisNoteCache создает кэш. Нулевой ttl заменяется на DefaultTTL.
func NewRedisNoteCache(client redis.UniversalClient, ttl time.Duration) cache.NoteListCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisNoteCache{client: client, ttl: ttl}
}

// Key возвращает ключ списка заметок пользователя.
func Key(userID string) string {
	return keyPrefix + userID
}

// GenKey возвращает ключ счетчика поколения списка пользователя.
func GenKey(userID string) string {
	return genKeyPrefix + userID
}

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readGeneration(ctx context.Context, client stringGetter, userID string) (int64, error) {
	gen, err := client.Get(ctx, GenKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Get возвращает закэшированный список. Сбой Redis трактуется как промах.
func (c *RedisNoteCache) Get(ctx context.Context, userID string) ([]*entities.Note, bool) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodGet), zap.String("userID", userID))

	raw, err := c.client.Get(ctx, Key(userID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn(ctx, ErrorFailedToGet, zap.Error(err))
		}
		return nil, false
	}

	var notes []*entities.Note
	if err := json.Unmarshal(raw, &notes); err != nil {
		log.Warn(ctx, ErrorFailedToDecode, zap.Error(err))
		return nil, false
	}
	if notes == nil {
		notes = []*entities.Note{}
	}

	return notes, true
}

// Generation возвращает текущее поколение списка. false означает, что Redis недоступен
// и заполнять кэш не нужно.
func (c *RedisNoteCache) Generation(ctx context.Context, userID string) (int64, bool) {
	gen, err := readGeneration(ctx, c.client, userID)
	if err != nil {
		logger.Log(ctx).Warn(ctx, ErrorFailedToGetGeneration,
			zap.String("method", LogMethodGeneration), zap.String("userID", userID), zap.Error(err))
		return 0, false
	}
	return gen, true
}

// Set сохраняет список с TTL, только если поколение не изменилось с момента чтения.
func (c *RedisNoteCache) Set(ctx context.Context, userID string, generation int64, notes []*entities.Note) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodSet), zap.String("userID", userID))

	raw, err := json.Marshal(notes)
	if err != nil {
		log.Warn(ctx, ErrorFailedToEncode, zap.Error(err))
		return
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readGeneration(ctx, tx, userID)
		if err != nil {
			return err
		}
		if current != generation {
			return errStaleGeneration
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, Key(userID), raw, c.ttl)
			return nil
		})
		return err
	}, GenKey(userID))

	switch {
	case err == nil:
	case errors.Is(err, errStaleGeneration), errors.Is(err, redis.TxFailedErr):
		log.Debug(ctx, LogStaleSnapshot, zap.Int64("generation", generation))
	default:
		log.Warn(ctx, ErrorFailedToSet, zap.Error(err))
	}
}

// Invalidate удаляет списки перечисленных пользователей и увеличивает их поколения.
func (c *RedisNoteCache) Invalidate(ctx context.Context, userIDs ...string) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodInvalidate))

	ids := make([]string, 0, len(userIDs))
	keys := make([]string, 0, len(userIDs))
	seen := make(map[string]struct{}, len(userIDs))
	for _, id := range userIDs {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
		keys = append(keys, Key(id))
	}
	if len(keys) == 0 {
		return
	}

	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range ids {
			pipe.Incr(ctx, GenKey(id))
		}
		pipe.Del(ctx, keys...)
		return nil
	})
	if err != nil {
		log.Warn(ctx, ErrorFailedToDelete, zap.Error(err), zap.Strings("keys", keys))
	}
}
