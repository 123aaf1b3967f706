package cache

import (
	"context"

	"gonotes/internal/notes/domain/entities"
	"gonotes/internal/notes/ports/cache"
)

// NoopNoteCache используется, когда Redis выключен.
type NoopNoteCache struct{}

// NewNoopNoteCache создает пустой кэш.
func NewNoopNoteCache() cache.NoteListCache {
	return NoopNoteCache{}
}

// Get всегда возвращает промах.
func (NoopNoteCache) Get(context.Context, string) ([]*entities.Note, bool) {
	return nil, false
}

// Generation сообщает, что заполнять кэш не нужно.
func (NoopNoteCache) Generation(context.Context, string) (int64, bool) {
	return 0, false
}

// Set ничего не делает.
func (NoopNoteCache) Set(context.Context, string, int64, []*entities.Note) {}

// Invalidate ничего не делает.
func (NoopNoteCache) Invalidate(context.Context, ...string) {}
