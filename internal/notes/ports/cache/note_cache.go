// Package cache описывает порт кэша списков заметок.
package cache

import (
	"context"

	"gonotes/internal/notes/domain/entities"
)

// NoteListCache кэширует список заметок пользователя.
// Ошибки кэша не возвращаются: промах и сбой для вызывающего неразличимы.
//
// Generation читается до загрузки списка из хранилища и передается в Set.
// Invalidate меняет поколение, поэтому Set со снимком, прочитанным до записи, не сохраняется.
type NoteListCache interface {
	Get(ctx context.Context, userID string) ([]*entities.Note, bool)
	Generation(ctx context.Context, userID string) (int64, bool)
	Set(ctx context.Context, userID string, generation int64, notes []*entities.Note)
	Invalidate(ctx context.Context, userIDs ...string)
}
