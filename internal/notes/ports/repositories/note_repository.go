// Package repositories описывает порты хранения заметок.
package repositories

import (
	"context"
	"time"

	"gonotes/internal/notes/domain/entities"
)

// NoteRepository хранит заметки. Отсутствующая заметка дает entities.ErrNoteNotFound.
type NoteRepository interface {
	Create(ctx context.Context, note *entities.Note) (*entities.Note, error)
	GetByID(ctx context.Context, id string) (*entities.Note, error)
	// ListByUser возвращает заметки пользователя, последние измененные первыми.
	ListByUser(ctx context.Context, userID string) ([]*entities.Note, error)
	Update(ctx context.Context, note *entities.Note) (*entities.Note, error)
	Delete(ctx context.Context, id string) error
	// ToggleArchive атомарно инвертирует признак архива и выставляет lastEdited.
	ToggleArchive(ctx context.Context, id string, at time.Time) (*entities.Note, error)
}
