// Package api описывает входной порт сервиса заметок.
package api

import (
	"context"

	"gonotes/internal/notes/domain/entities"
)

// NoteUseCase - операции над заметками.
type NoteUseCase interface {
	List(ctx context.Context, userID string) ([]*entities.Note, error)
	GetByID(ctx context.Context, id string) (*entities.Note, error)
	Create(ctx context.Context, input entities.NoteInput) (*entities.Note, error)
	Update(ctx context.Context, id string, patch entities.NotePatch) (*entities.Note, error)
	Delete(ctx context.Context, id string) error
	ToggleArchive(ctx context.Context, id string) (*entities.Note, error)
}
