// Package app реализует сценарии работы с заметками.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"gonotes/internal/notes/domain/entities"
	"gonotes/internal/notes/ports/api"
	"gonotes/internal/notes/ports/cache"
	"gonotes/internal/notes/ports/repositories"
	"gonotes/pkg/apperror"
	"gonotes/pkg/logger"
)

const (
	methodList          = "List"
	methodGetByID       = "GetByID"
	methodCreate        = "Create"
	methodUpdate        = "Update"
	methodDelete        = "Delete"
	methodToggleArchive = "ToggleArchive"

	msgListCacheHit     = "notes list served from cache"
	msgNotesListed      = "notes listed"
	msgNoteNotFound     = "note not found"
	msgValidationFailed = "note validation failed"
	msgNoteCreated      = "note created"
	msgNoteUpdated      = "note updated"
	msgNoteDeleted      = "note deleted"
	msgNoteToggled      = "note archive flag toggled"

	msgErrListNotes  = "failed to list notes"
	msgErrGetNote    = "failed to get note"
	msgErrCreateNote = "failed to create note"
	msgErrUpdateNote = "failed to update note"
	msgErrDeleteNote = "failed to delete note"
	msgErrToggleNote = "failed to toggle archive flag"

	errCtxValidatingUserID = "validating user ID"
	errCtxListingNotes     = "listing notes"
	errCtxGettingNote      = "getting note"
	errCtxValidatingNote   = "validating note"
	errCtxCreatingNote     = "creating note"
	errCtxUpdatingNote     = "updating note"
	errCtxDeletingNote     = "deleting note"
	errCtxTogglingArchive  = "toggling archive"
)

// Option настраивает NoteUseCaseImpl.
type Option func(*NoteUseCaseImpl)

// WithClock подменяет источник времени для lastEdited.
func WithClock(now func() time.Time) Option {
	return func(uc *NoteUseCaseImpl) {
		if now != nil {
			uc.now = now
		}
	}
}

// WithCache включает кэш списков заметок.
func WithCache(listCache cache.NoteListCache) Option {
	return func(uc *NoteUseCaseImpl) {
		uc.cache = listCache
	}
}

// NoteUseCaseImpl реализует api.NoteUseCase.
type NoteUseCaseImpl struct {
	noteRepo repositories.NoteRepository
	cache    cache.NoteListCache
	now      func() time.Time
}

// NewNoteUseCase создает сервис заметок.
func NewNoteUseCase(noteRepo repositories.NoteRepository, opts ...Option) api.NoteUseCase {
	uc := &NoteUseCaseImpl{
		noteRepo: noteRepo,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// List возвращает заметки пользователя, последние измененные первыми.
func (uc *NoteUseCaseImpl) List(ctx context.Context, userID string) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", methodList), zap.String("userID", userID))

	if userID == "" {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingUserID, entities.ErrUserIDRequired)
	}

	var (
		generation int64
		fillCache  bool
	)
	if uc.cache != nil {
		if notes, ok := uc.cache.Get(ctx, userID); ok {
			log.Debug(ctx, msgListCacheHit, zap.Int("count", len(notes)))
			return notes, nil
		}
		generation, fillCache = uc.cache.Generation(ctx, userID)
	}

	notes, err := uc.noteRepo.ListByUser(ctx, userID)
	if err != nil {
		log.Error(ctx, msgErrListNotes, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingNotes, err)
	}
	if notes == nil {
		notes = []*entities.Note{}
	}

	if fillCache {
		uc.cache.Set(ctx, userID, generation, notes)
	}

	log.Debug(ctx, msgNotesListed, zap.Int("count", len(notes)))
	return notes, nil
}

// GetByID возвращает заметку без проверки владельца.
func (uc *NoteUseCaseImpl) GetByID(ctx context.Context, id string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetByID), zap.String("noteID", id))

	note, err := uc.noteRepo.GetByID(ctx, id)
	if err != nil {
		uc.logLookupError(ctx, log, msgErrGetNote, err)
		return nil, fmt.Errorf("%s: %w", errCtxGettingNote, err)
	}
	return note, nil
}

// Create проверяет и сохраняет новую заметку. lastEdited всегда выставляется сервером.
func (uc *NoteUseCaseImpl) Create(ctx context.Context, input entities.NoteInput) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreate), zap.String("userID", input.UserID))

	note := entities.NewNote(input, uc.now())
	if fields := entities.ValidateNote(note); len(fields) > 0 {
		log.Debug(ctx, msgValidationFailed, zap.Int("fields", len(fields)))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingNote, entities.NewValidationError(fields))
	}

	created, err := uc.noteRepo.Create(ctx, note)
	if err != nil {
		log.Error(ctx, msgErrCreateNote, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingNote, err)
	}

	uc.invalidate(ctx, created.UserID)

	log.Info(ctx, msgNoteCreated, zap.String("noteID", created.ID))
	return created, nil
}

// Update применяет частичное обновление к заметке.
func (uc *NoteUseCaseImpl) Update(ctx context.Context, id string, patch entities.NotePatch) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdate), zap.String("noteID", id))

	note, err := uc.noteRepo.GetByID(ctx, id)
	if err != nil {
		uc.logLookupError(ctx, log, msgErrGetNote, err)
		return nil, fmt.Errorf("%s: %w", errCtxGettingNote, err)
	}

	previousOwner := note.UserID
	note.Apply(patch, uc.now())

	if fields := entities.ValidateNote(note); len(fields) > 0 {
		log.Debug(ctx, msgValidationFailed, zap.Int("fields", len(fields)))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingNote, entities.NewValidationError(fields))
	}

	updated, err := uc.noteRepo.Update(ctx, note)
	if err != nil {
		uc.logLookupError(ctx, log, msgErrUpdateNote, err)
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingNote, err)
	}

	uc.invalidate(ctx, previousOwner, updated.UserID)

	log.Info(ctx, msgNoteUpdated)
	return updated, nil
}

// Delete безвозвратно удаляет заметку.
func (uc *NoteUseCaseImpl) Delete(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("method", methodDelete), zap.String("noteID", id))

	note, err := uc.noteRepo.GetByID(ctx, id)
	if err != nil {
		uc.logLookupError(ctx, log, msgErrGetNote, err)
		return fmt.Errorf("%s: %w", errCtxGettingNote, err)
	}

	if err := uc.noteRepo.Delete(ctx, id); err != nil {
		uc.logLookupError(ctx, log, msgErrDeleteNote, err)
		return fmt.Errorf("%s: %w", errCtxDeletingNote, err)
	}

	uc.invalidate(ctx, note.UserID)

	log.Info(ctx, msgNoteDeleted)
	return nil
}

// ToggleArchive инвертирует признак архива и обновляет lastEdited.
func (uc *NoteUseCaseImpl) ToggleArchive(ctx context.Context, id string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", methodToggleArchive), zap.String("noteID", id))

	note, err := uc.noteRepo.ToggleArchive(ctx, id, uc.now())
	if err != nil {
		uc.logLookupError(ctx, log, msgErrToggleNote, err)
		return nil, fmt.Errorf("%s: %w", errCtxTogglingArchive, err)
	}

	uc.invalidate(ctx, note.UserID)

	log.Info(ctx, msgNoteToggled, zap.Bool("isArchived", note.IsArchived))
	return note, nil
}

func (uc *NoteUseCaseImpl) logLookupError(ctx context.Context, log *logger.Logger, msg string, err error) {
	if apperror.Is(err, apperror.NotFound) {
		log.Debug(ctx, msgNoteNotFound)
		return
	}
	log.Error(ctx, msg, zap.Error(err))
}

func (uc *NoteUseCaseImpl) invalidate(ctx context.Context, userIDs ...string) {
	if uc.cache == nil {
		return
	}
	uc.cache.Invalidate(ctx, userIDs...)
}
