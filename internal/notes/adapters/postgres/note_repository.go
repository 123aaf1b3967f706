// Package postgres содержит реализацию хранилища заметок на PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"gonotes/internal/notes/domain/entities"
	"gonotes/internal/notes/ports/repositories"
	"gonotes/pkg/logger"
)

const noteColumns = `id, user_id, title, content, tags, is_archived, COALESCE(color, ''), last_edited, created_at, updated_at`

// PgxPoolInterface - подмножество pgxpool.Pool, нужное репозиторию.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
}

// NoteRepository реализует repositories.NoteRepository.
type NoteRepository struct {
	pool PgxPoolInterface
}

// NewNoteRepository создает репозиторий заметок.
func NewNoteRepository(pool PgxPoolInterface) repositories.NoteRepository {
	return &NoteRepository{pool: pool}
}

// Create сохраняет новую заметку и возвращает ее вместе с ID.
func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "Create"))
	log.Debug(ctx, "creating note", zap.String("userID", note.UserID))

	query := `
        INSERT INTO notes (user_id, title, content, tags, is_archived, color, last_edited)
        VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7)
        RETURNING ` + noteColumns

	created, err := scanNote(r.pool.QueryRow(ctx, query,
		note.UserID, note.Title, note.Content, tagsOrEmpty(note.Tags), note.IsArchived, note.Color, note.LastEdited))
	if err != nil {
		log.Error(ctx, "failed to create note", zap.Error(err))
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	log.Debug(ctx, "note created", zap.String("noteID", created.ID))
	return created, nil
}

// GetByID находит заметку по ID. Невалидный UUID считается отсутствующей заметкой.
func (r *NoteRepository) GetByID(ctx context.Context, id string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "GetByID"))

	if !validID(id) {
		log.Debug(ctx, "malformed note id", zap.String("noteID", id))
		return nil, entities.ErrNoteNotFound
	}

	query := `
        SELECT ` + noteColumns + `
        FROM notes
        WHERE id = $1
    `

	note, err := scanNote(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found", zap.String("noteID", id))
			return nil, entities.ErrNoteNotFound
		}
		log.Error(ctx, "failed to get note", zap.Error(err))
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	return note, nil
}

// ListByUser возвращает заметки пользователя по убыванию lastEdited.
func (r *NoteRepository) ListByUser(ctx context.Context, userID string) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "ListByUser"))
	log.Debug(ctx, "listing notes", zap.String("userID", userID))

	query := `
        SELECT ` + noteColumns + `
        FROM notes
        WHERE user_id = $1
        ORDER BY last_edited DESC
    `

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		log.Error(ctx, "failed to list notes", zap.Error(err))
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]*entities.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			log.Error(ctx, "failed to scan note", zap.Error(err))
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return notes, nil
}

// Update перезаписывает все изменяемые поля заметки.
func (r *NoteRepository) Update(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "Update"))
	log.Debug(ctx, "updating note", zap.String("noteID", note.ID))

	if !validID(note.ID) {
		return nil, entities.ErrNoteNotFound
	}

	query := `
        UPDATE notes
        SET user_id = $2, title = $3, content = $4, tags = $5, is_archived = $6,
            color = NULLIF($7, ''), last_edited = $8, updated_at = NOW()
        WHERE id = $1
        RETURNING ` + noteColumns

	updated, err := scanNote(r.pool.QueryRow(ctx, query,
		note.ID, note.UserID, note.Title, note.Content, tagsOrEmpty(note.Tags), note.IsArchived, note.Color, note.LastEdited))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found", zap.String("noteID", note.ID))
			return nil, entities.ErrNoteNotFound
		}
		log.Error(ctx, "failed to update note", zap.Error(err))
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	return updated, nil
}

// Delete удаляет заметку.
func (r *NoteRepository) Delete(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "Delete"))
	log.Debug(ctx, "deleting note", zap.String("noteID", id))

	if !validID(id) {
		return entities.ErrNoteNotFound
	}

	result, err := r.pool.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		log.Error(ctx, "failed to delete note", zap.Error(err))
		return fmt.Errorf("failed to delete note: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "note not found", zap.String("noteID", id))
		return entities.ErrNoteNotFound
	}

	return nil
}

// ToggleArchive инвертирует is_archived одним запросом.
func (r *NoteRepository) ToggleArchive(ctx context.Context, id string, at time.Time) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "ToggleArchive"))
	log.Debug(ctx, "toggling archive flag", zap.String("noteID", id))

	if !validID(id) {
		return nil, entities.ErrNoteNotFound
	}

	query := `
        UPDATE notes
        SET is_archived = NOT is_archived, last_edited = $2, updated_at = NOW()
        WHERE id = $1
        RETURNING ` + noteColumns

	note, err := scanNote(r.pool.QueryRow(ctx, query, id, at))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found", zap.String("noteID", id))
			return nil, entities.ErrNoteNotFound
		}
		log.Error(ctx, "failed to toggle archive flag", zap.Error(err))
		return nil, fmt.Errorf("failed to toggle archive flag: %w", err)
	}

	return note, nil
}

func scanNote(row pgx.Row) (*entities.Note, error) {
	var note entities.Note
	err := row.Scan(
		&note.ID,
		&note.UserID,
		&note.Title,
		&note.Content,
		&note.Tags,
		&note.IsArchived,
		&note.Color,
		&note.LastEdited,
		&note.CreatedAt,
		&note.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if note.Tags == nil {
		note.Tags = []string{}
	}
	return &note, nil
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
