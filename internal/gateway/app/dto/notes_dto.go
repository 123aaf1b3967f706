package dto

import (
	"time"

	"gonotes/internal/notes/domain/entities"
)

// DateLayout - формат lastEdited в ответах, например "29 Oct 2024".
const DateLayout = "2 Jan 2006"

// CreateNoteRequest содержит данные для создания заметки.
// lastEdited из запроса игнорируется.
type CreateNoteRequest struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Tags       []string `json:"tags"`
	IsArchived bool     `json:"isArchived"`
	Color      string   `json:"color"`
	UserID     string   `json:"userId"`
}

// UpdateNoteRequest содержит частичное обновление заметки.
type UpdateNoteRequest struct {
	Title      *string   `json:"title"`
	Content    *string   `json:"content"`
	Tags       *[]string `json:"tags"`
	IsArchived *bool     `json:"isArchived"`
	Color      *string   `json:"color"`
	UserID     *string   `json:"userId"`
}

// NoteResponse - заметка в ответе API.
type NoteResponse struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Tags       []string `json:"tags"`
	Content    string   `json:"content"`
	LastEdited string   `json:"lastEdited"`
	IsArchived bool     `json:"isArchived"`
	Color      string   `json:"color,omitempty"`
	UserID     string   `json:"userId"`
}

// MessageResponse - ответ, состоящий из одного сообщения.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse - ответ проверки работоспособности.
type HealthResponse struct {
	Status string `json:"status"`
}

// ToInput преобразует запрос в данные для создания заметки.
func (r *CreateNoteRequest) ToInput() entities.NoteInput {
	return entities.NoteInput{
		UserID:     r.UserID,
		Title:      r.Title,
		Content:    r.Content,
		Tags:       r.Tags,
		IsArchived: r.IsArchived,
		Color:      r.Color,
	}
}

// ToPatch преобразует запрос в патч заметки.
func (r *UpdateNoteRequest) ToPatch() entities.NotePatch {
	return entities.NotePatch{
		UserID:     r.UserID,
		Title:      r.Title,
		Content:    r.Content,
		Tags:       r.Tags,
		IsArchived: r.IsArchived,
		Color:      r.Color,
	}
}

// FormatDate форматирует дату в UTC.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// NewNoteResponse преобразует заметку в ответ.
func NewNoteResponse(note *entities.Note) NoteResponse {
	tags := note.Tags
	if tags == nil {
		tags = []string{}
	}
	return NoteResponse{
		ID:         note.ID,
		Title:      note.Title,
		Tags:       tags,
		Content:    note.Content,
		LastEdited: FormatDate(note.LastEdited),
		IsArchived: note.IsArchived,
		Color:      note.Color,
		UserID:     note.UserID,
	}
}

// NewNoteListResponse преобразует список заметок. Пустой список сериализуется как [].
func NewNoteListResponse(notes []*entities.Note) []NoteResponse {
	out := make([]NoteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, NewNoteResponse(n))
	}
	return out
}
