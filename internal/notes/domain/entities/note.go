// Package entities содержит сущности домена заметок.
package entities

import (
	"time"

	"gonotes/pkg/apperror"
)

// Ошибки домена заметок.
var (
	ErrNoteNotFound   = apperror.New(apperror.NotFound, "Note not found")
	ErrUserIDRequired = apperror.New(apperror.Validation, "User ID is required")
)

// Note - заметка пользователя.
// Color пустой, если цвет не задан.
type Note struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId" validate:"required,nonul"`
	Title      string    `json:"title" validate:"required,nonul"`
	Content    string    `json:"content" validate:"required,nonul"`
	Tags       []string  `json:"tags" validate:"dive,nonul"`
	IsArchived bool      `json:"isArchived"`
	Color      string    `json:"color,omitempty" validate:"nonul"`
	LastEdited time.Time `json:"lastEdited"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// NoteInput - данные для создания заметки.
type NoteInput struct {
	UserID     string
	Title      string
	Content    string
	Tags       []string
	IsArchived bool
	Color      string
}

// NotePatch - частичное обновление заметки. nil означает "не менять".
type NotePatch struct {
	UserID     *string
	Title      *string
	Content    *string
	Tags       *[]string
	IsArchived *bool
	Color      *string
}

// NewNote собирает заметку из входных данных. Теги по умолчанию пустые.
func NewNote(input NoteInput, now time.Time) *Note {
	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}
	return &Note{
		UserID:     input.UserID,
		Title:      input.Title,
		Content:    input.Content,
		Tags:       tags,
		IsArchived: input.IsArchived,
		Color:      input.Color,
		LastEdited: now,
	}
}

// Apply переносит заданные поля патча в заметку и обновляет LastEdited.
func (n *Note) Apply(patch NotePatch, now time.Time) {
	if patch.UserID != nil {
		n.UserID = *patch.UserID
	}
	if patch.Title != nil {
		n.Title = *patch.Title
	}
	if patch.Content != nil {
		n.Content = *patch.Content
	}
	if patch.Tags != nil {
		n.Tags = *patch.Tags
		if n.Tags == nil {
			n.Tags = []string{}
		}
	}
	if patch.IsArchived != nil {
		n.IsArchived = *patch.IsArchived
	}
	if patch.Color != nil {
		n.Color = *patch.Color
	}
	n.LastEdited = now
}
