// Package notes содержит HTTP обработчики для управления заметками.
package notes

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gonotes/internal/gateway/app/dto"
	"gonotes/internal/gateway/app/http/respond"
	"gonotes/internal/notes/ports/api"
	"gonotes/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerListNotes     = "handling list notes request"
	LogHandlerGetNote       = "handling get note request"
	LogHandlerCreateNote    = "handling create note request"
	LogHandlerUpdateNote    = "handling update note request"
	LogHandlerDeleteNote    = "handling delete note request"
	LogHandlerToggleArchive = "handling toggle archive request"

	ErrMsgInvalidRequestBody = "invalid request body"

	MsgFetchNotesFailed = "Failed to fetch notes"
	MsgFetchNoteFailed  = "Failed to fetch note"
	MsgSaveNoteFailed   = "Failed to save note"
	MsgDeleteNoteFailed = "Failed to delete note"
	MsgToggleFailed     = "Failed to toggle archive"
	MsgNoteDeleted      = "Note deleted successfully"

	paramID     = "id"
	paramUserID = "userId"
)

// Handler обработчик HTTP-запросов для работы с заметками.
type Handler struct {
	noteUseCase api.NoteUseCase
}

// NewHandler создает обработчик заметок.
func NewHandler(noteUseCase api.NoteUseCase) *Handler {
	return &Handler{
		noteUseCase: noteUseCase,
	}
}

// ListNotes обрабатывает GET /api/notes/user/:userId.
func (h *Handler) ListNotes(c fiber.Ctx) error {
	requestCtx := c.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.ListNotes"))
	log.Debug(requestCtx, LogHandlerListNotes)

	notes, err := h.noteUseCase.List(requestCtx, c.Params(paramUserID))
	if err != nil {
		return respond.Error(c, err, MsgFetchNotesFailed)
	}

	return respond.JSON(c, fiber.StatusOK, dto.NewNoteListResponse(notes))
}

// GetNote обрабатывает GET /api/notes/:id.
func (h *Handler) GetNote(c fiber.Ctx) error {
	requestCtx := c.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.GetNote"))
	log.Debug(requestCtx, LogHandlerGetNote)

	note, err := h.noteUseCase.GetByID(requestCtx, c.Params(paramID))
	if err != nil {
		return respond.Error(c, err, MsgFetchNoteFailed)
	}

	return respond.JSON(c, fiber.StatusOK, dto.NewNoteResponse(note))
}

// CreateNote обрабатывает POST /api/notes.
func (h *Handler) CreateNote(c fiber.Ctx) error {
	requestCtx := c.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.CreateNote"))
	log.Debug(requestCtx, LogHandlerCreateNote)

	var req dto.CreateNoteRequest
	if err := respond.BindJSON(c, &req); err != nil {
		log.Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return respond.Message(c, fiber.StatusBadRequest, respond.MsgInvalidRequestBody)
	}

	note, err := h.noteUseCase.Create(requestCtx, req.ToInput())
	if err != nil {
		return respond.Error(c, err, MsgSaveNoteFailed)
	}

	return respond.JSON(c, fiber.StatusCreated, dto.NewNoteResponse(note))
}

// UpdateNote обрабатывает PUT /api/notes/:id.
func (h *Handler) UpdateNote(c fiber.Ctx) error {
	requestCtx := c.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.UpdateNote"))
	log.Debug(requestCtx, LogHandlerUpdateNote)

	var req dto.UpdateNoteRequest
	if err := respond.BindJSON(c, &req); err != nil {
		log.Debug(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return respond.Message(c, fiber.StatusBadRequest, respond.MsgInvalidRequestBody)
	}

	note, err := h.noteUseCase.Update(requestCtx, c.Params(paramID), req.ToPatch())
	if err != nil {
		return respond.Error(c, err, MsgSaveNoteFailed)
	}

	return respond.JSON(c, fiber.StatusOK, dto.NewNoteResponse(note))
}

// DeleteNote обрабатывает DELETE /api/notes/:id.
func (h *Handler) DeleteNote(c fiber.Ctx) error {
	requestCtx := c.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.DeleteNote"))
	log.Debug(requestCtx, LogHandlerDeleteNote)

	if err := h.noteUseCase.Delete(requestCtx, c.Params(paramID)); err != nil {
		return respond.Error(c, err, MsgDeleteNoteFailed)
	}

	return respond.Message(c, fiber.StatusOK, MsgNoteDeleted)
}

// ToggleArchive обрабатывает PATCH /api/notes/:id/archive.
func (h *Handler) ToggleArchive(c fiber.Ctx) error {
	requestCtx := c.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.ToggleArchive"))
	log.Debug(requestCtx, LogHandlerToggleArchive)

	note, err := h.noteUseCase.ToggleArchive(requestCtx, c.Params(paramID))
	if err != nil {
		return respond.Error(c, err, MsgToggleFailed)
	}

	return respond.JSON(c, fiber.StatusOK, dto.NewNoteResponse(note))
}
