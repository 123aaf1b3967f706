// Package api содержит типизированный HTTP клиент API заметок.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"gonotes/internal/gateway/app/dto"
	"gonotes/pkg/logger"
)

const defaultTimeout = 10 * time.Second

const (
	errCtxBuildRequest  = "building request"
	errCtxSendRequest   = "sending request"
	errCtxDecodeBody    = "decoding response body"
	errCtxEncodeBody    = "encoding request body"
	msgUnexpectedStatus = "unexpected response status"
	msgResponse         = "response received"
)

// ErrEmptyID возвращается, если идентификатор не передан.
var ErrEmptyID = errors.New("id is required")

// Error - ошибка, которую вернул сервер.
type Error struct {
	StatusCode int
	Message    string
	Fields     map[string]dto.FieldErrorResponse
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: %d", msgUnexpectedStatus, e.StatusCode)
	}
	return e.Message
}

// IsStatus сообщает, что err - ошибка сервера с указанным кодом.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// Option настраивает Client.
type Option func(*Client)

// WithHTTPClient подменяет HTTP клиент.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// Client обращается к API заметок. Токен подставляется в заголовок Authorization.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// New создает клиента для сервера baseURL, например "http://localhost:5050".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken задает токен для последующих запросов. Пустая строка убирает его.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Token возвращает текущий токен.
func (c *Client) Token() string {
	return c.token
}

// Health проверяет доступность сервера.
func (c *Client) Health(ctx context.Context) (*dto.HealthResponse, error) {
	var out dto.HealthResponse
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register регистрирует пользователя.
func (c *Client) Register(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	var out dto.AuthResponse
	req := dto.RegisterRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login выполняет вход.
func (c *Client) Login(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	var out dto.AuthResponse
	req := dto.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me возвращает пользователя, которому принадлежит токен.
func (c *Client) Me(ctx context.Context) (*dto.UserResponse, error) {
	var out dto.UserResponse
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListNotes возвращает заметки пользователя.
func (c *Client) ListNotes(ctx context.Context, userID string) ([]dto.NoteResponse, error) {
	if userID == "" {
		return nil, ErrEmptyID
	}
	var out []dto.NoteResponse
	if err := c.do(ctx, http.MethodGet, "/api/notes/user/"+url.PathEscape(userID), nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []dto.NoteResponse{}
	}
	return out, nil
}

// GetNote возвращает заметку по идентификатору.
func (c *Client) GetNote(ctx context.Context, id string) (*dto.NoteResponse, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	var out dto.NoteResponse
	if err := c.do(ctx, http.MethodGet, notePath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateNote создает заметку.
func (c *Client) CreateNote(ctx context.Context, req dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	var out dto.NoteResponse
	if err := c.do(ctx, http.MethodPost, "/api/notes", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateNote частично обновляет заметку.
func (c *Client) UpdateNote(ctx context.Context, id string, req dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	var out dto.NoteResponse
	if err := c.do(ctx, http.MethodPut, notePath(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteNote удаляет заметку и возвращает сообщение сервера.
func (c *Client) DeleteNote(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", ErrEmptyID
	}
	var out dto.MessageResponse
	if err := c.do(ctx, http.MethodDelete, notePath(id), nil, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// ToggleArchive переключает признак архивации.
func (c *Client) ToggleArchive(ctx context.Context, id string) (*dto.NoteResponse, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	var out dto.NoteResponse
	if err := c.do(ctx, http.MethodPatch, notePath(id)+"/archive", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func notePath(id string) string {
	return "/api/notes/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	log := logger.Log(ctx).With(zap.String("method", method), zap.String("path", path))

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: %w", errCtxEncodeBody, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxBuildRequest, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxSendRequest, err)
	}
	defer resp.Body.Close()

	log.Debug(ctx, msgResponse, zap.Int("status", resp.StatusCode))

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: %w", errCtxDecodeBody, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &Error{StatusCode: resp.StatusCode}
	var payload dto.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		apiErr.Message = payload.Message
		apiErr.Fields = payload.Errors
	}
	return apiErr
}
