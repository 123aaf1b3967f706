package cli_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"gonotes/internal/gateway/app/dto"
)

// fakeAPI повторяет контракт HTTP API в памяти.
type fakeAPI struct {
	mu     sync.Mutex
	seq    int
	users  map[string]dto.UserResponse
	pass   map[string]string
	tokens map[string]string
	notes  []dto.NoteResponse
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()

	f := &fakeAPI{
		users:  make(map[string]dto.UserResponse),
		pass:   make(map[string]string),
		tokens: make(map[string]string),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/register", f.register)
	mux.HandleFunc("POST /api/auth/login", f.login)
	mux.HandleFunc("GET /api/auth/me", f.me)
	mux.HandleFunc("GET /api/notes/user/{userId}", f.list)
	mux.HandleFunc("POST /api/notes", f.create)
	mux.HandleFunc("GET /api/notes/{id}", f.get)
	mux.HandleFunc("PUT /api/notes/{id}", f.update)
	mux.HandleFunc("DELETE /api/notes/{id}", f.remove)
	mux.HandleFunc("PATCH /api/notes/{id}/archive", f.archive)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return f, srv
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, dto.ErrorResponse{Message: msg})
}

func (f *fakeAPI) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s%d", prefix, f.seq)
}

func (f *fakeAPI) register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.users[req.Email]; ok {
		writeMessage(w, http.StatusBadRequest, "User already exists")
		return
	}
	user := dto.UserResponse{ID: f.nextID("u"), Email: req.Email}
	f.users[req.Email] = user
	f.pass[req.Email] = req.Password

	token := f.nextID("tok")
	f.tokens[token] = req.Email
	writeJSON(w, http.StatusCreated, dto.AuthResponse{User: user, Token: token})
}

func (f *fakeAPI) login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.users[req.Email]
	if !ok || f.pass[req.Email] != req.Password {
		writeMessage(w, http.StatusBadRequest, "Invalid credentials")
		return
	}
	token := f.nextID("tok")
	f.tokens[token] = req.Email
	writeJSON(w, http.StatusOK, dto.AuthResponse{User: user, Token: token})
}

func (f *fakeAPI) me(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	email, ok := f.tokens[token]
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Invalid token")
		return
	}
	writeJSON(w, http.StatusOK, f.users[email])
}

func (f *fakeAPI) list(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []dto.NoteResponse{}
	for _, n := range f.notes {
		if n.UserID == r.PathValue("userId") {
			out = append(out, n)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (f *fakeAPI) create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateNoteRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	f.mu.Lock()
	defer f.mu.Unlock()

	if req.Title == "" {
		writeMessage(w, http.StatusBadRequest, "Note validation failed: title: Path `title` is required.")
		return
	}
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	note := dto.NoteResponse{
		ID:         f.nextID("n"),
		Title:      req.Title,
		Content:    req.Content,
		Tags:       tags,
		IsArchived: req.IsArchived,
		Color:      req.Color,
		UserID:     req.UserID,
		LastEdited: "29 Oct 2024",
	}
	f.notes = append([]dto.NoteResponse{note}, f.notes...)
	writeJSON(w, http.StatusCreated, note)
}

func (f *fakeAPI) find(id string) int {
	for i, n := range f.notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

func (f *fakeAPI) get(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.find(r.PathValue("id"))
	if i < 0 {
		writeMessage(w, http.StatusNotFound, "Note not found")
		return
	}
	writeJSON(w, http.StatusOK, f.notes[i])
}

func (f *fakeAPI) update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateNoteRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.find(r.PathValue("id"))
	if i < 0 {
		writeMessage(w, http.StatusNotFound, "Note not found")
		return
	}
	n := &f.notes[i]
	if req.Title != nil {
		n.Title = *req.Title
	}
	if req.Content != nil {
		n.Content = *req.Content
	}
	if req.Tags != nil {
		n.Tags = *req.Tags
	}
	if req.Color != nil {
		n.Color = *req.Color
	}
	writeJSON(w, http.StatusOK, *n)
}

func (f *fakeAPI) remove(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.find(r.PathValue("id"))
	if i < 0 {
		writeMessage(w, http.StatusNotFound, "Note not found")
		return
	}
	f.notes = append(f.notes[:i], f.notes[i+1:]...)
	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "Note deleted successfully"})
}

func (f *fakeAPI) archive(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.find(r.PathValue("id"))
	if i < 0 {
		writeMessage(w, http.StatusNotFound, "Note not found")
		return
	}
	f.notes[i].IsArchived = !f.notes[i].IsArchived
	writeJSON(w, http.StatusOK, f.notes[i])
}

func (f *fakeAPI) revokeAll() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = make(map[string]string)
}

func (f *fakeAPI) note(id string) (dto.NoteResponse, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i := f.find(id); i >= 0 {
		return f.notes[i], true
	}
	return dto.NoteResponse{}, false
}
