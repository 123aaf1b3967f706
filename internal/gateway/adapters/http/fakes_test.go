package http_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	authEntities "gonotes/internal/auth/domain/entities"
	authServices "gonotes/internal/auth/domain/services"
	"gonotes/internal/notes/domain/entities"
)

type memoryUserRepository struct {
	mu    sync.Mutex
	users map[string]authEntities.User
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: make(map[string]authEntities.User)}
}

func (r *memoryUserRepository) Create(_ context.Context, user *authEntities.User) (*authEntities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, authServices.ErrEmailAlreadyExists
		}
	}
	stored := *user
	stored.ID = uuid.NewString()
	r.users[stored.ID] = stored
	return &stored, nil
}

func (r *memoryUserRepository) FindByID(_ context.Context, id string) (*authEntities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, authEntities.ErrUserNotFound
	}
	return &u, nil
}

func (r *memoryUserRepository) FindByEmail(_ context.Context, email string) (*authEntities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, authEntities.ErrUserNotFound
}

type memoryNoteRepository struct {
	mu    sync.Mutex
	notes map[string]entities.Note
}

func newMemoryNoteRepository() *memoryNoteRepository {
	return &memoryNoteRepository{notes: make(map[string]entities.Note)}
}

func (r *memoryNoteRepository) Create(_ context.Context, note *entities.Note) (*entities.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *note
	stored.ID = uuid.NewString()
	r.notes[stored.ID] = stored
	return &stored, nil
}

func (r *memoryNoteRepository) GetByID(_ context.Context, id string) (*entities.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.notes[id]
	if !ok {
		return nil, entities.ErrNoteNotFound
	}
	return &n, nil
}

func (r *memoryNoteRepository) ListByUser(_ context.Context, userID string) ([]*entities.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	notes := make([]*entities.Note, 0)
	for _, n := range r.notes {
		if n.UserID == userID {
			note := n
			notes = append(notes, &note)
		}
	}
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].LastEdited.After(notes[j].LastEdited)
	})
	return notes, nil
}

func (r *memoryNoteRepository) Update(_ context.Context, note *entities.Note) (*entities.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.notes[note.ID]; !ok {
		return nil, entities.ErrNoteNotFound
	}
	r.notes[note.ID] = *note
	out := *note
	return &out, nil
}

func (r *memoryNoteRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.notes[id]; !ok {
		return entities.ErrNoteNotFound
	}
	delete(r.notes, id)
	return nil
}

func (r *memoryNoteRepository) ToggleArchive(_ context.Context, id string, at time.Time) (*entities.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.notes[id]
	if !ok {
		return nil, entities.ErrNoteNotFound
	}
	n.IsArchived = !n.IsArchived
	n.LastEdited = at
	r.notes[id] = n
	return &n, nil
}
