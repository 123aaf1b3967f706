package app_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"gonotes/internal/notes/domain/entities"
)

const (
	ErrCreateNote = "failed to create note"
	ErrGetNote    = "failed to get note"
	ErrListNotes  = "failed to list notes"
	ErrUpdateNote = "failed to update note"
	ErrDeleteNote = "failed to delete note"
	ErrToggleNote = "failed to toggle note"
)

type mockNoteRepository struct {
	mock.Mock
}

func (m *mockNoteRepository) Create(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	args := m.Called(ctx, note)
	if args.Get(0) == nil {
		return nil, fmt.Errorf("%s: %w", ErrCreateNote, args.Error(1))
	}
	return args.Get(0).(*entities.Note), nil
}

func (m *mockNoteRepository) GetByID(ctx context.Context, id string) (*entities.Note, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, fmt.Errorf("%s: %w", ErrGetNote, args.Error(1))
	}
	return args.Get(0).(*entities.Note), nil
}

func (m *mockNoteRepository) ListByUser(ctx context.Context, userID string) ([]*entities.Note, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		err := args.Error(1)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrListNotes, err)
		}
		return nil, nil
	}
	return args.Get(0).([]*entities.Note), nil
}

func (m *mockNoteRepository) Update(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	args := m.Called(ctx, note)
	if args.Get(0) == nil {
		return nil, fmt.Errorf("%s: %w", ErrUpdateNote, args.Error(1))
	}
	return args.Get(0).(*entities.Note), nil
}

func (m *mockNoteRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	if err := args.Error(0); err != nil {
		return fmt.Errorf("%s: %w", ErrDeleteNote, err)
	}
	return nil
}

func (m *mockNoteRepository) ToggleArchive(ctx context.Context, id string, at time.Time) (*entities.Note, error) {
	args := m.Called(ctx, id, at)
	if args.Get(0) == nil {
		return nil, fmt.Errorf("%s: %w", ErrToggleNote, args.Error(1))
	}
	return args.Get(0).(*entities.Note), nil
}

type mockNoteListCache struct {
	mock.Mock
}

func (m *mockNoteListCache) Get(ctx context.Context, userID string) ([]*entities.Note, bool) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).([]*entities.Note), args.Bool(1)
}

func (m *mockNoteListCache) Generation(ctx context.Context, userID string) (int64, bool) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Bool(1)
}

func (m *mockNoteListCache) Set(ctx context.Context, userID string, generation int64, notes []*entities.Note) {
	m.Called(ctx, userID, generation, notes)
}

func (m *mockNoteListCache) Invalidate(ctx context.Context, userIDs ...string) {
	m.Called(ctx, userIDs)
}

// memoryNoteRepository - хранилище в памяти для сценарных тестов.
type memoryNoteRepository struct {
	mu    sync.Mutex
	seq   int
	notes map[string]entities.Note
}

func newMemoryNoteRepository() *memoryNoteRepository {
	return &memoryNoteRepository{notes: make(map[string]entities.Note)}
}

func (r *memoryNoteRepository) Create(_ context.Context, note *entities.Note) (*entities.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	stored := *note
	stored.ID = fmt.Sprintf("note-%d", r.seq)
	stored.CreatedAt = note.LastEdited
	stored.UpdatedAt = note.LastEdited
	r.notes[stored.ID] = stored

	out := stored
	return &out, nil
}

func (r *memoryNoteRepository) GetByID(_ context.Context, id string) (*entities.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	note, ok := r.notes[id]
	if !ok {
		return nil, entities.ErrNoteNotFound
	}
	return &note, nil
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
	stored := *note
	stored.UpdatedAt = note.LastEdited
	r.notes[note.ID] = stored

	out := stored
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

	note, ok := r.notes[id]
	if !ok {
		return nil, entities.ErrNoteNotFound
	}
	note.IsArchived = !note.IsArchived
	note.LastEdited = at
	note.UpdatedAt = at
	r.notes[id] = note

	out := note
	return &out, nil
}

// stepClock выдает время, увеличивающееся на минуту при каждом вызове.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Minute)
	return c.now
}
