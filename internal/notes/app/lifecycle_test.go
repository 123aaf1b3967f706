package app_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	noteCache "gonotes/internal/notes/adapters/cache"
	"gonotes/internal/notes/app"
	"gonotes/internal/notes/domain/entities"
	"gonotes/pkg/apperror"
)

func TestNoteLifecycle(t *testing.T) {
	ctx := context.Background()
	clock := &stepClock{now: time.Date(2024, 10, 29, 12, 0, 0, 0, time.UTC)}
	useCase := app.NewNoteUseCase(newMemoryNoteRepository(), app.WithClock(clock.Now))

	created, err := useCase.Create(ctx, entities.NoteInput{UserID: "u1", Title: "Groceries", Content: "milk", Tags: []string{"home"}})
	require.NoError(t, err)
	assert.False(t, created.IsArchived)

	fetched, err := useCase.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, fetched)

	updated, err := useCase.Update(ctx, created.ID, entities.NotePatch{Content: strPtr("milk, eggs")})
	require.NoError(t, err)
	assert.Equal(t, "Groceries", updated.Title)
	assert.Equal(t, "milk, eggs", updated.Content)
	assert.Equal(t, []string{"home"}, updated.Tags)
	assert.True(t, updated.LastEdited.After(created.LastEdited))

	archived, err := useCase.ToggleArchive(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, archived.IsArchived)
	assert.True(t, archived.LastEdited.After(updated.LastEdited))

	restored, err := useCase.ToggleArchive(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, restored.IsArchived)

	require.NoError(t, useCase.Delete(ctx, created.ID))

	_, err = useCase.GetByID(ctx, created.ID)
	assert.Equal(t, apperror.NotFound, apperror.KindOf(err))

	err = useCase.Delete(ctx, created.ID)
	assert.Equal(t, apperror.NotFound, apperror.KindOf(err))
}

func TestListScopedToUser(t *testing.T) {
	ctx := context.Background()
	clock := &stepClock{now: time.Date(2024, 10, 29, 12, 0, 0, 0, time.UTC)}
	useCase := app.NewNoteUseCase(newMemoryNoteRepository(), app.WithClock(clock.Now))

	first, err := useCase.Create(ctx, entities.NoteInput{UserID: "u1", Title: "first", Content: "1"})
	require.NoError(t, err)
	second, err := useCase.Create(ctx, entities.NoteInput{UserID: "u1", Title: "second", Content: "2"})
	require.NoError(t, err)
	_, err = useCase.Create(ctx, entities.NoteInput{UserID: "u2", Title: "other", Content: "3"})
	require.NoError(t, err)

	notes, err := useCase.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, second.ID, notes[0].ID)
	assert.Equal(t, first.ID, notes[1].ID)

	_, err = useCase.Update(ctx, first.ID, entities.NotePatch{Title: strPtr("first, edited")})
	require.NoError(t, err)

	notes, err = useCase.List(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, notes[0].ID)

	notes, err = useCase.List(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, notes)
	assert.NotNil(t, notes)
}

// pausingNoteRepository останавливает первое чтение списка после снимка.
type pausingNoteRepository struct {
	*memoryNoteRepository
	loaded chan struct{}
	resume chan struct{}
	once   sync.Once
}

func (r *pausingNoteRepository) ListByUser(ctx context.Context, userID string) ([]*entities.Note, error) {
	notes, err := r.memoryNoteRepository.ListByUser(ctx, userID)
	r.once.Do(func() {
		close(r.loaded)
		<-r.resume
	})
	return notes, err
}

func TestListDoesNotCacheSnapshotOlderThanWrite(t *testing.T) {
	ctx := context.Background()
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := &pausingNoteRepository{
		memoryNoteRepository: newMemoryNoteRepository(),
		loaded:               make(chan struct{}),
		resume:               make(chan struct{}),
	}
	clock := &stepClock{now: time.Date(2024, 10, 29, 12, 0, 0, 0, time.UTC)}
	useCase := app.NewNoteUseCase(repo,
		app.WithClock(clock.Now),
		app.WithCache(noteCache.NewRedisNoteCache(client, time.Minute)))

	done := make(chan error, 1)
	go func() {
		_, err := useCase.List(ctx, "u1")
		done <- err
	}()

	<-repo.loaded
	created, err := useCase.Create(ctx, entities.NoteInput{UserID: "u1", Title: "Groceries", Content: "milk"})
	require.NoError(t, err)
	close(repo.resume)
	require.NoError(t, <-done)

	assert.False(t, s.Exists(noteCache.Key("u1")), "устаревший снимок не должен попасть в кэш")

	notes, err := useCase.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, created.ID, notes[0].ID)

	cached, err := useCase.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, cached, 1)
	assert.True(t, s.Exists(noteCache.Key("u1")))
}
