package postgres

import (
	"gonotes/internal/notes/ports/repositories"
)

// RepositoryFactory создает репозитории заметок.
type RepositoryFactory struct {
	pool PgxPoolInterface
}

// NewRepositoryFactory создает фабрику репозиториев.
func NewRepositoryFactory(pool PgxPoolInterface) *RepositoryFactory {
	return &RepositoryFactory{pool: pool}
}

// NoteRepository возвращает репозиторий заметок.
func (f *RepositoryFactory) NoteRepository() repositories.NoteRepository {
	return NewNoteRepository(f.pool)
}
