package store

import "github.com/MKhiriev/ontime/internal/logger"

// Storages groups every repository backed by one database handle.
type Storages struct {
	UserRepository UserRepository
	TodoRepository TodoRepository
	NoteRepository NoteRepository
	Sessions       SessionOpener
}

func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository: NewUserRepository(db, log),
		TodoRepository: NewTodoRepository(db, log),
		NoteRepository: NewNoteRepository(db, log),
		Sessions:       db,
	}
}
