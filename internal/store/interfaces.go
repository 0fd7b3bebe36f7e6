package store

import (
	"context"

	"github.com/MKhiriev/ontime/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository is the credential store. Usernames and emails are unique;
// the database constraint is the source of truth for that.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
}

// TodoRepository persists todos. Every method takes the owner id and
// restricts the statement to rows of that owner.
type TodoRepository interface {
	CreateTodo(ctx context.Context, todo models.Todo) (models.Todo, error)
	ListTodos(ctx context.Context, ownerID int64, page models.Page) ([]models.Todo, error)
	GetTodo(ctx context.Context, ownerID, todoID int64) (models.Todo, error)
	UpdateTodo(ctx context.Context, ownerID, todoID int64, patch models.TodoUpdate) (models.Todo, error)
	ToggleTodo(ctx context.Context, ownerID, todoID int64) (models.Todo, error)
	DeleteTodo(ctx context.Context, ownerID, todoID int64) error
}

// NoteRepository persists notes with the same owner scoping as
// [TodoRepository].
type NoteRepository interface {
	CreateNote(ctx context.Context, note models.Note) (models.Note, error)
	ListNotes(ctx context.Context, ownerID int64, page models.Page) ([]models.Note, error)
	GetNote(ctx context.Context, ownerID, noteID int64) (models.Note, error)
	UpdateNote(ctx context.Context, ownerID, noteID int64, patch models.NoteUpdate) (models.Note, error)
	DeleteNote(ctx context.Context, ownerID, noteID int64) error
}

// SessionOpener hands out request-scoped storage sessions. The returned
// context carries the session; release must be called exactly once.
type SessionOpener interface {
	OpenSession(ctx context.Context) (sessionCtx context.Context, release func() error, err error)
}
