package service

import (
	"context"
	"time"

	"github.com/MKhiriev/ontime/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService registers users, logs them in and resolves bearer tokens back
// to users.
type AuthService interface {
	RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (models.Token, error)
	ResolveUser(ctx context.Context, token string) (models.User, error)
}

// TodoService exposes the owner-scoped todo operations. ownerID always comes
// from the resolved caller, never from the request body.
type TodoService interface {
	CreateTodo(ctx context.Context, ownerID int64, req models.TodoCreate) (models.Todo, error)
	ListTodos(ctx context.Context, ownerID int64, page models.Page) ([]models.Todo, error)
	GetTodo(ctx context.Context, ownerID, todoID int64) (models.Todo, error)
	UpdateTodo(ctx context.Context, ownerID, todoID int64, patch models.TodoUpdate) (models.Todo, error)
	ToggleTodo(ctx context.Context, ownerID, todoID int64) (models.Todo, error)
	DeleteTodo(ctx context.Context, ownerID, todoID int64) error
}

// NoteService exposes the owner-scoped note operations.
type NoteService interface {
	CreateNote(ctx context.Context, ownerID int64, req models.NoteCreate) (models.Note, error)
	ListNotes(ctx context.Context, ownerID int64, page models.Page) ([]models.Note, error)
	GetNote(ctx context.Context, ownerID, noteID int64) (models.Note, error)
	UpdateNote(ctx context.Context, ownerID, noteID int64, patch models.NoteUpdate) (models.Note, error)
	DeleteNote(ctx context.Context, ownerID, noteID int64) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// PasswordHasher turns plaintext passwords into salted one-way digests.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify reports whether plaintext matches digest. A malformed digest
	// is a mismatch, not an error.
	Verify(plaintext, digest string) bool
}

// TokenCodec issues and verifies signed, self-contained access tokens.
type TokenCodec interface {
	Issue(subject string, ttl time.Duration) (models.Token, error)
	// Verify returns the subject of a valid token or one of
	// ErrMalformedToken, ErrBadSignature, ErrTokenExpired.
	Verify(token string) (string, error)
}
