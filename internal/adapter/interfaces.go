// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides a typed client for the ontime REST API.
//
// The primary abstraction is [ServerAdapter], which decouples the command-line
// client from the underlying protocol. The package ships an HTTP/REST
// implementation built on resty ([NewHTTPServerAdapter]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/ontime/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines communication with the ontime server.
// Implementations are responsible for serialisation, authentication header
// management, and mapping transport-level errors to the sentinel values
// defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all subsequent
	// authenticated requests.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Register creates an account. It does not log in.
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)

	// Login exchanges credentials for an access token and stores it via
	// SetToken.
	Login(ctx context.Context, username, password string) (models.TokenResponse, error)

	// Me returns the user the current token belongs to.
	Me(ctx context.Context) (models.User, error)

	// Logout acknowledges a logout and forgets the stored token.
	Logout(ctx context.Context) error

	CreateTodo(ctx context.Context, req models.TodoCreate) (models.Todo, error)
	ListTodos(ctx context.Context, page models.Page) ([]models.Todo, error)
	GetTodo(ctx context.Context, id int64) (models.Todo, error)
	UpdateTodo(ctx context.Context, id int64, patch models.TodoUpdate) (models.Todo, error)
	ToggleTodo(ctx context.Context, id int64) (models.Todo, error)
	DeleteTodo(ctx context.Context, id int64) error

	CreateNote(ctx context.Context, req models.NoteCreate) (models.Note, error)
	ListNotes(ctx context.Context, page models.Page) ([]models.Note, error)
	GetNote(ctx context.Context, id int64) (models.Note, error)
	UpdateNote(ctx context.Context, id int64, patch models.NoteUpdate) (models.Note, error)
	DeleteNote(ctx context.Context, id int64) error

	// ServerVersion returns the version reported by the server.
	ServerVersion(ctx context.Context) (string, error)
}
