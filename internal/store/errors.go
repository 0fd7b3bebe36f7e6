package store

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrAlreadyExists is the parent of every unique-constraint failure.
	ErrAlreadyExists = errors.New("record already exists")

	// ErrUsernameAlreadyExists is returned when an INSERT into users violates
	// the username unique constraint.
	ErrUsernameAlreadyExists = fmt.Errorf("username: %w", ErrAlreadyExists)

	// ErrEmailAlreadyExists is returned when an INSERT into users violates
	// the email unique constraint.
	ErrEmailAlreadyExists = fmt.Errorf("email: %w", ErrAlreadyExists)

	// ErrNoUserWasFound is returned when a query expected to match a user
	// record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrTodoNotFound is returned when no todo with the given id exists for
	// the given owner. A row that belongs to another user is reported the
	// same way.
	ErrTodoNotFound = errors.New("todo was not found")

	// ErrNoteNotFound is the note counterpart of [ErrTodoNotFound].
	ErrNoteNotFound = errors.New("note was not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query with the
	// statement builder fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrOpeningSession is returned when a dedicated connection cannot be
	// taken from the pool.
	ErrOpeningSession = errors.New("failed to open storage session")
)
