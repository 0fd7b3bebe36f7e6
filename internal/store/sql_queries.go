package store

import (
	"strings"
	"time"

	"github.com/MKhiriev/ontime/models"
	sq "github.com/Masterminds/squirrel"
)

var (
	usersTable = models.User{}.TableName()
	todosTable = models.Todo{}.TableName()
	notesTable = models.Note{}.TableName()

	userColumns = []string{"id", "username", "email", "password_hash", "created_at"}
	todoColumns = []string{"id", "user_id", "task", "due_date", "completed", "created_at", "updated_at"}
	noteColumns = []string{"id", "user_id", "content", "created_at", "updated_at"}
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// ownedBy is the predicate every todo and note statement carries. A row of
// another user never matches, so it looks exactly like a missing row.
func ownedBy(ownerID int64) sq.Eq {
	return sq.Eq{"user_id": ownerID}
}

// ownedRow narrows ownedBy to a single row id.
func ownedRow(ownerID, id int64) sq.Eq {
	return sq.Eq{"id": id, "user_id": ownerID}
}

func returning(columns []string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}

func scanUser(row rowScanner) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

func scanTodo(row rowScanner) (models.Todo, error) {
	var t models.Todo
	err := row.Scan(&t.ID, &t.UserID, &t.Task, &t.DueDate, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func scanNote(row rowScanner) (models.Note, error) {
	var n models.Note
	err := row.Scan(&n.ID, &n.UserID, &n.Content, &n.CreatedAt, &n.UpdatedAt)
	return n, err
}

func (db *DB) selectTodos(ownerID int64, page models.Page) (string, []any, error) {
	return db.builder.
		Select(todoColumns...).
		From(todosTable).
		Where(ownedBy(ownerID)).
		OrderBy("created_at DESC", "id DESC").
		Offset(page.Skip).
		Limit(page.Limit).
		ToSql()
}

func (db *DB) selectNotes(ownerID int64, page models.Page) (string, []any, error) {
	return db.builder.
		Select(noteColumns...).
		From(notesTable).
		Where(ownedBy(ownerID)).
		OrderBy("updated_at DESC", "id DESC").
		Offset(page.Skip).
		Limit(page.Limit).
		ToSql()
}

// updateTodo builds an UPDATE that touches only the fields present in patch.
func (db *DB) updateTodo(ownerID, todoID int64, patch models.TodoUpdate, now time.Time) (string, []any, error) {
	q := db.builder.
		Update(todosTable).
		Set("updated_at", now)

	if patch.Task != nil {
		q = q.Set("task", *patch.Task)
	}
	if patch.DueDate.Set {
		q = q.Set("due_date", patch.DueDate)
	}
	if patch.Completed != nil {
		q = q.Set("completed", *patch.Completed)
	}

	return q.Where(ownedRow(ownerID, todoID)).
		Suffix(returning(todoColumns)).
		ToSql()
}

func (db *DB) updateNote(ownerID, noteID int64, patch models.NoteUpdate, now time.Time) (string, []any, error) {
	q := db.builder.
		Update(notesTable).
		Set("updated_at", now)

	if patch.Content != nil {
		q = q.Set("content", *patch.Content)
	}

	return q.Where(ownedRow(ownerID, noteID)).
		Suffix(returning(noteColumns)).
		ToSql()
}
