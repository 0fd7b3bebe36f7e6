package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/ontime/internal/logger"
	"github.com/MKhiriev/ontime/models"
	sq "github.com/Masterminds/squirrel"
)

// todoRepository implements [TodoRepository] on the "todos" table. Every
// statement it issues is scoped with [ownedBy] or [ownedRow].
type todoRepository struct {
	*DB
	logger *logger.Logger
}

func NewTodoRepository(db *DB, logger *logger.Logger) TodoRepository {
	return &todoRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *todoRepository) CreateTodo(ctx context.Context, todo models.Todo) (models.Todo, error) {
	log := logger.FromContext(ctx)

	now := r.now()
	query, args, err := r.builder.
		Insert(todosTable).
		Columns("user_id", "task", "due_date", "completed", "created_at", "updated_at").
		Values(todo.UserID, todo.Task, todo.DueDate, false, now, now).
		Suffix(returning(todoColumns)).
		ToSql()
	if err != nil {
		return models.Todo{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanTodo(r.executor(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).
			Str("func", "todoRepository.CreateTodo").
			Int64("user_id", todo.UserID).
			Stringer("db_failure", r.classify(err)).
			Msg("failed to insert todo")
		return models.Todo{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return created, nil
}

// ListTodos returns one page of the owner's todos, newest first.
func (r *todoRepository) ListTodos(ctx context.Context, ownerID int64, page models.Page) ([]models.Todo, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.selectTodos(ownerID, page)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "todoRepository.ListTodos").
			Int64("user_id", ownerID).
			Msg("failed to execute query for listing todos")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	todos := make([]models.Todo, 0, page.Limit)
	for rows.Next() {
		todo, scanErr := scanTodo(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "todoRepository.ListTodos").
				Int64("user_id", ownerID).
				Int("row", len(todos)).
				Msg("failed to scan todo row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		todos = append(todos, todo)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "todoRepository.ListTodos").Int64("user_id", ownerID).Msg("rows iteration error")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return todos, nil
}

func (r *todoRepository) GetTodo(ctx context.Context, ownerID, todoID int64) (models.Todo, error) {
	query, args, err := r.builder.
		Select(todoColumns...).
		From(todosTable).
		Where(ownedRow(ownerID, todoID)).
		ToSql()
	if err != nil {
		return models.Todo{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.one(ctx, "todoRepository.GetTodo", ownerID, todoID, query, args)
}

// UpdateTodo applies the non-nil fields of patch and bumps updated_at.
func (r *todoRepository) UpdateTodo(ctx context.Context, ownerID, todoID int64, patch models.TodoUpdate) (models.Todo, error) {
	query, args, err := r.updateTodo(ownerID, todoID, patch, r.now())
	if err != nil {
		return models.Todo{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.one(ctx, "todoRepository.UpdateTodo", ownerID, todoID, query, args)
}

// ToggleTodo flips the completed flag in a single statement.
func (r *todoRepository) ToggleTodo(ctx context.Context, ownerID, todoID int64) (models.Todo, error) {
	query, args, err := r.builder.
		Update(todosTable).
		Set("completed", sq.Expr("NOT completed")).
		Set("updated_at", r.now()).
		Where(ownedRow(ownerID, todoID)).
		Suffix(returning(todoColumns)).
		ToSql()
	if err != nil {
		return models.Todo{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.one(ctx, "todoRepository.ToggleTodo", ownerID, todoID, query, args)
}

func (r *todoRepository) DeleteTodo(ctx context.Context, ownerID, todoID int64) error {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Delete(todosTable).
		Where(ownedRow(ownerID, todoID)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.executor(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "todoRepository.DeleteTodo").
			Int64("user_id", ownerID).
			Int64("todo_id", todoID).
			Msg("failed to delete todo")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrTodoNotFound
	}

	return nil
}

// one runs a statement that yields at most one todo row.
func (r *todoRepository) one(ctx context.Context, fn string, ownerID, todoID int64, query string, args []any) (models.Todo, error) {
	todo, err := scanTodo(r.executor(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Todo{}, ErrTodoNotFound
		}

		logger.FromContext(ctx).Err(err).
			Str("func", fn).
			Int64("user_id", ownerID).
			Int64("todo_id", todoID).
			Stringer("db_failure", r.classify(err)).
			Msg("todo statement failed")
		return models.Todo{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return todo, nil
}
