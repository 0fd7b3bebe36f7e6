package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/ontime/internal/config"
	"github.com/MKhiriev/ontime/internal/logger"
	"github.com/MKhiriev/ontime/internal/metrics"
	"github.com/MKhiriev/ontime/internal/store"
	"github.com/MKhiriev/ontime/models"
)

const resourceTodo = "todo"

// todoService binds every todo operation to the owner passed in by the
// caller. A todo of another owner is reported exactly like a missing one.
type todoService struct {
	todoRepository store.TodoRepository
	maxLimit       uint64

	logger *logger.Logger
}

func NewTodoService(todoRepository store.TodoRepository, cfg config.Pagination, logger *logger.Logger) TodoService {
	return &todoService{
		todoRepository: todoRepository,
		maxLimit:       cfg.MaxLimit,
		logger:         logger,
	}
}

func (s *todoService) CreateTodo(ctx context.Context, ownerID int64, req models.TodoCreate) (models.Todo, error) {
	todo, err := s.todoRepository.CreateTodo(ctx, models.Todo{
		UserID:  ownerID,
		Task:    req.Task,
		DueDate: req.DueDate,
	})
	return todo, s.result(ctx, "create", ownerID, err)
}

func (s *todoService) ListTodos(ctx context.Context, ownerID int64, page models.Page) ([]models.Todo, error) {
	todos, err := s.todoRepository.ListTodos(ctx, ownerID, page.Clamp(s.maxLimit))
	if err != nil {
		return nil, s.result(ctx, "list", ownerID, err)
	}
	if todos == nil {
		todos = []models.Todo{}
	}
	return todos, s.result(ctx, "list", ownerID, nil)
}

func (s *todoService) GetTodo(ctx context.Context, ownerID, todoID int64) (models.Todo, error) {
	todo, err := s.todoRepository.GetTodo(ctx, ownerID, todoID)
	return todo, s.result(ctx, "get", ownerID, err)
}

// UpdateTodo applies the fields present in patch. An empty patch changes
// nothing, updated_at included, and returns the stored todo.
func (s *todoService) UpdateTodo(ctx context.Context, ownerID, todoID int64, patch models.TodoUpdate) (models.Todo, error) {
	if patch.IsEmpty() {
		return s.GetTodo(ctx, ownerID, todoID)
	}

	todo, err := s.todoRepository.UpdateTodo(ctx, ownerID, todoID, patch)
	return todo, s.result(ctx, "update", ownerID, err)
}

func (s *todoService) ToggleTodo(ctx context.Context, ownerID, todoID int64) (models.Todo, error) {
	todo, err := s.todoRepository.ToggleTodo(ctx, ownerID, todoID)
	return todo, s.result(ctx, "toggle", ownerID, err)
}

func (s *todoService) DeleteTodo(ctx context.Context, ownerID, todoID int64) error {
	return s.result(ctx, "delete", ownerID, s.todoRepository.DeleteTodo(ctx, ownerID, todoID))
}

// result counts the operation and folds store errors into service errors.
func (s *todoService) result(ctx context.Context, operation string, ownerID int64, err error) error {
	return resourceResult(ctx, resourceTodo, operation, ownerID, err, store.ErrTodoNotFound)
}

// resourceResult is shared by the todo and note services. notFound is the
// store error that means "no row of this owner with that id".
func resourceResult(ctx context.Context, resource, operation string, ownerID int64, err, notFound error) error {
	switch {
	case err == nil:
		metrics.ResourceOperationsTotal.WithLabelValues(resource, operation, "ok").Inc()
		return nil
	case errors.Is(err, notFound):
		metrics.ResourceOperationsTotal.WithLabelValues(resource, operation, "not_found").Inc()
		logger.FromContext(ctx).Debug().
			Str("resource", resource).
			Str("operation", operation).
			Int64("owner_id", ownerID).
			Msg("resource not found for owner")
		return fmt.Errorf("%s %w", resource, ErrNotFound)
	default:
		metrics.ResourceOperationsTotal.WithLabelValues(resource, operation, "error").Inc()
		logger.FromContext(ctx).Err(err).
			Str("resource", resource).
			Str("operation", operation).
			Int64("owner_id", ownerID).
			Msg("resource operation failed")
		return fmt.Errorf("%s %s failed: %w", resource, operation, err)
	}
}
