package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/ontime/internal/config"
	"github.com/MKhiriev/ontime/internal/logger"
	"github.com/MKhiriev/ontime/internal/mock"
	"github.com/MKhiriev/ontime/internal/store"
	"github.com/MKhiriev/ontime/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestTodoSvc(t *testing.T, maxLimit uint64) (TodoService, *mock.MockTodoRepository) {
	t.Helper()
	repo := mock.NewMockTodoRepository(gomock.NewController(t))
	return NewTodoService(repo, config.Pagination{MaxLimit: maxLimit}, logger.Nop()), repo
}

func TestTodoService_CreateTodo_SetsOwner(t *testing.T) {
	svc, repo := newTestTodoSvc(t, 100)
	ctx := context.Background()
	due := models.NewDate(2026, 5, 1)

	repo.EXPECT().CreateTodo(ctx, models.Todo{UserID: 42, Task: "buy milk", DueDate: &due}).
		Return(models.Todo{ID: 1, UserID: 42, Task: "buy milk", DueDate: &due}, nil)

	todo, err := svc.CreateTodo(ctx, 42, models.TodoCreate{Task: "buy milk", DueDate: &due})
	require.NoError(t, err)
	assert.Equal(t, int64(42), todo.UserID)
	assert.False(t, todo.Completed)
}

func TestTodoService_ListTodos_ClampsPage(t *testing.T) {
	tests := []struct {
		name     string
		maxLimit uint64
		page     models.Page
		want     models.Page
	}{
		{name: "within bounds", maxLimit: 100, page: models.Page{Skip: 3, Limit: 10}, want: models.Page{Skip: 3, Limit: 10}},
		{name: "above configured max", maxLimit: 20, page: models.Page{Limit: 100}, want: models.Page{Limit: 20}},
		{name: "zero limit", maxLimit: 100, page: models.Page{Skip: 1}, want: models.Page{Skip: 1, Limit: 1}},
		{name: "unset max", maxLimit: 0, page: models.Page{Limit: 1000}, want: models.Page{Limit: models.MaxPageLimit}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestTodoSvc(t, tt.maxLimit)
			repo.EXPECT().ListTodos(gomock.Any(), int64(42), tt.want).Return(nil, nil)

			todos, err := svc.ListTodos(context.Background(), 42, tt.page)
			require.NoError(t, err)
			assert.NotNil(t, todos)
			assert.Empty(t, todos)
		})
	}
}

func TestTodoService_NotOwnedIsNotFound(t *testing.T) {
	svc, repo := newTestTodoSvc(t, 100)
	ctx := context.Background()
	task := "changed"

	repo.EXPECT().GetTodo(ctx, int64(2), int64(1)).Return(models.Todo{}, store.ErrTodoNotFound)
	repo.EXPECT().UpdateTodo(ctx, int64(2), int64(1), models.TodoUpdate{Task: &task}).Return(models.Todo{}, store.ErrTodoNotFound)
	repo.EXPECT().ToggleTodo(ctx, int64(2), int64(1)).Return(models.Todo{}, store.ErrTodoNotFound)
	repo.EXPECT().DeleteTodo(ctx, int64(2), int64(1)).Return(store.ErrTodoNotFound)

	_, err := svc.GetTodo(ctx, 2, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.UpdateTodo(ctx, 2, 1, models.TodoUpdate{Task: &task})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.ToggleTodo(ctx, 2, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.DeleteTodo(ctx, 2, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTodoService_StorageErrorIsNotNotFound(t *testing.T) {
	svc, repo := newTestTodoSvc(t, 100)
	ctx := context.Background()

	repo.EXPECT().GetTodo(ctx, int64(1), int64(1)).Return(models.Todo{}, store.ErrExecutingQuery)

	_, err := svc.GetTodo(ctx, 1, 1)
	assert.ErrorIs(t, err, store.ErrExecutingQuery)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestTodoService_ToggleTodo(t *testing.T) {
	svc, repo := newTestTodoSvc(t, 100)
	ctx := context.Background()

	repo.EXPECT().ToggleTodo(ctx, int64(1), int64(5)).Return(models.Todo{ID: 5, UserID: 1, Completed: true}, nil)

	todo, err := svc.ToggleTodo(ctx, 1, 5)
	require.NoError(t, err)
	assert.True(t, todo.Completed)
}

func TestTodoService_UpdateTodo_EmptyPatchReadsOnly(t *testing.T) {
	svc, repo := newTestTodoSvc(t, 100)
	ctx := context.Background()
	stored := models.Todo{ID: 5, UserID: 42, Task: "buy milk"}

	repo.EXPECT().GetTodo(ctx, int64(42), int64(5)).Return(stored, nil)

	todo, err := svc.UpdateTodo(ctx, 42, 5, models.TodoUpdate{})
	require.NoError(t, err)
	assert.Equal(t, stored, todo)
}
