package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/ontime/internal/validators"
	"github.com/MKhiriev/ontime/models"
)

// TodoServiceWrapper defines middleware composition for TodoService.
// Implementations wrap an existing TodoService to add behavior such as
// validating.
type TodoServiceWrapper interface {
	Wrap(TodoService) TodoService
}

// NoteServiceWrapper is the NoteService counterpart of TodoServiceWrapper.
type NoteServiceWrapper interface {
	Wrap(NoteService) NoteService
}

// AuthServiceWrapper is the AuthService counterpart of TodoServiceWrapper.
type AuthServiceWrapper interface {
	Wrap(AuthService) AuthService
}

// validate runs v over obj and reports violations as ErrInvalidDataProvided
// so that they map to a validation response.
func validate(ctx context.Context, v validators.Validator, obj any) error {
	if err := v.Validate(ctx, obj); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return nil
}

// AuthValidationService rejects malformed registration and login payloads
// before they reach the wrapped AuthService.
type AuthValidationService struct {
	inner     AuthService
	validator validators.Validator
}

func NewAuthValidationService() AuthServiceWrapper {
	return &AuthValidationService{
		validator: validators.NewStructValidator(),
	}
}

func (v *AuthValidationService) RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	if err := validate(ctx, v.validator, req); err != nil {
		return models.User{}, fmt.Errorf("error during user validation before registration: %w", err)
	}
	return v.inner.RegisterUser(ctx, req)
}

func (v *AuthValidationService) Login(ctx context.Context, req models.LoginRequest) (models.Token, error) {
	if err := validate(ctx, v.validator, req); err != nil {
		return models.Token{}, fmt.Errorf("error during credentials validation: %w", err)
	}
	return v.inner.Login(ctx, req)
}

// ResolveUser has nothing to validate; a bad token is an authentication
// failure, not a validation one.
func (v *AuthValidationService) ResolveUser(ctx context.Context, token string) (models.User, error) {
	return v.inner.ResolveUser(ctx, token)
}

func (v *AuthValidationService) Wrap(inner AuthService) AuthService {
	v.inner = inner
	return v
}

// TodoValidationService validates todo payloads and pages.
type TodoValidationService struct {
	inner     TodoService
	validator validators.Validator
}

func NewTodoValidationService() TodoServiceWrapper {
	return &TodoValidationService{
		validator: validators.NewStructValidator(),
	}
}

func (v *TodoValidationService) CreateTodo(ctx context.Context, ownerID int64, req models.TodoCreate) (models.Todo, error) {
	if err := validate(ctx, v.validator, req); err != nil {
		return models.Todo{}, fmt.Errorf("error during todo validation before saving: %w", err)
	}
	return v.inner.CreateTodo(ctx, ownerID, req)
}

func (v *TodoValidationService) ListTodos(ctx context.Context, ownerID int64, page models.Page) ([]models.Todo, error) {
	if err := validate(ctx, v.validator, page); err != nil {
		return nil, err
	}
	return v.inner.ListTodos(ctx, ownerID, page)
}

func (v *TodoValidationService) GetTodo(ctx context.Context, ownerID, todoID int64) (models.Todo, error) {
	return v.inner.GetTodo(ctx, ownerID, todoID)
}

func (v *TodoValidationService) UpdateTodo(ctx context.Context, ownerID, todoID int64, patch models.TodoUpdate) (models.Todo, error) {
	if err := validate(ctx, v.validator, patch); err != nil {
		return models.Todo{}, fmt.Errorf("error during todo validation before update: %w", err)
	}
	return v.inner.UpdateTodo(ctx, ownerID, todoID, patch)
}

func (v *TodoValidationService) ToggleTodo(ctx context.Context, ownerID, todoID int64) (models.Todo, error) {
	return v.inner.ToggleTodo(ctx, ownerID, todoID)
}

func (v *TodoValidationService) DeleteTodo(ctx context.Context, ownerID, todoID int64) error {
	return v.inner.DeleteTodo(ctx, ownerID, todoID)
}

func (v *TodoValidationService) Wrap(inner TodoService) TodoService {
	v.inner = inner
	return v
}

// NoteValidationService validates note payloads and pages.
type NoteValidationService struct {
	inner     NoteService
	validator validators.Validator
}

func NewNoteValidationService() NoteServiceWrapper {
	return &NoteValidationService{
		validator: validators.NewStructValidator(),
	}
}

func (v *NoteValidationService) CreateNote(ctx context.Context, ownerID int64, req models.NoteCreate) (models.Note, error) {
	if err := validate(ctx, v.validator, req); err != nil {
		return models.Note{}, fmt.Errorf("error during note validation before saving: %w", err)
	}
	return v.inner.CreateNote(ctx, ownerID, req)
}

func (v *NoteValidationService) ListNotes(ctx context.Context, ownerID int64, page models.Page) ([]models.Note, error) {
	if err := validate(ctx, v.validator, page); err != nil {
		return nil, err
	}
	return v.inner.ListNotes(ctx, ownerID, page)
}

func (v *NoteValidationService) GetNote(ctx context.Context, ownerID, noteID int64) (models.Note, error) {
	return v.inner.GetNote(ctx, ownerID, noteID)
}

func (v *NoteValidationService) UpdateNote(ctx context.Context, ownerID, noteID int64, patch models.NoteUpdate) (models.Note, error) {
	if err := validate(ctx, v.validator, patch); err != nil {
		return models.Note{}, fmt.Errorf("error during note validation before update: %w", err)
	}
	return v.inner.UpdateNote(ctx, ownerID, noteID, patch)
}

func (v *NoteValidationService) DeleteNote(ctx context.Context, ownerID, noteID int64) error {
	return v.inner.DeleteNote(ctx, ownerID, noteID)
}

func (v *NoteValidationService) Wrap(inner NoteService) NoteService {
	v.inner = inner
	return v
}
