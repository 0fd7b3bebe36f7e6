package service

import (
	"github.com/MKhiriev/ontime/internal/config"
	"github.com/MKhiriev/ontime/internal/logger"
	"github.com/MKhiriev/ontime/internal/store"
)

// Services groups the application services used by the transport layer.
// Auth, todo and note services are wrapped with request validation.
type Services struct {
	AuthService    AuthService
	TodoService    TodoService
	NoteService    NoteService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	authService := NewAuthService(
		storages.UserRepository,
		NewPasswordHasher(cfg.App.BcryptCost),
		NewTokenCodec(cfg.App),
		cfg.App,
		logger,
	)

	return &Services{
		AuthService:    NewAuthValidationService().Wrap(authService),
		TodoService:    NewTodoValidationService().Wrap(NewTodoService(storages.TodoRepository, cfg.Pagination, logger)),
		NoteService:    NewNoteValidationService().Wrap(NewNoteService(storages.NoteRepository, cfg.Pagination, logger)),
		AppInfoService: appInfoService,
	}, nil
}
