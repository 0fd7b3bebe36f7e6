package handler

import (
	"github.com/MKhiriev/ontime/internal/config"
	"github.com/MKhiriev/ontime/internal/handler/http"
	"github.com/MKhiriev/ontime/internal/logger"
	"github.com/MKhiriev/ontime/internal/service"
	"github.com/MKhiriev/ontime/internal/store"
)

type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers creates the transport handlers enabled by cfg. sessions may be
// nil, in which case requests run without a dedicated storage session.
func NewHandlers(services *service.Services, sessions store.SessionOpener, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, sessions, cfg, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
