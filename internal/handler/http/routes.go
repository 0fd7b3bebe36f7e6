package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID, h.withLogging, h.withMetrics)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5, "application/json", "text/plain"), withGzipRequest)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// service routes
	router.Get("/", h.root)
	router.Get("/health", h.health)
	router.Get("/api/version/", h.getServerVersion)
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// everything below talks to storage through one session per request
	router.Group(func(r chi.Router) {
		r.Use(h.withSession)

		// routes without authorization
		r.Post("/auth/register", h.register)
		r.Post("/auth/login", h.login)

		// routes with authorization
		r.Group(func(r chi.Router) {
			r.Use(h.auth)

			r.Get("/auth/me", h.me)
			r.Post("/auth/logout", h.logout)

			r.Route("/todos", func(r chi.Router) {
				r.Post("/", h.createTodo)
				r.Get("/", h.listTodos)
				r.Get("/{id}", h.getTodo)
				r.Put("/{id}", h.updateTodo)
				r.Delete("/{id}", h.deleteTodo)
				r.Patch("/{id}/complete", h.toggleTodo)
			})

			r.Route("/notes", func(r chi.Router) {
				r.Post("/", h.createNote)
				r.Get("/", h.listNotes)
				r.Get("/{id}", h.getNote)
				r.Put("/{id}", h.updateNote)
				r.Delete("/{id}", h.deleteNote)
			})
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, errRouteNotFound)
	})
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
