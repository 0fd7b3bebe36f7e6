package http

import (
	"net/http"

	"github.com/MKhiriev/ontime/internal/logger"
)

// withSession opens one storage session per request, stores it in the
// request context and releases it when the handler returns or panics.
func (h *Handler) withSession(next http.Handler) http.Handler {
	if h.sessions == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, release, err := h.sessions.OpenSession(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		defer func() {
			if err := release(); err != nil {
				logger.FromRequest(r).Warn().Err(err).Msg("storage session release failed")
			}
		}()

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
