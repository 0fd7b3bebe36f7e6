package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/MKhiriev/ontime/internal/service"
	"github.com/MKhiriev/ontime/internal/utils"
	"github.com/MKhiriev/ontime/models"
	"github.com/go-chi/chi/v5"
)

// parsePage reads the "skip" and "limit" query parameters. Missing values
// default to skip 0 and limit 100; out-of-range values are rejected rather
// than clamped.
func parsePage(r *http.Request) (models.Page, error) {
	page := models.DefaultPage()
	query := r.URL.Query()

	if raw := query.Get("skip"); raw != "" {
		skip, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || skip < 0 {
			return models.Page{}, fmt.Errorf("%w: skip must be a non-negative integer", ErrInvalidPagination)
		}
		page.Skip = uint64(skip)
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || limit < 1 || limit > models.MaxPageLimit {
			return models.Page{}, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidPagination, models.MaxPageLimit)
		}
		page.Limit = uint64(limit)
	}

	return page, nil
}

// resourceID parses the {id} path parameter.
func resourceID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}
	return id, nil
}

// callerAndID returns the resolved caller id and the {id} path parameter,
// writing the error response itself when either is unavailable.
func callerAndID(w http.ResponseWriter, r *http.Request) (ownerID, id int64, ok bool) {
	ownerID, ok = utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, service.ErrAuthenticationFailed)
		return 0, 0, false
	}

	id, err := resourceID(r)
	if err != nil {
		writeError(w, r, err)
		return 0, 0, false
	}

	return ownerID, id, true
}

// caller returns the resolved caller id, writing a 401 when it is missing.
func caller(w http.ResponseWriter, r *http.Request) (int64, bool) {
	ownerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, service.ErrAuthenticationFailed)
	}
	return ownerID, ok
}
