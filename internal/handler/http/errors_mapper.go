package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/ontime/internal/logger"
	"github.com/MKhiriev/ontime/internal/service"
	"github.com/MKhiriev/ontime/internal/utils"
	"github.com/MKhiriev/ontime/internal/validators"
	"github.com/MKhiriev/ontime/models"
)

// Stable values of the "error" field of an error body.
const (
	codeValidation   = "validation_error"
	codeDuplicate    = "duplicate"
	codeUnauthorized = "unauthorized"
	codeNotFound     = "not_found"
	codeInternal     = "internal_error"
)

const (
	msgNotAuthenticated   = "not authenticated"
	msgInvalidCredentials = "could not validate credentials"
	msgInternal           = "internal server error"
)

// errorCategory maps a sentinel error to a response. An empty message means
// the message is derived from the error itself.
type errorCategory struct {
	target  error
	status  int
	code    string
	message string
}

// errorCategories is checked in order; the first match wins. Errors matching
// none of them are storage faults.
var errorCategories = []errorCategory{
	{target: validators.ErrValidation, status: http.StatusBadRequest, code: codeValidation},
	{target: service.ErrInvalidDataProvided, status: http.StatusBadRequest, code: codeValidation},
	{target: utils.ErrInvalidJSON, status: http.StatusBadRequest, code: codeValidation},
	{target: ErrInvalidID, status: http.StatusBadRequest, code: codeValidation},
	{target: ErrInvalidPagination, status: http.StatusBadRequest, code: codeValidation},
	{target: ErrInvalidForm, status: http.StatusBadRequest, code: codeValidation},
	{target: ErrInvalidEncoding, status: http.StatusBadRequest, code: codeValidation},

	{target: service.ErrUsernameTaken, status: http.StatusConflict, code: codeDuplicate, message: "username already registered"},
	{target: service.ErrEmailTaken, status: http.StatusConflict, code: codeDuplicate, message: "email already registered"},
	{target: service.ErrDuplicate, status: http.StatusConflict, code: codeDuplicate, message: "already registered"},

	{target: ErrEmptyAuthorizationHeader, status: http.StatusUnauthorized, code: codeUnauthorized, message: msgNotAuthenticated},
	{target: ErrInvalidAuthorizationHeader, status: http.StatusUnauthorized, code: codeUnauthorized, message: msgNotAuthenticated},
	{target: ErrEmptyToken, status: http.StatusUnauthorized, code: codeUnauthorized, message: msgNotAuthenticated},
	{target: service.ErrAuthenticationFailed, status: http.StatusUnauthorized, code: codeUnauthorized, message: msgInvalidCredentials},

	{target: service.ErrNotFound, status: http.StatusNotFound, code: codeNotFound},
}

// responseForError returns the status code and body for err.
func responseForError(err error) (int, models.ErrorResponse) {
	for _, c := range errorCategories {
		if !errors.Is(err, c.target) {
			continue
		}

		message := c.message
		if message == "" {
			message = deriveMessage(err)
		}
		return c.status, models.ErrorResponse{Error: c.code, Message: message}
	}

	return http.StatusInternalServerError, models.ErrorResponse{Error: codeInternal, Message: msgInternal}
}

func deriveMessage(err error) string {
	var fieldErrs *validators.FieldErrors
	if errors.As(err, &fieldErrs) {
		return fieldErrs.Message()
	}
	return err.Error()
}

// writeError writes the error body for err. Unauthorized responses carry
// the Bearer challenge.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := responseForError(err)
	writeErrorResponse(w, r, err, status, body)
}

// writeErrorMessage is writeError with the message replaced.
func writeErrorMessage(w http.ResponseWriter, r *http.Request, err error, message string) {
	status, body := responseForError(err)
	body.Message = message
	writeErrorResponse(w, r, err, status, body)
}

func writeErrorResponse(w http.ResponseWriter, r *http.Request, err error, status int, body models.ErrorResponse) {
	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Str("category", body.Error).Msg("request failed")
	} else {
		log.Debug().Err(err).Str("category", body.Error).Msg("request rejected")
	}

	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	utils.WriteJSON(w, body, status)
}
