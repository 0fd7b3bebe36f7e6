package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/ontime/internal/logger"
	"github.com/MKhiriev/ontime/internal/service"
	"github.com/MKhiriev/ontime/internal/utils"
	"github.com/MKhiriev/ontime/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Debug().Int64("id", registeredUser.ID).Msg("user successfully registered")

	utils.WriteJSON(w, registeredUser, http.StatusCreated)
}

// login accepts an OAuth2 password-style form body with "username" and
// "password" fields and answers with a bearer token.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidForm, err))
		return
	}

	token, err := h.services.AuthService.Login(ctx, models.LoginRequest{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	})
	if errors.Is(err, service.ErrAuthenticationFailed) {
		writeErrorMessage(w, r, err, "incorrect username or password")
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.TokenResponse{
		AccessToken: token.String(),
		TokenType:   models.TokenTypeBearer,
	}, http.StatusOK)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, r, service.ErrAuthenticationFailed)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

// logout only acknowledges: tokens are stateless and stay valid until they
// expire, so the client is expected to discard its token.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.MessageResponse{Message: "successfully logged out"}, http.StatusOK)
}
