package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/ontime/internal/config"
	"github.com/MKhiriev/ontime/internal/logger"
	"github.com/MKhiriev/ontime/internal/metrics"
	"github.com/MKhiriev/ontime/internal/store"
	"github.com/MKhiriev/ontime/models"
)

// dummyPassword is hashed once at construction. Logins for unknown users are
// compared against its digest so they cost one bcrypt comparison as well.
const dummyPassword = "ontime: no such user"

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification and bearer token
// resolution using a UserRepository for persistence, a PasswordHasher for
// digests and a TokenCodec for tokens.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	hasher PasswordHasher
	codec  TokenCodec

	// tokenDuration controls how long a newly issued token remains valid.
	tokenDuration time.Duration

	// dummyDigest is the digest of dummyPassword.
	dummyDigest string

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository,
// hasher and codec, with the token lifetime taken from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, hasher PasswordHasher, codec TokenCodec, cfg config.App, logger *logger.Logger) AuthService {
	dummyDigest, err := hasher.Hash(dummyPassword)
	if err != nil {
		logger.Warn().Err(err).Msg("could not prepare dummy digest")
	}

	return &authService{
		userRepository: userRepository,
		hasher:         hasher,
		codec:          codec,
		tokenDuration:  cfg.TokenDuration,
		dummyDigest:    dummyDigest,
		logger:         logger,
	}
}

// RegisterUser creates a new user account.
//
// Username collisions are checked before email collisions, so a request that
// collides on both reports the username. A concurrent registration that slips
// past the pre-checks is rejected by the store's unique constraints and
// reported with the same errors.
//
// Returns the persisted user (with a store-assigned ID) or:
//   - ErrInvalidDataProvided if a field is empty or the password cannot be hashed.
//   - ErrUsernameTaken / ErrEmailTaken, both matching ErrDuplicate.
//   - A wrapped storage error for any other store failure.
func (a *authService) RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if req.Username == "" || req.Email == "" || req.Password == "" {
		log.Error().Str("username", req.Username).Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	if err := a.ensureAvailable(ctx, req); err != nil {
		return models.User{}, a.registrationFailed(ctx, req, err)
	}

	digest, err := a.hasher.Hash(req.Password)
	if err != nil {
		return models.User{}, a.registrationFailed(ctx, req, err)
	}

	created, err := a.userRepository.CreateUser(ctx, models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: digest,
	})
	if err != nil {
		return models.User{}, a.registrationFailed(ctx, req, translateDuplicate(err))
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	log.Info().Int64("user_id", created.ID).Str("username", created.Username).Msg("user registered")

	return created, nil
}

// ensureAvailable runs the username and email pre-checks in that order.
func (a *authService) ensureAvailable(ctx context.Context, req models.RegisterRequest) error {
	_, err := a.userRepository.FindUserByUsername(ctx, req.Username)
	switch {
	case err == nil:
		return ErrUsernameTaken
	case !errors.Is(err, store.ErrNoUserWasFound):
		return fmt.Errorf("username lookup failed: %w", err)
	}

	_, err = a.userRepository.FindUserByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return ErrEmailTaken
	case !errors.Is(err, store.ErrNoUserWasFound):
		return fmt.Errorf("email lookup failed: %w", err)
	}

	return nil
}

func (a *authService) registrationFailed(ctx context.Context, req models.RegisterRequest, err error) error {
	log := logger.FromContext(ctx)

	if errors.Is(err, ErrDuplicate) {
		metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
		log.Info().Str("username", req.Username).Err(err).Msg("registration rejected")
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("error").Inc()
	log.Err(err).Str("username", req.Username).Msg("user creation ended with error")
	if errors.Is(err, ErrInvalidDataProvided) {
		return err
	}
	return fmt.Errorf("user creation ended with error: %w", err)
}

// translateDuplicate maps store unique violations onto the registration
// errors returned by the pre-checks.
func translateDuplicate(err error) error {
	switch {
	case errors.Is(err, store.ErrUsernameAlreadyExists):
		return fmt.Errorf("%w: %w", ErrUsernameTaken, err)
	case errors.Is(err, store.ErrEmailAlreadyExists):
		return fmt.Errorf("%w: %w", ErrEmailTaken, err)
	case errors.Is(err, store.ErrAlreadyExists):
		return fmt.Errorf("%w: %w", ErrDuplicate, err)
	default:
		return err
	}
}

// Login authenticates an existing user and issues an access token.
//
// An unknown username and a wrong password produce the same
// ErrAuthenticationFailed, and both cost one password comparison.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.Token, error) {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.FindUserByUsername(ctx, req.Username)
	if err != nil && !errors.Is(err, store.ErrNoUserWasFound) {
		log.Err(err).Str("username", req.Username).Msg("user search by username failed")
		return models.Token{}, fmt.Errorf("user search by username failed: %w", err)
	}

	digest := user.PasswordHash
	if err != nil {
		digest = a.dummyDigest
	}

	if !a.hasher.Verify(req.Password, digest) || err != nil {
		metrics.AuthFailuresTotal.WithLabelValues(metrics.ReasonWrongCredentials).Inc()
		log.Info().Str("username", req.Username).Bool("known_user", err == nil).Msg("login rejected")
		return models.Token{}, ErrAuthenticationFailed
	}

	token, err := a.codec.Issue(user.Username, a.tokenDuration)
	if err != nil {
		log.Err(err).Int64("user_id", user.ID).Msg("token issuing failed")
		return models.Token{}, err
	}

	metrics.LoginsTotal.Inc()
	log.Debug().Int64("user_id", user.ID).Msg("user logged in")

	return token, nil
}

// ResolveUser maps a bearer token to the user it was issued for.
//
// Every rejection is reported as ErrAuthenticationFailed; the specific reason
// is only logged and counted. Storage failures other than a missing user are
// returned wrapped so they surface as server errors.
func (a *authService) ResolveUser(ctx context.Context, token string) (models.User, error) {
	log := logger.FromContext(ctx)

	username, err := a.codec.Verify(token)
	if err != nil {
		reason := tokenFailureReason(err)
		metrics.AuthFailuresTotal.WithLabelValues(reason).Inc()
		log.Info().Str("reason", reason).Err(err).Msg("token rejected")
		return models.User{}, ErrAuthenticationFailed
	}

	user, err := a.userRepository.FindUserByUsername(ctx, username)
	if errors.Is(err, store.ErrNoUserWasFound) {
		metrics.AuthFailuresTotal.WithLabelValues(metrics.ReasonUnknownUser).Inc()
		log.Info().Str("reason", metrics.ReasonUnknownUser).Str("username", username).Msg("token rejected")
		return models.User{}, ErrAuthenticationFailed
	}
	if err != nil {
		log.Err(err).Str("username", username).Msg("user search by username failed")
		return models.User{}, fmt.Errorf("user search by username failed: %w", err)
	}

	return user, nil
}

func tokenFailureReason(err error) string {
	switch {
	case errors.Is(err, ErrTokenExpired):
		return metrics.ReasonTokenExpired
	case errors.Is(err, ErrBadSignature):
		return metrics.ReasonBadSignature
	default:
		return metrics.ReasonMalformedToken
	}
}
