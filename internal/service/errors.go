package service

import (
	"errors"
	"fmt"
)

// Externally visible error categories. Handlers map these (and only these)
// to responses; everything else is a storage fault.
var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrDuplicate     = errors.New("already registered")
	ErrUsernameTaken = fmt.Errorf("username %w", ErrDuplicate)
	ErrEmailTaken    = fmt.Errorf("email %w", ErrDuplicate)

	// ErrAuthenticationFailed covers bad credentials, bad or expired tokens
	// and tokens of users that no longer exist.
	ErrAuthenticationFailed = errors.New("could not validate credentials")

	// ErrNotFound covers both missing resources and resources of other users.
	ErrNotFound = errors.New("not found")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

// Token codec errors. They stay internal: the auth service logs them and
// returns ErrAuthenticationFailed.
var (
	ErrMalformedToken = errors.New("malformed token")
	ErrBadSignature   = errors.New("token signature is invalid")
	ErrTokenExpired   = errors.New("token is expired")

	ErrTokenCreationFailed = errors.New("token creation failed")
	ErrPasswordHashing     = errors.New("password hashing failed")
)
