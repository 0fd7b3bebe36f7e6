package models

import "time"

// User represents an account entity used for authentication and as the owner
// of todos and notes.
// PasswordHash must never be exposed outside trusted boundaries.
type User struct {
	// ID is the store-assigned identifier. Immutable once created.
	ID int64 `json:"id"`

	// Username is the globally unique login name. Immutable after creation.
	Username string `json:"username"`

	// Email is the globally unique contact address.
	Email string `json:"email"`

	// PasswordHash is the salted bcrypt digest of the user's password.
	// It is never serialized.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the account was registered.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// RegisterRequest is the payload accepted by the registration endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50,excludesall= "`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=1,max=72"`
}

// LoginRequest carries the credentials of a login attempt. It is filled from
// a form-encoded body.
type LoginRequest struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}
