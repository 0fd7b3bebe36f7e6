// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, HTTP request and
// response bodies, HTTP client initialization and trace id generation.
package utils

import (
	"context"

	"github.com/MKhiriev/ontime/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// UserCtxKey is the key under which the auth middleware stores the resolved
// caller. Handlers read it with GetUserFromContext.
var UserCtxKey = contextKey("user")

// WithUser returns a copy of ctx carrying user as the resolved caller.
func WithUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, UserCtxKey, user)
}

// GetUserFromContext retrieves the resolved caller from the context.
//
// Returns the user and an ok flag:
//   - ok == true : a user is stored and has a store-assigned id
//   - ok == false: value is missing, has an unexpected type or a zero id
func GetUserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(UserCtxKey).(models.User)
	if !ok || user.ID == 0 {
		return models.User{}, false
	}
	return user, true
}

// GetUserIDFromContext is a shortcut for the id of GetUserFromContext.
//
// Example usage:
//
//	userID, ok := utils.GetUserIDFromContext(ctx)
//	if !ok {
//	    // handle missing user in context
//	}
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	user, ok := GetUserFromContext(ctx)
	return user.ID, ok
}
