package models

import "github.com/golang-jwt/jwt/v5"

// TokenTypeBearer is the only token type issued by the server.
const TokenTypeBearer = "bearer"

// Token is a signed access token together with the claims it was built from.
//
// It embeds the [jwt.RegisteredClaims] the token was signed with; the subject
// claim holds the username.
type Token struct {
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token
	// (base64url-encoded header.payload.signature).
	SignedString string `json:"-"`
}

// Username returns the subject claim.
func (t *Token) Username() string {
	return t.Subject
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}

// TokenResponse is the body returned by a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
