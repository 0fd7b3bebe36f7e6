package service

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/ontime/internal/config"
	"github.com/MKhiriev/ontime/models"
	"github.com/golang-jwt/jwt/v5"
)

// jwtCodec is the HS256 JWT implementation of TokenCodec. The subject claim
// carries the username; iss must match the configured issuer.
type jwtCodec struct {
	signKey []byte
	issuer  string
	now     func() time.Time
}

// CodecOption customizes a TokenCodec.
type CodecOption func(*jwtCodec)

// WithClock replaces time.Now as the codec's time source.
func WithClock(now func() time.Time) CodecOption {
	return func(c *jwtCodec) {
		c.now = now
	}
}

// NewTokenCodec builds a TokenCodec from the immutable app configuration.
func NewTokenCodec(cfg config.App, opts ...CodecOption) TokenCodec {
	c := &jwtCodec{
		signKey: []byte(cfg.TokenSignKey),
		issuer:  cfg.TokenIssuer,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Issue signs a token for subject that expires ttl after the current time.
func (c *jwtCodec) Issue(subject string, ttl time.Duration) (models.Token, error) {
	if subject == "" || ttl <= 0 || len(c.signKey) == 0 {
		return models.Token{}, fmt.Errorf("%w: invalid params for issuing token", ErrTokenCreationFailed)
	}

	now := c.now()
	exp := now.Add(ttl)
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   c.issuer,
			Subject:  subject,
			IssuedAt: jwt.NewNumericDate(now),
		},
		Expiry: exactTime{exp},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.signKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	token := models.Token{RegisteredClaims: claims.RegisteredClaims}
	token.ExpiresAt = &jwt.NumericDate{Time: exp}
	token.SignedString = signed

	return token, nil
}

// Verify checks signature, algorithm, issuer and expiry of tokenString and
// returns its subject.
//
// The HMAC over the first two segments is checked before anything is
// decoded, so any change to the header, payload or signature of an issued
// token is reported as ErrBadSignature rather than as a decoding problem.
// Decoding is strict: a signature whose unused trailing bits are not zero is
// rejected even though it decodes to the same bytes.
func (c *jwtCodec) Verify(tokenString string) (string, error) {
	segments := strings.Split(tokenString, ".")
	if len(segments) != 3 {
		return "", fmt.Errorf("%w: token must have three segments", ErrMalformedToken)
	}

	signature, err := base64.RawURLEncoding.Strict().DecodeString(segments[2])
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBadSignature, err)
	}
	signingString := segments[0] + "." + segments[1]
	if err := jwt.SigningMethodHS256.Verify(signingString, signature, c.signKey); err != nil {
		return "", fmt.Errorf("%w: %w", ErrBadSignature, err)
	}

	var claims tokenClaims

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
		jwt.WithStrictDecoding(),
	}
	if c.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(c.issuer))
	}

	_, err = jwt.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return c.signKey, nil
	}, parserOpts...)
	if err != nil {
		return "", classifyJWTError(err)
	}

	if claims.Subject == "" {
		return "", fmt.Errorf("%w: empty subject", ErrMalformedToken)
	}

	return claims.Subject, nil
}

// classifyJWTError folds jwt's error tree into the three codec errors.
func classifyJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %w", ErrMalformedToken, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable),
		errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return fmt.Errorf("%w: %w", ErrBadSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", ErrTokenExpired, err)
	default:
		return fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}
}

// tokenClaims carries exp at nanosecond precision. jwt.NumericDate is cut to
// jwt.TimePrecision (one second) and decoded through float64, either of which
// moves exp away from issue time + ttl.
type tokenClaims struct {
	jwt.RegisteredClaims
	Expiry exactTime `json:"exp"`
}

// GetExpirationTime implements jwt.Claims.
func (c tokenClaims) GetExpirationTime() (*jwt.NumericDate, error) {
	if c.Expiry.IsZero() {
		return nil, nil
	}
	return &jwt.NumericDate{Time: c.Expiry.Time}, nil
}

// exactTime is a NumericDate that keeps every fractional digit. Whole
// seconds are written without a fraction.
type exactTime struct {
	time.Time
}

func (e exactTime) MarshalJSON() ([]byte, error) {
	if e.IsZero() {
		return []byte("null"), nil
	}

	out := strconv.FormatInt(e.Unix(), 10)
	if nsec := e.Nanosecond(); nsec != 0 {
		out += "." + strings.TrimRight(fmt.Sprintf("%09d", nsec), "0")
	}
	return []byte(out), nil
}

func (e *exactTime) UnmarshalJSON(b []byte) error {
	var number json.Number
	if err := json.Unmarshal(b, &number); err != nil {
		return err
	}
	if number == "" {
		*e = exactTime{}
		return nil
	}

	whole, frac, _ := strings.Cut(number.String(), ".")
	sec, err := strconv.ParseUint(whole, 10, 63)
	if err != nil {
		return fmt.Errorf("invalid numeric date %q: %w", number, err)
	}

	var nsec int64
	if frac != "" {
		if len(frac) > 9 {
			frac = frac[:9]
		}
		frac += strings.Repeat("0", 9-len(frac))
		if nsec, err = strconv.ParseInt(frac, 10, 64); err != nil {
			return fmt.Errorf("invalid numeric date %q: %w", number, err)
		}
	}

	*e = exactTime{time.Unix(int64(sec), nsec)}
	return nil
}
