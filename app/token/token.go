// Package token issues and validates the signed session tokens that carry
// a caller's identity and role.
package token

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Sessions live for 7 days; compromise of a token is bounded only by this window.
const DefaultTTL = 7 * 24 * time.Hour

// ErrInvalid is the single outcome exposed for any validation failure.
// The specific reason is wrapped for logging but never shown to callers.
var ErrInvalid = errors.New("invalid token")

// Reason classifies a validation failure internally.
type Reason int

const (
	ReasonMalformed Reason = iota
	ReasonBadSignature
	ReasonExpired
	ReasonBadClaims
)

func (r Reason) String() string {
	switch r {
	case ReasonMalformed:
		return "malformed"
	case ReasonBadSignature:
		return "bad signature"
	case ReasonExpired:
		return "expired"
	}
	return "bad claims"
}

type InvalidError struct {
	Reason Reason
	cause  error
}

func (e *InvalidError) Error() string { return "invalid token: " + e.Reason.String() }

func (e *InvalidError) Unwrap() error { return ErrInvalid }

type Claims struct {
	UserID uint   `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Identity is the resolved caller attached to a request after validation.
// It is a value type; downstream code receives a copy and cannot mutate
// the authenticated identity.
type Identity struct {
	UserID uint
	Role   string
}

func (i Identity) IsAdmin() bool { return i.Role == "admin" }

func (c *Claims) Identity() Identity { return Identity{UserID: c.UserID, Role: c.Role} }

type Signer struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

func (s *Signer) ttl() time.Duration {
	if s.TTL != 0 {
		return s.TTL
	}
	return DefaultTTL
}

func (s *Signer) Sign(userID uint, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID, Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl())),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.Secret)
}

// Parse validates signature and expiry. All failures surface as ErrInvalid;
// use AsInvalid to recover the internal reason.
func (s *Signer) Parse(tokenStr string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, &InvalidError{Reason: classify(err), cause: err}
	}
	claims, ok := t.Claims.(*Claims)
	if !ok || !t.Valid {
		return nil, &InvalidError{Reason: ReasonBadClaims, cause: jwt.ErrTokenInvalidClaims}
	}
	return claims, nil
}

func classify(err error) Reason {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ReasonExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ReasonBadSignature
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ReasonMalformed
	}
	return ReasonBadClaims
}

// AsInvalid extracts the internal failure detail from a Parse error.
func AsInvalid(err error) (*InvalidError, bool) {
	var ie *InvalidError
	ok := errors.As(err, &ie)
	return ie, ok
}
