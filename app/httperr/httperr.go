// Package httperr maps the service error taxonomy onto HTTP responses.
package httperr

import (
	"encoding/json"
	"errors"
	"net/http"
)

type Kind int

const (
	KindValidation Kind = iota
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindConflict
	KindInternal
)

type Error struct {
	Kind    Kind
	Message string
	Err     error // internal cause, logged but never serialized
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func Validation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }

// Unauthenticated marks a request that presented no credentials at all,
// as opposed to invalid ones.
func Unauthenticated() *Error {
	return &Error{Kind: KindAuthentication, Message: "authentication required"}
}

// Authentication carries a uniform client message regardless of cause.
func Authentication(cause error) *Error {
	return &Error{Kind: KindAuthentication, Message: "invalid token", Err: cause}
}

func Forbidden(msg string) *Error { return &Error{Kind: KindAuthorization, Message: msg} }

func NotFound(msg string) *Error { return &Error{Kind: KindNotFound, Message: msg} }

func Conflict(msg string) *Error { return &Error{Kind: KindConflict, Message: msg} }

// Internal hides the cause behind a generic message.
func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Message: "internal error", Err: cause}
}

// Write serializes err as {"error": message} with the mapped status code.
// Errors outside the taxonomy are treated as internal.
func Write(w http.ResponseWriter, err error) {
	var he *Error
	if !errors.As(err, &he) {
		he = Internal(err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.Status())
	_ = json.NewEncoder(w).Encode(map[string]string{"error": he.Message})
}
