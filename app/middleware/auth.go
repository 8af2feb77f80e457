package middleware

import (
	"context"
	"net/http"
	"strings"

	"taskboard/app/httperr"
	"taskboard/app/token"
	"taskboard/global"
)

type ctxKey int

const identityKey ctxKey = 1

type Auth struct{ Signer *token.Signer }

// RequireAuth rejects requests without a valid bearer token and attaches
// the resolved identity to the request context.
func (a *Auth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident, err := a.resolve(r)
		if err != nil {
			httperr.Write(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), *ident)))
	})
}

// RequireAdmin additionally gates on the admin role. Role failures are
// 403, distinct from the 401 of a missing or invalid token.
func (a *Auth) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident, err := a.resolve(r)
		if err != nil {
			httperr.Write(w, err)
			return
		}
		if !ident.IsAdmin() {
			httperr.Write(w, httperr.Forbidden("admin role required"))
			return
		}
		next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), *ident)))
	})
}

// OptionalAuth lets anonymous requests through but still validates and
// attaches a token when one is present. Used by self-service signup,
// where an admin token unlocks admin provisioning.
func (a *Auth) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			next.ServeHTTP(w, r)
			return
		}
		ident, err := a.resolve(r)
		if err != nil {
			httperr.Write(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), *ident)))
	})
}

func (a *Auth) resolve(r *http.Request) (*token.Identity, error) {
	authz := r.Header.Get("Authorization")
	if authz == "" {
		return nil, httperr.Unauthenticated()
	}
	if !strings.HasPrefix(authz, "Bearer ") {
		return nil, httperr.Authentication(token.ErrInvalid)
	}
	claims, err := a.Signer.Parse(strings.TrimPrefix(authz, "Bearer "))
	if err != nil {
		// The client always sees the same message; the reason stays in the logs.
		if ie, ok := token.AsInvalid(err); ok {
			global.Logger.Debug().Str("reason", ie.Reason.String()).Str("path", r.URL.Path).Msg("token rejected")
		}
		return nil, httperr.Authentication(err)
	}
	ident := claims.Identity()
	return &ident, nil
}

func withIdentity(ctx context.Context, ident token.Identity) context.Context {
	return context.WithValue(ctx, identityKey, ident)
}

// GetIdentity returns the identity resolved by the auth middleware.
func GetIdentity(ctx context.Context) (token.Identity, bool) {
	ident, ok := ctx.Value(identityKey).(token.Identity)
	return ident, ok
}
