// Package middleware provides net/http integration for authpair: a guard
// that authenticates the bearer token on every request and injects the
// resulting identity into the request context.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	authpair "github.com/kareemadel/authpair"
)

type identityContextKey struct{}

// IdentityFromContext retrieves the identity stored by [Guard].
func IdentityFromContext(ctx context.Context) (*authpair.Identity, bool) {
	id, ok := ctx.Value(identityContextKey{}).(*authpair.Identity)
	return id, ok
}

// Guard wraps a handler with per-request authentication. A missing header
// and an expired token get their own 401 bodies; every other failure is the
// generic unauthorized response.
func Guard(engine *authpair.Engine) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			token, _ := bearerToken(r.Header.Get("Authorization"))

			identity, err := engine.Authenticate(r.Context(), token)
			if err != nil {
				switch {
				case errors.Is(err, authpair.ErrMissingToken):
					http.Error(w, "missing or invalid authorization header", http.StatusUnauthorized)
				case errors.Is(err, authpair.ErrTokenExpired):
					http.Error(w, "access token expired", http.StatusUnauthorized)
				default:
					http.Error(w, "invalid token or session", http.StatusUnauthorized)
				}
				return
			}

			ctx := context.WithValue(r.Context(), identityContextKey{}, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	token := value[len(bearer):]
	if token == "" {
		return "", false
	}

	return token, true
}
