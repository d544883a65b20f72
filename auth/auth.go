package auth

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/auth"

	"github.com/writewithwrabit/tracker/logger"
)

// A private key for context that only this package can access. This is important
// to prevent collisions between different context uses
var userCtxKey = &contextKey{"user"}

type contextKey struct {
	name string
}

// TokenVerifier is implemented by *auth.Client.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// Middleware verifies a Firebase ID token from the Authorization header and
// packs it into the request context. Requests without a token pass through
// anonymously; an invalid token is rejected.
func Middleware(client TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
			if len(t) == 2 && strings.EqualFold(t[0], "Bearer") {
				token, err := client.VerifyIDToken(r.Context(), t[1])
				if err != nil {
					logger.Warn("rejected ID token", "error", err)
					http.Error(w, "Invalid token", http.StatusForbidden)
					return
				}

				logger.Debug("verified ID token", "uid", token.UID)

				// and call the next with our new context
				r = r.WithContext(WithToken(r.Context(), token))
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireUser rejects requests that did not carry a valid token.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserID(r.Context()) == "" {
			http.Error(w, "Access denied", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithToken returns a copy of ctx carrying token.
func WithToken(ctx context.Context, token *auth.Token) context.Context {
	return context.WithValue(ctx, userCtxKey, token)
}

// ForContext finds the user from the context. REQUIRES Middleware to have run.
func ForContext(ctx context.Context) *auth.Token {
	raw, _ := ctx.Value(userCtxKey).(*auth.Token)
	return raw
}

// UserID is the verified Firebase uid, or "" for anonymous requests.
func UserID(ctx context.Context) string {
	token := ForContext(ctx)
	if token == nil {
		return ""
	}
	if token.UID != "" {
		return token.UID
	}
	return token.Subject
}
