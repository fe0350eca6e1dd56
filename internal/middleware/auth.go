package middleware

import (
	"context"
	"net/http"

	"github.com/waypost-dev/waypost/internal/domain"
	"github.com/waypost-dev/waypost/internal/token"
)

type key int

const userKey key = 0

const accessCookie = "accessToken"

type Auth struct {
	tokens *token.Service
}

func NewAuth(tokens *token.Service) *Auth {
	return &Auth{tokens}
}

// Required rejects requests without a valid access token.
func (a *Auth) Required(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := a.actor(r)
		if err != nil {
			http.Error(w, "Please sign-in", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// Optional resolves the actor when a valid token is present and lets the
// request through anonymously otherwise. Like toggling relies on this:
// logged-out toggles are a silent no-op, not an error.
func (a *Auth) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, err := a.actor(r); err == nil {
			r = r.WithContext(WithUser(r.Context(), user))
		}
		next.ServeHTTP(w, r)
	})
}

func (a *Auth) actor(r *http.Request) (*domain.User, error) {
	cookie, err := r.Cookie(accessCookie)
	if err != nil {
		return nil, err
	}
	return a.tokens.Decode(cookie.Value)
}

func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUserFromContext returns the authenticated actor or nil.
func GetUserFromContext(r *http.Request) *domain.User {
	user, ok := r.Context().Value(userKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}
