package middleware

import (
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/waypost-dev/waypost/internal/middleware/ratelimiter"
)

// RateLimit caps requests per identity at the HTTP edge. Moderators are
// exempt; they already bypass the domain-level limits.
func RateLimit(rl *ratelimiter.Limiter, identity func(r *http.Request) (string, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user := GetUserFromContext(r); user != nil && user.Moderator {
				next.ServeHTTP(w, r)
				return
			}

			id, err := identity(r)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			if !rl.Allow(id) {
				http.Error(w, "Rate limit exceeded, try again later", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// UserIdentity keys the limiter by the authenticated user.
func UserIdentity(r *http.Request) (string, error) {
	user := GetUserFromContext(r)
	if user == nil {
		return "", errors.New("can't resolve user identity")
	}
	return fmt.Sprintf("user_%d", user.Id), nil
}

// IPIdentity keys the limiter by the client address. Only RemoteAddr is
// trusted; forwarded headers are spoofable without a reverse proxy.
func IPIdentity(r *http.Request) (string, error) {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	if net.ParseIP(ip) == nil {
		return "", fmt.Errorf("invalid IP address: %s", ip)
	}
	return ip, nil
}
