package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waypost-dev/waypost/internal/domain"
	"github.com/waypost-dev/waypost/internal/middleware/ratelimiter"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	user := &domain.User{Id: 1, Username: "janedoe"}

	t.Run("second request within the window is rejected", func(t *testing.T) {
		mw := RateLimit(ratelimiter.New(0.001, 1, time.Hour), UserIdentity)(okHandler())
		r := httptest.NewRequest(http.MethodPost, "/v1/threads", nil)
		r = r.WithContext(WithUser(r.Context(), user))

		rec := httptest.NewRecorder()
		mw.ServeHTTP(rec, r)
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = httptest.NewRecorder()
		mw.ServeHTTP(rec, r)
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	})

	t.Run("moderators are exempt", func(t *testing.T) {
		mw := RateLimit(ratelimiter.New(0.001, 1, time.Hour), UserIdentity)(okHandler())
		moderator := &domain.User{Id: 2, Moderator: true}
		r := httptest.NewRequest(http.MethodPost, "/v1/threads", nil)
		r = r.WithContext(WithUser(r.Context(), moderator))

		for i := 0; i < 5; i++ {
			rec := httptest.NewRecorder()
			mw.ServeHTTP(rec, r)
			assert.Equal(t, http.StatusOK, rec.Code)
		}
	})

	t.Run("unresolvable identity is a bad request", func(t *testing.T) {
		mw := RateLimit(ratelimiter.OncePerSecond(), UserIdentity)(okHandler())
		rec := httptest.NewRecorder()
		mw.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/threads", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestIdentities(t *testing.T) {
	t.Run("user identity", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r = r.WithContext(WithUser(r.Context(), &domain.User{Id: 42}))
		id, err := UserIdentity(r)
		require.NoError(t, err)
		assert.Equal(t, "user_42", id)
	})

	t.Run("user identity without an actor", func(t *testing.T) {
		_, err := UserIdentity(httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Error(t, err)
	})

	t.Run("ip identity", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = "203.0.113.9:51234"
		id, err := IPIdentity(r)
		require.NoError(t, err)
		assert.Equal(t, "203.0.113.9", id)
	})

	t.Run("ip identity rejects garbage", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = "not-an-address"
		_, err := IPIdentity(r)
		assert.Error(t, err)
	})
}
