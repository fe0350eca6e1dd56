// Package token issues and verifies the access tokens the HTTP layer uses
// to resolve the current actor. Account creation and login live in a
// separate auth system; this side only needs to read what it signed.
package token

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/waypost-dev/waypost/internal/domain"
	internal_errors "github.com/waypost-dev/waypost/internal/errors"
)

type Service struct {
	key []byte
	ttl time.Duration
}

func New(key string, ttl time.Duration) *Service {
	return &Service{key: []byte(key), ttl: ttl}
}

func (s *Service) NewToken(user domain.User) (string, error) {
	claims := jwt.MapClaims{
		"uid":       user.Id,
		"username":  user.Username,
		"email":     user.Email,
		"moderator": user.Moderator,
		"exp":       time.Now().Add(s.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
}

// Decode verifies the token and rebuilds the actor from its claims.
func (s *Service) Decode(tokenStr string) (*domain.User, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.key, nil
	})
	if err != nil || !token.Valid {
		return nil, &internal_errors.ErrorWithStatusCode{
			Message:    "Invalid or expired token",
			StatusCode: http.StatusUnauthorized,
		}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, &internal_errors.ErrorWithStatusCode{
			Message:    "Invalid token claims",
			StatusCode: http.StatusUnauthorized,
		}
	}

	uid, ok := claims["uid"].(float64)
	if !ok {
		return nil, &internal_errors.ErrorWithStatusCode{
			Message:    "Invalid token claims",
			StatusCode: http.StatusUnauthorized,
		}
	}
	username, _ := claims["username"].(string)
	email, _ := claims["email"].(string)
	moderator, _ := claims["moderator"].(bool)

	return &domain.User{
		Id:        int64(uid),
		Username:  username,
		Email:     email,
		Moderator: moderator,
	}, nil
}
