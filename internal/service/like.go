package service

import (
	"net/http"

	"github.com/waypost-dev/waypost/internal/domain"
	internal_errors "github.com/waypost-dev/waypost/internal/errors"
)

type LikeService interface {
	Toggle(actor *domain.User, target domain.LikeTarget) (domain.LikeState, error)
}

type LikeStorage interface {
	// ToggleLike is the atomic insert-if-absent / delete-if-present
	// primitive; concurrent toggles serialize on the (user, target) key.
	ToggleLike(user domain.UserId, target domain.LikeTarget) (domain.LikeState, error)
	// LikeState reports the current state; user may be nil for anonymous
	// readers, which always see liked=false.
	LikeState(user *domain.UserId, target domain.LikeTarget) (domain.LikeState, error)
}

type Like struct {
	storage LikeStorage
}

func NewLike(storage LikeStorage) *Like {
	return &Like{storage}
}

// Toggle flips the (actor, target) like. Logged-out actors get the current
// state back unchanged: no write, no error.
func (s *Like) Toggle(actor *domain.User, target domain.LikeTarget) (domain.LikeState, error) {
	if !target.Kind.Valid() {
		return domain.LikeState{}, &internal_errors.ErrorWithStatusCode{
			Message:    "Unknown like target",
			StatusCode: http.StatusBadRequest,
		}
	}
	if actor == nil {
		return s.storage.LikeState(nil, target)
	}
	return s.storage.ToggleLike(actor.Id, target)
}
