package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/waypost-dev/waypost/internal/domain"
	mw "github.com/waypost-dev/waypost/internal/middleware"
)

// ToggleLike flips the caller's like on a thread or reply and returns the
// resulting state. Anonymous callers get the current state back unchanged.
func (h *Handler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	targetId, err := parseIntParam(chi.URLParam(r, "id"), "target ID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	target := domain.LikeTarget{
		Kind: domain.TargetKind(chi.URLParam(r, "kind")),
		Id:   targetId,
	}

	state, err := h.like.Toggle(mw.GetUserFromContext(r), target)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, state)
}
