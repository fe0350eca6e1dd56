package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/waypost-dev/waypost/internal/domain"
	mw "github.com/waypost-dev/waypost/internal/middleware"
)

type NotificationsResponse struct {
	Notifications []domain.Notification `json:"notifications"`
}

func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.notifications.List(mw.GetUserFromContext(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, NotificationsResponse{Notifications: notifications})
}

func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, err := parseIntParam(chi.URLParam(r, "notification"), "notification ID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.notifications.MarkRead(mw.GetUserFromContext(r), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
