package handler

import (
	"encoding/json"
	"net/http"

	"github.com/waypost-dev/waypost/internal/config"
	"github.com/waypost-dev/waypost/internal/logger"
	"github.com/waypost-dev/waypost/internal/service"
)

type Handler struct {
	thread        service.ThreadService
	reply         service.ReplyService
	like          service.LikeService
	notifications service.NotificationService
	cfg           *config.Config
}

func New(thread service.ThreadService, reply service.ReplyService, like service.LikeService, notifications service.NotificationService, cfg *config.Config) *Handler {
	return &Handler{thread, reply, like, notifications, cfg}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}
