package handler

import (
	"bytes"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/waypost-dev/waypost/internal/domain"
	mw "github.com/waypost-dev/waypost/internal/middleware"
)

type CreateReplyRequest struct {
	Body string `json:"body" validate:"required"`
}

type ReplyResponse struct {
	Reply domain.Reply `json:"reply"`
}

func (h *Handler) CreateReply(w http.ResponseWriter, r *http.Request) {
	threadId, err := parseIntParam(chi.URLParam(r, "thread"), "thread ID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	user := mw.GetUserFromContext(r)

	var body CreateReplyRequest
	if err := decodeValidate(r.Body, &body); err != nil {
		writeError(w, err)
		return
	}

	reply, err := h.reply.Create(user, threadId, body.Body)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, ReplyResponse{Reply: reply})
}

func (h *Handler) DeleteReply(w http.ResponseWriter, r *http.Request) {
	replyId, err := parseIntParam(chi.URLParam(r, "reply"), "reply ID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	user := mw.GetUserFromContext(r)

	var body DeleteRequest
	if raw, err := io.ReadAll(r.Body); err == nil && len(raw) > 0 {
		if err := decodeValidate(bytes.NewReader(raw), &body); err != nil {
			writeError(w, err)
			return
		}
	}

	if err := h.reply.Delete(user, replyId, body.Reason); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
