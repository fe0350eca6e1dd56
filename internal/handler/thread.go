package handler

import (
	"bytes"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/waypost-dev/waypost/internal/domain"
	mw "github.com/waypost-dev/waypost/internal/middleware"
)

type CreateThreadRequest struct {
	Subject string         `json:"subject" validate:"required"`
	Body    string         `json:"body" validate:"required"`
	Slug    string         `json:"slug"`
	Tags    []domain.TagId `json:"tags"`
}

type EditThreadRequest struct {
	Subject string         `json:"subject" validate:"required"`
	Body    string         `json:"body" validate:"required"`
	Tags    []domain.TagId `json:"tags"`
}

type DeleteRequest struct {
	Reason string `json:"reason"`
}

type ThreadResponse struct {
	Thread domain.Thread `json:"thread"`
}

func (h *Handler) CreateThread(w http.ResponseWriter, r *http.Request) {
	user := mw.GetUserFromContext(r)

	var body CreateThreadRequest
	if err := decodeValidate(r.Body, &body); err != nil {
		writeError(w, err)
		return
	}

	thread, err := h.thread.Create(user, domain.ThreadCreationData{
		Subject: body.Subject,
		Body:    body.Body,
		Slug:    body.Slug,
		Tags:    body.Tags,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, ThreadResponse{Thread: thread})
}

func (h *Handler) GetThread(w http.ResponseWriter, r *http.Request) {
	threadId, err := parseIntParam(chi.URLParam(r, "thread"), "thread ID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	thread, err := h.thread.Get(threadId)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ThreadResponse{Thread: thread})
}

func (h *Handler) EditThread(w http.ResponseWriter, r *http.Request) {
	threadId, err := parseIntParam(chi.URLParam(r, "thread"), "thread ID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	user := mw.GetUserFromContext(r)

	var body EditThreadRequest
	if err := decodeValidate(r.Body, &body); err != nil {
		writeError(w, err)
		return
	}

	if err := h.thread.Edit(user, threadId, domain.ThreadUpdateData{
		Subject: body.Subject,
		Body:    body.Body,
		Tags:    body.Tags,
	}); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeleteThread(w http.ResponseWriter, r *http.Request) {
	threadId, err := parseIntParam(chi.URLParam(r, "thread"), "thread ID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	user := mw.GetUserFromContext(r)

	// reason is optional; tolerate an empty body
	var body DeleteRequest
	if raw, err := io.ReadAll(r.Body); err == nil && len(raw) > 0 {
		if err := decodeValidate(bytes.NewReader(raw), &body); err != nil {
			writeError(w, err)
			return
		}
	}

	if err := h.thread.Delete(user, threadId, body.Reason); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) MarkSolution(w http.ResponseWriter, r *http.Request) {
	threadId, err := parseIntParam(chi.URLParam(r, "thread"), "thread ID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	replyId, err := parseIntParam(chi.URLParam(r, "reply"), "reply ID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	user := mw.GetUserFromContext(r)

	if err := h.thread.MarkSolution(user, threadId, replyId); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *Handler) UnmarkSolution(w http.ResponseWriter, r *http.Request) {
	threadId, err := parseIntParam(chi.URLParam(r, "thread"), "thread ID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	user := mw.GetUserFromContext(r)

	if err := h.thread.UnmarkSolution(user, threadId); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}
