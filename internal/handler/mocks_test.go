package handler

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"

	"github.com/waypost-dev/waypost/internal/config"
	"github.com/waypost-dev/waypost/internal/domain"
	mw "github.com/waypost-dev/waypost/internal/middleware"
)

// --- Mocks ---

type MockThreadService struct {
	CreateFunc         func(actor *domain.User, data domain.ThreadCreationData) (domain.Thread, error)
	GetFunc            func(id domain.ThreadId) (domain.Thread, error)
	EditFunc           func(actor *domain.User, id domain.ThreadId, data domain.ThreadUpdateData) error
	DeleteFunc         func(actor *domain.User, id domain.ThreadId, reason string) error
	MarkSolutionFunc   func(actor *domain.User, threadId domain.ThreadId, replyId domain.ReplyId) error
	UnmarkSolutionFunc func(actor *domain.User, threadId domain.ThreadId) error
}

func (m *MockThreadService) Create(actor *domain.User, data domain.ThreadCreationData) (domain.Thread, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(actor, data)
	}
	return domain.Thread{Id: 1, Subject: data.Subject, Body: data.Body}, nil
}

func (m *MockThreadService) Get(id domain.ThreadId) (domain.Thread, error) {
	if m.GetFunc != nil {
		return m.GetFunc(id)
	}
	return domain.Thread{Id: id}, nil
}

func (m *MockThreadService) Edit(actor *domain.User, id domain.ThreadId, data domain.ThreadUpdateData) error {
	if m.EditFunc != nil {
		return m.EditFunc(actor, id, data)
	}
	return nil
}

func (m *MockThreadService) Delete(actor *domain.User, id domain.ThreadId, reason string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(actor, id, reason)
	}
	return nil
}

func (m *MockThreadService) MarkSolution(actor *domain.User, threadId domain.ThreadId, replyId domain.ReplyId) error {
	if m.MarkSolutionFunc != nil {
		return m.MarkSolutionFunc(actor, threadId, replyId)
	}
	return nil
}

func (m *MockThreadService) UnmarkSolution(actor *domain.User, threadId domain.ThreadId) error {
	if m.UnmarkSolutionFunc != nil {
		return m.UnmarkSolutionFunc(actor, threadId)
	}
	return nil
}

type MockReplyService struct {
	CreateFunc func(actor *domain.User, threadId domain.ThreadId, body string) (domain.Reply, error)
	GetFunc    func(id domain.ReplyId) (domain.Reply, error)
	DeleteFunc func(actor *domain.User, id domain.ReplyId, reason string) error
}

func (m *MockReplyService) Create(actor *domain.User, threadId domain.ThreadId, body string) (domain.Reply, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(actor, threadId, body)
	}
	return domain.Reply{Id: 1, ThreadId: threadId, Body: body}, nil
}

func (m *MockReplyService) Get(id domain.ReplyId) (domain.Reply, error) {
	if m.GetFunc != nil {
		return m.GetFunc(id)
	}
	return domain.Reply{Id: id}, nil
}

func (m *MockReplyService) Delete(actor *domain.User, id domain.ReplyId, reason string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(actor, id, reason)
	}
	return nil
}

type MockLikeService struct {
	ToggleFunc func(actor *domain.User, target domain.LikeTarget) (domain.LikeState, error)
}

func (m *MockLikeService) Toggle(actor *domain.User, target domain.LikeTarget) (domain.LikeState, error) {
	if m.ToggleFunc != nil {
		return m.ToggleFunc(actor, target)
	}
	return domain.LikeState{Liked: true, Count: 1}, nil
}

type MockNotificationService struct {
	ListFunc     func(actor *domain.User) ([]domain.Notification, error)
	MarkReadFunc func(actor *domain.User, id domain.NotificationId) error
}

func (m *MockNotificationService) List(actor *domain.User) ([]domain.Notification, error) {
	if m.ListFunc != nil {
		return m.ListFunc(actor)
	}
	return nil, nil
}

func (m *MockNotificationService) MarkRead(actor *domain.User, id domain.NotificationId) error {
	if m.MarkReadFunc != nil {
		return m.MarkReadFunc(actor, id)
	}
	return nil
}

// --- Helpers ---

type fixture struct {
	thread        *MockThreadService
	reply         *MockReplyService
	like          *MockLikeService
	notifications *MockNotificationService
	handler       *Handler
}

func newFixture() *fixture {
	f := &fixture{
		thread:        &MockThreadService{},
		reply:         &MockReplyService{},
		like:          &MockLikeService{},
		notifications: &MockNotificationService{},
	}
	f.handler = New(f.thread, f.reply, f.like, f.notifications, &config.Config{})
	return f
}

// withRouteParams attaches chi URL params the way the router would.
func withRouteParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func withActor(r *http.Request, user *domain.User) *http.Request {
	return r.WithContext(mw.WithUser(r.Context(), user))
}

func do(h http.HandlerFunc, r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, r)
	return rec
}
