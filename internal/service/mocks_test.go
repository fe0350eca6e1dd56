package service

import (
	"time"

	"github.com/waypost-dev/waypost/internal/domain"
)

// --- Mocks ---

type MockThreadStorage struct {
	CreateThreadFunc     func(data domain.ThreadCreationData) (domain.Thread, error)
	GetThreadFunc        func(id domain.ThreadId) (domain.Thread, error)
	UpdateThreadFunc     func(id domain.ThreadId, data domain.ThreadUpdateData) error
	DeleteThreadFunc     func(id domain.ThreadId) error
	ThreadCountSinceFunc func(author domain.UserId, since time.Time) (int, error)
	SetSolutionFunc      func(threadId domain.ThreadId, replyId domain.ReplyId) error
	ClearSolutionFunc    func(threadId domain.ThreadId) error
}

func (m *MockThreadStorage) CreateThread(data domain.ThreadCreationData) (domain.Thread, error) {
	if m.CreateThreadFunc != nil {
		return m.CreateThreadFunc(data)
	}
	return domain.Thread{Id: 1, Subject: data.Subject, Body: data.Body, Author: data.Author}, nil
}

func (m *MockThreadStorage) GetThread(id domain.ThreadId) (domain.Thread, error) {
	if m.GetThreadFunc != nil {
		return m.GetThreadFunc(id)
	}
	return domain.Thread{Id: id}, nil
}

func (m *MockThreadStorage) UpdateThread(id domain.ThreadId, data domain.ThreadUpdateData) error {
	if m.UpdateThreadFunc != nil {
		return m.UpdateThreadFunc(id, data)
	}
	return nil
}

func (m *MockThreadStorage) DeleteThread(id domain.ThreadId) error {
	if m.DeleteThreadFunc != nil {
		return m.DeleteThreadFunc(id)
	}
	return nil
}

func (m *MockThreadStorage) ThreadCountSince(author domain.UserId, since time.Time) (int, error) {
	if m.ThreadCountSinceFunc != nil {
		return m.ThreadCountSinceFunc(author, since)
	}
	return 0, nil
}

func (m *MockThreadStorage) SetSolution(threadId domain.ThreadId, replyId domain.ReplyId) error {
	if m.SetSolutionFunc != nil {
		return m.SetSolutionFunc(threadId, replyId)
	}
	return nil
}

func (m *MockThreadStorage) ClearSolution(threadId domain.ThreadId) error {
	if m.ClearSolutionFunc != nil {
		return m.ClearSolutionFunc(threadId)
	}
	return nil
}

type MockReplyStorage struct {
	CreateReplyFunc func(data domain.ReplyCreationData) (domain.Reply, error)
	GetReplyFunc    func(id domain.ReplyId) (domain.Reply, error)
	DeleteReplyFunc func(id domain.ReplyId) error
}

func (m *MockReplyStorage) CreateReply(data domain.ReplyCreationData) (domain.Reply, error) {
	if m.CreateReplyFunc != nil {
		return m.CreateReplyFunc(data)
	}
	return domain.Reply{Id: 1, ThreadId: data.ThreadId, Body: data.Body, Author: data.Author}, nil
}

func (m *MockReplyStorage) GetReply(id domain.ReplyId) (domain.Reply, error) {
	if m.GetReplyFunc != nil {
		return m.GetReplyFunc(id)
	}
	return domain.Reply{Id: id}, nil
}

func (m *MockReplyStorage) DeleteReply(id domain.ReplyId) error {
	if m.DeleteReplyFunc != nil {
		return m.DeleteReplyFunc(id)
	}
	return nil
}

// MockValidator passes everything unless overridden.
type MockValidator struct {
	SubjectFunc func(subject string) error
	BodyFunc    func(body string) error
}

func (m *MockValidator) Subject(subject string) error {
	if m.SubjectFunc != nil {
		return m.SubjectFunc(subject)
	}
	return nil
}

func (m *MockValidator) Body(body string) error {
	if m.BodyFunc != nil {
		return m.BodyFunc(body)
	}
	return nil
}

// MockNotifier records every dispatch for assertions.
type MockNotifier struct {
	Dispatched []dispatchCall
	Notified   []notifyCall
}

type dispatchCall struct {
	Creator domain.User
	Subject string
	Body    string
}

type notifyCall struct {
	Recipient domain.User
	Kind      domain.NotificationKind
	Payload   domain.NotificationPayload
}

func (m *MockNotifier) DispatchMentions(creator domain.User, subject, body string) {
	m.Dispatched = append(m.Dispatched, dispatchCall{creator, subject, body})
}

func (m *MockNotifier) Notify(recipient domain.User, kind domain.NotificationKind, payload domain.NotificationPayload) {
	m.Notified = append(m.Notified, notifyCall{recipient, kind, payload})
}

type MockUserStorage struct {
	UsersByUsernamesFunc func(names []domain.Username) ([]domain.User, error)
}

func (m *MockUserStorage) UsersByUsernames(names []domain.Username) ([]domain.User, error) {
	if m.UsersByUsernamesFunc != nil {
		return m.UsersByUsernamesFunc(names)
	}
	return nil, nil
}

type MockNotificationStorage struct {
	CreateNotificationFunc       func(recipient domain.UserId, kind domain.NotificationKind, payload domain.NotificationPayload) error
	NotificationsByRecipientFunc func(recipient domain.UserId, limit int) ([]domain.Notification, error)
	MarkNotificationReadFunc     func(recipient domain.UserId, id domain.NotificationId) error

	Created []createdNotification
}

type createdNotification struct {
	Recipient domain.UserId
	Kind      domain.NotificationKind
	Payload   domain.NotificationPayload
}

func (m *MockNotificationStorage) CreateNotification(recipient domain.UserId, kind domain.NotificationKind, payload domain.NotificationPayload) error {
	m.Created = append(m.Created, createdNotification{recipient, kind, payload})
	if m.CreateNotificationFunc != nil {
		return m.CreateNotificationFunc(recipient, kind, payload)
	}
	return nil
}

func (m *MockNotificationStorage) NotificationsByRecipient(recipient domain.UserId, limit int) ([]domain.Notification, error) {
	if m.NotificationsByRecipientFunc != nil {
		return m.NotificationsByRecipientFunc(recipient, limit)
	}
	return nil, nil
}

func (m *MockNotificationStorage) MarkNotificationRead(recipient domain.UserId, id domain.NotificationId) error {
	if m.MarkNotificationReadFunc != nil {
		return m.MarkNotificationReadFunc(recipient, id)
	}
	return nil
}

type MockChannel struct {
	SendFunc func(recipient domain.User, subject, body string) error
	Sent     []sentMessage
}

type sentMessage struct {
	Recipient domain.User
	Subject   string
	Body      string
}

func (m *MockChannel) Send(recipient domain.User, subject, body string) error {
	m.Sent = append(m.Sent, sentMessage{recipient, subject, body})
	if m.SendFunc != nil {
		return m.SendFunc(recipient, subject, body)
	}
	return nil
}
