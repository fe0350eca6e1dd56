package service

import (
	"fmt"
	"net/http"
	"time"

	"github.com/waypost-dev/waypost/internal/config"
	"github.com/waypost-dev/waypost/internal/domain"
	internal_errors "github.com/waypost-dev/waypost/internal/errors"
	"github.com/waypost-dev/waypost/internal/render"
)

// rateLimitWindow is the rolling window for the per-author creation cap.
const rateLimitWindow = 24 * time.Hour

type ThreadService interface {
	Create(actor *domain.User, data domain.ThreadCreationData) (domain.Thread, error)
	Get(id domain.ThreadId) (domain.Thread, error)
	Edit(actor *domain.User, id domain.ThreadId, data domain.ThreadUpdateData) error
	Delete(actor *domain.User, id domain.ThreadId, reason string) error
	MarkSolution(actor *domain.User, threadId domain.ThreadId, replyId domain.ReplyId) error
	UnmarkSolution(actor *domain.User, threadId domain.ThreadId) error
}

type ThreadStorage interface {
	// CreateThread persists the thread and its tag set atomically and
	// re-checks the author's window inside the same transaction.
	CreateThread(data domain.ThreadCreationData) (domain.Thread, error)
	GetThread(id domain.ThreadId) (domain.Thread, error)
	// UpdateThread must leave author, created_at and last_activity_at alone.
	UpdateThread(id domain.ThreadId, data domain.ThreadUpdateData) error
	DeleteThread(id domain.ThreadId) error
	ThreadCountSince(author domain.UserId, since time.Time) (int, error)
	SetSolution(threadId domain.ThreadId, replyId domain.ReplyId) error
	ClearSolution(threadId domain.ThreadId) error
}

type ReplyGetter interface {
	GetReply(id domain.ReplyId) (domain.Reply, error)
}

type ContentValidator interface {
	Subject(subject string) error
	Body(body string) error
}

// ThreadNotifier is the slice of the dispatcher the thread service needs.
type ThreadNotifier interface {
	DispatchMentions(creator domain.User, subject, body string)
	Notify(recipient domain.User, kind domain.NotificationKind, payload domain.NotificationPayload)
}

type Thread struct {
	storage   ThreadStorage
	replies   ReplyGetter
	validator ContentValidator
	notifier  ThreadNotifier
	cfg       config.Public
}

func NewThread(storage ThreadStorage, replies ReplyGetter, validator ContentValidator, notifier ThreadNotifier, cfg config.Public) *Thread {
	return &Thread{storage, replies, validator, notifier, cfg}
}

// Create runs validation, then the rate limit, then persists, then fires
// mention notifications. Any failure before persistence leaves no partial
// write; dispatch failures never fail the request.
func (s *Thread) Create(actor *domain.User, data domain.ThreadCreationData) (domain.Thread, error) {
	if actor == nil {
		return domain.Thread{}, internal_errors.Unauthorized()
	}
	data.Author = *actor

	if err := s.validator.Subject(data.Subject); err != nil {
		return domain.Thread{}, err
	}
	if err := s.validator.Body(data.Body); err != nil {
		return domain.Thread{}, err
	}

	count, err := s.storage.ThreadCountSince(actor.Id, time.Now().Add(-rateLimitWindow))
	if err != nil {
		return domain.Thread{}, err
	}
	if count >= s.cfg.ThreadDailyLimit {
		return domain.Thread{}, internal_errors.RateLimited(
			fmt.Sprintf("You can only create %d threads per day", s.cfg.ThreadDailyLimit))
	}

	thread, err := s.storage.CreateThread(data)
	if err != nil {
		return domain.Thread{}, err
	}

	s.notifier.DispatchMentions(*actor, thread.Subject, data.Body)
	return thread, nil
}

func (s *Thread) Get(id domain.ThreadId) (domain.Thread, error) {
	return s.storage.GetThread(id)
}

// Edit keeps authorship and timestamps immutable and never re-triggers
// mention notifications, even if the body reintroduces a mention.
func (s *Thread) Edit(actor *domain.User, id domain.ThreadId, data domain.ThreadUpdateData) error {
	thread, err := s.storage.GetThread(id)
	if err != nil {
		return err
	}
	if !domain.CanModify(actor, &thread) {
		return internal_errors.Forbidden()
	}

	if err := s.validator.Subject(data.Subject); err != nil {
		return err
	}
	if err := s.validator.Body(data.Body); err != nil {
		return err
	}

	return s.storage.UpdateThread(id, data)
}

// Delete authorizes, removes the thread (replies cascade in storage) and,
// for moderator-initiated deletions of someone else's thread, notifies the
// author with the supplied reason. Owners deleting their own thread get
// no notification.
func (s *Thread) Delete(actor *domain.User, id domain.ThreadId, reason string) error {
	thread, err := s.storage.GetThread(id)
	if err != nil {
		return err
	}
	if !domain.CanModify(actor, &thread) {
		return internal_errors.Forbidden()
	}

	if err := s.storage.DeleteThread(id); err != nil {
		return err
	}

	if domain.IsModerator(actor) && !domain.IsOwner(actor, &thread) {
		s.notifier.Notify(thread.Author, domain.NotificationThreadDeleted, domain.NotificationPayload{
			Subject: thread.Subject,
			Reason:  reason,
		})
	}
	return nil
}

// MarkSolution records which reply resolved the thread. The reply must
// belong to the thread; its author is notified unless they marked it
// themselves.
func (s *Thread) MarkSolution(actor *domain.User, threadId domain.ThreadId, replyId domain.ReplyId) error {
	thread, err := s.storage.GetThread(threadId)
	if err != nil {
		return err
	}
	if !domain.CanModify(actor, &thread) {
		return internal_errors.Forbidden()
	}

	reply, err := s.replies.GetReply(replyId)
	if err != nil {
		return err
	}
	if reply.ThreadId != threadId {
		return &internal_errors.ErrorWithStatusCode{
			Message:    "Reply does not belong to this thread",
			StatusCode: http.StatusUnprocessableEntity,
		}
	}

	if err := s.storage.SetSolution(threadId, replyId); err != nil {
		return err
	}

	if reply.Author.Id != actor.Id {
		s.notifier.Notify(reply.Author, domain.NotificationSolution, domain.NotificationPayload{
			Subject: thread.Subject,
			Excerpt: render.Excerpt(reply.Body, s.cfg.ExcerptLength),
		})
	}
	return nil
}

func (s *Thread) UnmarkSolution(actor *domain.User, threadId domain.ThreadId) error {
	thread, err := s.storage.GetThread(threadId)
	if err != nil {
		return err
	}
	if !domain.CanModify(actor, &thread) {
		return internal_errors.Forbidden()
	}
	return s.storage.ClearSolution(threadId)
}
