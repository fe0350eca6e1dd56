package service

import (
	"github.com/waypost-dev/waypost/internal/domain"
	internal_errors "github.com/waypost-dev/waypost/internal/errors"
	"github.com/waypost-dev/waypost/internal/logger"
)

type ReplyService interface {
	Create(actor *domain.User, threadId domain.ThreadId, body string) (domain.Reply, error)
	Get(id domain.ReplyId) (domain.Reply, error)
	Delete(actor *domain.User, id domain.ReplyId, reason string) error
}

type ReplyStorage interface {
	// CreateReply persists the reply and bumps the parent thread's
	// last_activity_at in the same transaction.
	CreateReply(data domain.ReplyCreationData) (domain.Reply, error)
	GetReply(id domain.ReplyId) (domain.Reply, error)
	DeleteReply(id domain.ReplyId) error
}

type ThreadGetter interface {
	GetThread(id domain.ThreadId) (domain.Thread, error)
}

type Reply struct {
	storage   ReplyStorage
	threads   ThreadGetter
	validator ContentValidator
	notifier  ThreadNotifier
}

func NewReply(storage ReplyStorage, threads ThreadGetter, validator ContentValidator, notifier ThreadNotifier) *Reply {
	return &Reply{storage, threads, validator, notifier}
}

func (s *Reply) Create(actor *domain.User, threadId domain.ThreadId, body string) (domain.Reply, error) {
	if actor == nil {
		return domain.Reply{}, internal_errors.Unauthorized()
	}
	if err := s.validator.Body(body); err != nil {
		return domain.Reply{}, err
	}

	thread, err := s.threads.GetThread(threadId)
	if err != nil {
		return domain.Reply{}, err
	}

	reply, err := s.storage.CreateReply(domain.ReplyCreationData{
		ThreadId: threadId,
		Body:     body,
		Author:   *actor,
	})
	if err != nil {
		return domain.Reply{}, err
	}

	s.notifier.DispatchMentions(*actor, thread.Subject, body)
	return reply, nil
}

func (s *Reply) Get(id domain.ReplyId) (domain.Reply, error) {
	return s.storage.GetReply(id)
}

// Delete mirrors thread deletion: owner or moderator only, and a moderator
// removing someone else's reply notifies its author.
func (s *Reply) Delete(actor *domain.User, id domain.ReplyId, reason string) error {
	reply, err := s.storage.GetReply(id)
	if err != nil {
		return err
	}
	if !domain.CanModify(actor, &reply) {
		return internal_errors.Forbidden()
	}

	if err := s.storage.DeleteReply(id); err != nil {
		return err
	}

	if domain.IsModerator(actor) && !domain.IsOwner(actor, &reply) {
		subject := ""
		if thread, err := s.threads.GetThread(reply.ThreadId); err == nil {
			subject = thread.Subject
		} else {
			logger.Log.Warn("parent thread lookup failed for deletion notice",
				"reply", id, "error", err)
		}
		s.notifier.Notify(reply.Author, domain.NotificationReplyDeleted, domain.NotificationPayload{
			Subject: subject,
			Reason:  reason,
		})
	}
	return nil
}
