package service

import (
	"fmt"

	"github.com/waypost-dev/waypost/internal/config"
	"github.com/waypost-dev/waypost/internal/domain"
	internal_errors "github.com/waypost-dev/waypost/internal/errors"
	"github.com/waypost-dev/waypost/internal/logger"
	"github.com/waypost-dev/waypost/internal/mention"
	"github.com/waypost-dev/waypost/internal/render"
)

// NotificationService is the read/ack side consumed by handlers.
type NotificationService interface {
	List(actor *domain.User) ([]domain.Notification, error)
	MarkRead(actor *domain.User, id domain.NotificationId) error
}

type UserStorage interface {
	UsersByUsernames(names []domain.Username) ([]domain.User, error)
}

type NotificationStorage interface {
	CreateNotification(recipient domain.UserId, kind domain.NotificationKind, payload domain.NotificationPayload) error
	NotificationsByRecipient(recipient domain.UserId, limit int) ([]domain.Notification, error)
	MarkNotificationRead(recipient domain.UserId, id domain.NotificationId) error
}

// Channel is the external side of the notify fan-out (email or similar).
// The dispatcher decides who and what, never how the message looks on
// the wire.
type Channel interface {
	Send(recipient domain.User, subject, body string) error
}

// Notifier resolves mention candidates against the user registry and fans
// notifications out to storage and the external channel. Channel failures
// are logged and never fail the calling request.
type Notifier struct {
	users   UserStorage
	records NotificationStorage
	channel Channel // optional
	cfg     config.Public
}

func NewNotifier(users UserStorage, records NotificationStorage, channel Channel, cfg config.Public) *Notifier {
	return &Notifier{users, records, channel, cfg}
}

// DispatchMentions notifies every real user mentioned in body. Called on
// original creation only; edits never re-trigger it. Unresolved tokens are
// dropped silently, duplicates collapse, the creator never notifies itself.
func (n *Notifier) DispatchMentions(creator domain.User, subject, body string) {
	candidates := mention.Extract(body)
	if len(candidates) == 0 {
		return
	}

	users, err := n.users.UsersByUsernames(candidates)
	if err != nil {
		logger.Log.Error("mention lookup failed", "error", err)
		return
	}

	payload := domain.NotificationPayload{
		Subject: subject,
		Excerpt: render.Excerpt(body, n.cfg.ExcerptLength),
	}
	for _, recipient := range Recipients(creator, users) {
		n.Notify(recipient, domain.NotificationMention, payload)
	}
}

// Recipients is the pure part of the fan-out: deduplicate resolved users
// and drop the creator.
func Recipients(creator domain.User, users []domain.User) []domain.User {
	seen := map[domain.UserId]struct{}{creator.Id: {}}
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		if _, ok := seen[u.Id]; ok {
			continue
		}
		seen[u.Id] = struct{}{}
		out = append(out, u)
	}
	return out
}

// Notify records an in-app notification and pushes it to the external
// channel. Fire-and-forget: failures are logged, not returned.
func (n *Notifier) Notify(recipient domain.User, kind domain.NotificationKind, payload domain.NotificationPayload) {
	if err := n.records.CreateNotification(recipient.Id, kind, payload); err != nil {
		logger.Log.Error("failed to store notification",
			"recipient", recipient.Id, "kind", kind, "error", err)
	}
	if n.channel == nil {
		return
	}
	if err := n.channel.Send(recipient, emailSubject(kind, payload), emailBody(kind, payload)); err != nil {
		logger.Log.Warn("notify channel unavailable",
			"recipient", recipient.Id, "kind", kind, "error", err)
	}
}

func (n *Notifier) List(actor *domain.User) ([]domain.Notification, error) {
	if actor == nil {
		return nil, internal_errors.Unauthorized()
	}
	return n.records.NotificationsByRecipient(actor.Id, n.cfg.NotificationsPageLimit)
}

func (n *Notifier) MarkRead(actor *domain.User, id domain.NotificationId) error {
	if actor == nil {
		return internal_errors.Unauthorized()
	}
	return n.records.MarkNotificationRead(actor.Id, id)
}

func emailSubject(kind domain.NotificationKind, payload domain.NotificationPayload) string {
	switch kind {
	case domain.NotificationMention:
		return fmt.Sprintf("You were mentioned in \"%s\"", payload.Subject)
	case domain.NotificationThreadDeleted:
		return fmt.Sprintf("Your thread \"%s\" was removed", payload.Subject)
	case domain.NotificationReplyDeleted:
		return fmt.Sprintf("Your reply in \"%s\" was removed", payload.Subject)
	case domain.NotificationSolution:
		return fmt.Sprintf("Your reply solved \"%s\"", payload.Subject)
	}
	return payload.Subject
}

func emailBody(kind domain.NotificationKind, payload domain.NotificationPayload) string {
	switch kind {
	case domain.NotificationThreadDeleted, domain.NotificationReplyDeleted:
		if payload.Reason != "" {
			return fmt.Sprintf("A moderator removed it with the reason:\n\n%s", payload.Reason)
		}
		return "A moderator removed it without giving a reason."
	default:
		return payload.Excerpt
	}
}
