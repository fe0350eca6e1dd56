package domain

import "time"

type NotificationKind string

const (
	NotificationMention       NotificationKind = "mention"
	NotificationThreadDeleted NotificationKind = "thread_deleted"
	NotificationReplyDeleted  NotificationKind = "reply_deleted"
	NotificationSolution      NotificationKind = "solution"
)

type NotificationPayload struct {
	Subject string `json:"subject"`
	Excerpt string `json:"excerpt,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// Immutable once created except the Read flag.
type Notification struct {
	Id        NotificationId
	Recipient UserId
	Kind      NotificationKind
	Payload   NotificationPayload
	Read      bool
	CreatedAt time.Time
}
