package domain

type (
	UserId   = int64
	Username = string
	Email    = string

	ThreadId = int64
	ReplyId  = int64
	TagId    = int64

	NotificationId = int64
)
