package domain

import "time"

type ReplyCreationData struct {
	ThreadId ThreadId
	Body     string
	Author   User
}

type Reply struct {
	Id        ReplyId
	ThreadId  ThreadId
	Body      string
	Author    User
	CreatedAt time.Time
}

func (r *Reply) AuthorId() UserId {
	return r.Author.Id
}
