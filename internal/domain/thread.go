package domain

import "time"

// to iterate thru layers: handler -> service -> storage
type ThreadCreationData struct {
	Subject string
	Body    string
	Slug    string
	Author  User
	Tags    []TagId
}

// Fields an author may change after creation. Author and CreatedAt stay fixed.
type ThreadUpdateData struct {
	Subject string
	Body    string
	Tags    []TagId
}

type Thread struct {
	Id              ThreadId
	Subject         string
	Body            string
	Slug            string
	Author          User
	Tags            []TagId
	SolutionReplyId *ReplyId
	CreatedAt       time.Time
	LastActivityAt  time.Time
}

func (t *Thread) AuthorId() UserId {
	return t.Author.Id
}
