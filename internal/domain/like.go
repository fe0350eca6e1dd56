package domain

type TargetKind string

const (
	ThreadTarget TargetKind = "thread"
	ReplyTarget  TargetKind = "reply"
)

func (k TargetKind) Valid() bool {
	return k == ThreadTarget || k == ReplyTarget
}

// LikeTarget identifies a likeable entity. At most one like may exist per
// (user, target) pair; storage enforces this with a primary key.
type LikeTarget struct {
	Kind TargetKind
	Id   int64
}

type LikeState struct {
	Liked bool `json:"liked"`
	Count int  `json:"count"`
}
