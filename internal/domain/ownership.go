package domain

// Authored is anything with an immutable owning author.
type Authored interface {
	AuthorId() UserId
}

// IsOwner reports whether actor authored the entity. A nil actor
// (unauthenticated request) never owns anything.
func IsOwner(actor *User, entity Authored) bool {
	if actor == nil || entity == nil {
		return false
	}
	return actor.Id == entity.AuthorId()
}

func IsModerator(actor *User) bool {
	return actor != nil && actor.Moderator
}

// CanModify is the shared edit/delete authorization rule.
func CanModify(actor *User, entity Authored) bool {
	return IsOwner(actor, entity) || IsModerator(actor)
}
