package domain

type User struct {
	Id        UserId
	Username  Username
	Email     Email
	Moderator bool
}
