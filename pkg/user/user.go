package user

const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

type User struct {
	Username string `json:"username"`
	Password []byte `json:"-"`
	Id       string `json:"id"`
	Role     string `json:"role"`

	// Spendable balance, never negative. Energy engagements debit it.
	Energy int `json:"energy"`
}

// CanModerate reports whether the user may work the moderation queue.
func (u *User) CanModerate() bool {
	return u != nil && (u.Role == RoleModerator || u.Role == RoleAdmin)
}

// Author is the public part of a user embedded into posts and comments.
type Author struct {
	Id       string `json:"id" bson:"id"`
	Username string `json:"username" bson:"username"`
}

func (u *User) AsAuthor() *Author {
	return &Author{Id: u.Id, Username: u.Username}
}
