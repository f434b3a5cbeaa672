package model

// User is identified by username; articles and comments reference it as author.
type User struct {
	Username  string `json:"username"   db:"username"`
	Name      string `json:"name"       db:"name"`
	AvatarURL string `json:"avatar_url" db:"avatar_url"`
}
