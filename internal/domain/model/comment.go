package model

import "time"

// Comment is a user-authored message on the community page.
type Comment struct {
	ID        string
	UserID    string
	Username  string
	Text      string
	CreatedAt time.Time
}
