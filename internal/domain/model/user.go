package model

import "time"

// User represents a registered customer of the storefront.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	// Streak counts consecutive calendar days with a login. It is zero
	// whenever LastLoginDate is nil.
	Streak int
	// LastLoginDate holds the calendar date (UTC midnight) of the most
	// recent login, nil for users who never logged in.
	LastLoginDate *time.Time
	// RefreshTokenHash stores a bcrypt hash of the currently valid refresh
	// token, nil when the user has no active session.
	RefreshTokenHash *string
	CreatedAt        time.Time
}
