package dto

// AuthRequest describes username/password payload.
type AuthRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserResponse is the public projection of a user record.
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Streak   int    `json:"streak"`
}

// AuthResponse wraps auth outcomes that carry a user.
type AuthResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

// CheckAuthResponse reports session validity.
type CheckAuthResponse struct {
	IsAuthenticated bool          `json:"isAuthenticated"`
	Message         string        `json:"message,omitempty"`
	User            *UserResponse `json:"user,omitempty"`
}
