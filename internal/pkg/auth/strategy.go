package auth

import "time"

// Principal identifies an authenticated user encoded in a token.
type Principal struct {
	UserID   string
	Username string
}

// TokenPair bundles the short-lived access token with its rotating refresh
// counterpart.
type TokenPair struct {
	Access  string
	Refresh string
}

// Strategy issues and verifies session tokens.
type Strategy interface {
	IssueAccess(p Principal) (string, error)
	IssueRefresh(p Principal) (string, error)
	ParseAccess(token string) (*Principal, error)
	ParseRefresh(token string) (*Principal, error)
	Name() string
}

// Options tune token lifetimes.
type Options struct {
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}
