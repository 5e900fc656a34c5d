package test

import (
	"errors"
	"strings"

	pkgAuth "github.com/polkiloo/streakmart/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// StrategyStub issues and parses token pairs via function overrides. The
// default behavior round-trips the principal through the token string.
type StrategyStub struct {
	IssueAccessFn  func(pkgAuth.Principal) (string, error)
	IssueRefreshFn func(pkgAuth.Principal) (string, error)
	ParseAccessFn  func(string) (*pkgAuth.Principal, error)
	ParseRefreshFn func(string) (*pkgAuth.Principal, error)
	NameVal        string
}

// IssueAccess returns deterministic access tokens for tests.
func (s StrategyStub) IssueAccess(p pkgAuth.Principal) (string, error) {
	if s.IssueAccessFn != nil {
		return s.IssueAccessFn(p)
	}
	return encodePrincipal("access", p), nil
}

// IssueRefresh returns deterministic refresh tokens for tests.
func (s StrategyStub) IssueRefresh(p pkgAuth.Principal) (string, error) {
	if s.IssueRefreshFn != nil {
		return s.IssueRefreshFn(p)
	}
	return encodePrincipal("refresh", p), nil
}

// ParseAccess parses previously issued access tokens.
func (s StrategyStub) ParseAccess(token string) (*pkgAuth.Principal, error) {
	if s.ParseAccessFn != nil {
		return s.ParseAccessFn(token)
	}
	return decodePrincipal("access", token)
}

// ParseRefresh parses previously issued refresh tokens.
func (s StrategyStub) ParseRefresh(token string) (*pkgAuth.Principal, error) {
	if s.ParseRefreshFn != nil {
		return s.ParseRefreshFn(token)
	}
	return decodePrincipal("refresh", token)
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

func encodePrincipal(kind string, p pkgAuth.Principal) string {
	return kind + "|" + p.UserID + "|" + p.Username
}

func decodePrincipal(kind, token string) (*pkgAuth.Principal, error) {
	parts := strings.SplitN(token, "|", 3)
	if len(parts) != 3 || parts[0] != kind {
		return nil, pkgAuth.ErrInvalidToken
	}
	return &pkgAuth.Principal{UserID: parts[1], Username: parts[2]}, nil
}

// TokenParserStub implements middleware token parsing contract.
type TokenParserStub struct {
	Principal *pkgAuth.Principal
	Err       error
	ParseFn   func(string) (*pkgAuth.Principal, error)
}

// ParseAccessToken either delegates to override or returns predefined result.
func (s TokenParserStub) ParseAccessToken(token string) (*pkgAuth.Principal, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Principal != nil {
		return s.Principal, nil
	}
	return &pkgAuth.Principal{UserID: "user-1", Username: "alice"}, nil
}

var _ pkgAuth.PasswordHasher = HasherStub{}
var _ pkgAuth.Strategy = StrategyStub{}
