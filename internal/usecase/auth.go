package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	domainErrors "github.com/polkiloo/streakmart/internal/domain/errors"
	"github.com/polkiloo/streakmart/internal/domain/model"
	"github.com/polkiloo/streakmart/internal/domain/repository"
	"github.com/polkiloo/streakmart/internal/leaderboard"
	pkgAuth "github.com/polkiloo/streakmart/internal/pkg/auth"
	"github.com/polkiloo/streakmart/internal/streak"
)

// Session is the result of a successful authentication: the refreshed user
// record plus the freshly issued token pair.
type Session struct {
	User   *model.User
	Tokens pkgAuth.TokenPair
}

// AuthUseCase handles user lifecycle, streak advancement, and session
// token rotation.
type AuthUseCase struct {
	users  repository.UserRepository
	cache  leaderboard.Cache
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
	now    func() time.Time
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, cache leaderboard.Cache, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{users: users, cache: cache, hasher: hasher, tokens: strategy, now: time.Now}
}

// Register creates a new user with username/password. The new user starts
// with no streak and is published to the leaderboard at zero.
func (u *AuthUseCase) Register(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domainErrors.ErrInvalidCredentials
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	usr, err := u.users.Create(ctx, username, hash)
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}

	if err := u.cache.Upsert(ctx, leaderboard.Entry{Username: usr.Username, Streak: 0}); err != nil {
		return nil, err
	}

	return usr, nil
}

// Authenticate validates credentials, advances the login streak, publishes
// the new streak to the leaderboard, and opens a session.
func (u *AuthUseCase) Authenticate(ctx context.Context, username, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, domainErrors.ErrInvalidCredentials
	}

	if err := u.touchStreak(ctx, usr); err != nil {
		return nil, err
	}

	tokens, err := u.openSession(ctx, usr)
	if err != nil {
		return nil, err
	}

	return &Session{User: usr, Tokens: tokens}, nil
}

// Refresh rotates the session tokens: the presented refresh token must both
// verify and match the hash stored on the user record, and is invalidated
// by the rotation.
func (u *AuthUseCase) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	if refreshToken == "" {
		return nil, domainErrors.ErrInvalidRefresh
	}

	principal, err := u.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return nil, domainErrors.ErrInvalidRefresh
	}

	usr, err := u.users.GetByID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}

	if usr.RefreshTokenHash == nil || u.hasher.Compare(*usr.RefreshTokenHash, refreshDigest(refreshToken)) != nil {
		return nil, domainErrors.ErrInvalidRefresh
	}

	tokens, err := u.openSession(ctx, usr)
	if err != nil {
		return nil, err
	}

	return &Session{User: usr, Tokens: tokens}, nil
}

// Logout clears the stored refresh hash so the presented refresh token can
// never be rotated again. Invalid tokens are ignored: logout always
// succeeds from the client's point of view.
func (u *AuthUseCase) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	principal, err := u.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return nil
	}
	usr, err := u.users.GetByID(ctx, principal.UserID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil
		}
		return err
	}
	if usr.RefreshTokenHash == nil || u.hasher.Compare(*usr.RefreshTokenHash, refreshDigest(refreshToken)) != nil {
		return nil
	}
	return u.users.UpdateRefreshToken(ctx, usr.ID, nil)
}

// CheckSession verifies an access token and returns the refreshed user. An
// authenticated session touch counts as a daily login, so it advances the
// streak exactly like Authenticate does.
func (u *AuthUseCase) CheckSession(ctx context.Context, accessToken string) (*model.User, error) {
	principal, err := u.ParseAccessToken(accessToken)
	if err != nil {
		return nil, err
	}

	usr, err := u.users.GetByID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}

	if err := u.touchStreak(ctx, usr); err != nil {
		return nil, err
	}

	return usr, nil
}

// ParseAccessToken extracts the principal from the provided access token.
func (u *AuthUseCase) ParseAccessToken(token string) (*pkgAuth.Principal, error) {
	if token == "" {
		return nil, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseAccess(token)
}

// GetByID fetches user by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id string) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}

// touchStreak recomputes the streak for a login happening now, persists it
// on the user record, and mirrors it into the leaderboard cache.
func (u *AuthUseCase) touchStreak(ctx context.Context, usr *model.User) error {
	newStreak, lastLogin := streak.ComputeLoginUpdate(u.now(), usr.Streak, usr.LastLoginDate)

	if err := u.users.UpdateLoginStreak(ctx, usr.ID, newStreak, lastLogin); err != nil {
		return err
	}
	usr.Streak = newStreak
	usr.LastLoginDate = &lastLogin

	return u.cache.Upsert(ctx, leaderboard.Entry{Username: usr.Username, Streak: newStreak})
}

// openSession issues a fresh token pair and stores the refresh hash,
// invalidating any previously issued refresh token.
func (u *AuthUseCase) openSession(ctx context.Context, usr *model.User) (pkgAuth.TokenPair, error) {
	principal := pkgAuth.Principal{UserID: usr.ID, Username: usr.Username}

	access, err := u.tokens.IssueAccess(principal)
	if err != nil {
		return pkgAuth.TokenPair{}, err
	}
	refresh, err := u.tokens.IssueRefresh(principal)
	if err != nil {
		return pkgAuth.TokenPair{}, err
	}

	hash, err := u.hasher.Hash(refreshDigest(refresh))
	if err != nil {
		return pkgAuth.TokenPair{}, err
	}
	if err := u.users.UpdateRefreshToken(ctx, usr.ID, &hash); err != nil {
		return pkgAuth.TokenPair{}, err
	}
	usr.RefreshTokenHash = &hash

	return pkgAuth.TokenPair{Access: access, Refresh: refresh}, nil
}

// refreshDigest condenses a refresh token before bcrypt hashing; bcrypt
// rejects inputs longer than 72 bytes and JWTs always exceed that.
func refreshDigest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
