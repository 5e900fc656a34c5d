package repository

import (
	"context"
	"time"

	"github.com/polkiloo/streakmart/internal/domain/model"
)

// UserRepository describes persistence operations for user records. The user
// store is the single source of truth for streak values, the leaderboard
// cache is only a derived projection of it.
type UserRepository interface {
	Create(ctx context.Context, username, passwordHash string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	// UpdateLoginStreak persists the streak and last-login date computed on
	// a successful authentication.
	UpdateLoginStreak(ctx context.Context, id string, streak int, lastLogin time.Time) error
	// UpdateStreak overwrites the streak only. The reconciliation sweep
	// uses it to decay stale streaks to zero.
	UpdateStreak(ctx context.Context, id string, streak int) error
	// UpdateRefreshToken stores the bcrypt hash of the active refresh
	// token, nil clears the session.
	UpdateRefreshToken(ctx context.Context, id string, hash *string) error
	ListAll(ctx context.Context) ([]model.User, error)
}
