package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/polkiloo/streakmart/internal/domain/repository"
	"github.com/polkiloo/streakmart/internal/leaderboard"
	"github.com/polkiloo/streakmart/internal/streak"
)

// ReconcileUseCase is the maintenance sweep: it zeroes streaks of users who
// have not logged in since yesterday and rebuilds the leaderboard cache
// from the authoritative user records. The per-login path never fires for
// absent users, so without this sweep stale streaks would sit in the cache
// forever.
type ReconcileUseCase struct {
	users  repository.UserRepository
	cache  leaderboard.Cache
	logger *slog.Logger
}

// NewReconcileUseCase constructs ReconcileUseCase.
func NewReconcileUseCase(users repository.UserRepository, cache leaderboard.Cache, logger *slog.Logger) *ReconcileUseCase {
	return &ReconcileUseCase{users: users, cache: cache, logger: logger}
}

// Run executes one sweep for the calendar date of now. Running it twice on
// the same day produces the same end state; a sweep interrupted mid-way is
// safe to re-run in full.
func (u *ReconcileUseCase) Run(ctx context.Context, now time.Time) error {
	users, err := u.users.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	decayed := 0
	entries := make([]leaderboard.Entry, 0, len(users))
	for i := range users {
		usr := &users[i]
		if streak.ShouldDecay(now, usr.LastLoginDate) && usr.Streak != 0 {
			if err := u.users.UpdateStreak(ctx, usr.ID, 0); err != nil {
				return fmt.Errorf("decay streak for %s: %w", usr.Username, err)
			}
			usr.Streak = 0
			decayed++
		}
		entries = append(entries, leaderboard.Entry{Username: usr.Username, Streak: usr.Streak})
	}

	if err := u.cache.Rebuild(ctx, entries); err != nil {
		return fmt.Errorf("rebuild leaderboard cache: %w", err)
	}

	u.logger.Info("reconciliation sweep finished",
		slog.Int("users", len(users)),
		slog.Int("decayed", decayed),
	)
	return nil
}
