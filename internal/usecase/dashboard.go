package usecase

import (
	"context"
	"log/slog"

	"github.com/polkiloo/streakmart/internal/leaderboard"
)

// TopSize is how many leaderboard entries the dashboard shows by default.
const TopSize = 5

// DashboardUseCase serves leaderboard reads. It only ever touches the
// cache, never the user store, so dashboard traffic stays cheap.
type DashboardUseCase struct {
	cache  leaderboard.Cache
	logger *slog.Logger
}

// NewDashboardUseCase constructs DashboardUseCase.
func NewDashboardUseCase(cache leaderboard.Cache, logger *slog.Logger) *DashboardUseCase {
	return &DashboardUseCase{cache: cache, logger: logger}
}

// View returns the full leaderboard when showAll is set, otherwise the top
// entries. An unreadable cache yields an empty board, not an error: the
// cache is derived state and bootstraps empty on first run.
func (u *DashboardUseCase) View(ctx context.Context, showAll bool) ([]leaderboard.Entry, error) {
	var (
		entries []leaderboard.Entry
		err     error
	)
	if showAll {
		entries, err = u.cache.All(ctx)
	} else {
		entries, err = u.cache.Top(ctx, TopSize)
	}
	if err != nil {
		u.logger.Warn("leaderboard cache read failed, serving empty board", slog.String("error", err.Error()))
		return []leaderboard.Entry{}, nil
	}
	if entries == nil {
		entries = []leaderboard.Entry{}
	}
	return entries, nil
}
