package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/streakmart/internal/config"
	"github.com/polkiloo/streakmart/internal/domain/repository"
	"github.com/polkiloo/streakmart/internal/leaderboard"
)

// Module wires PostgreSQL storage, repository adapters, and the leaderboard
// cache variant selected by configuration.
var Module = fx.Options(
	fx.Provide(newStorage),
	fx.Provide(
		func(s *Storage) repository.UserRepository { return s.Users() },
		func(s *Storage) repository.PurchaseRepository { return s.Purchases() },
		func(s *Storage) repository.CommentRepository { return s.Comments() },
		newLeaderboardCache,
	),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	return New(p.Ctx, p.Config.DatabaseURI, p.Logger)
}

type cacheParams struct {
	fx.In

	Config  *config.Config
	Storage *Storage
	Logger  *slog.Logger
}

// newLeaderboardCache picks the flat-file cache when a path is configured,
// otherwise the cache lives in its own table next to the user records.
func newLeaderboardCache(p cacheParams) leaderboard.Cache {
	if p.Config.LeaderboardFile != "" {
		return leaderboard.NewFileCache(p.Config.LeaderboardFile, p.Logger)
	}
	return p.Storage.Leaderboard()
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			storage.Close()
			return nil
		},
	})
}
