package handlers

import (
	"context"
	"time"

	"github.com/polkiloo/streakmart/internal/domain/model"
	"github.com/polkiloo/streakmart/internal/leaderboard"
	pkgAuth "github.com/polkiloo/streakmart/internal/pkg/auth"
)

// AuthFacade describes session capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, username, password string) (*model.User, error)
	Authenticate(ctx context.Context, username, password string) (*model.User, pkgAuth.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*model.User, pkgAuth.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	CheckSession(ctx context.Context, accessToken string) (*model.User, error)
	ParseAccessToken(token string) (*pkgAuth.Principal, error)
}

// DashboardFacade exposes the streak leaderboard.
type DashboardFacade interface {
	Dashboard(ctx context.Context, showAll bool) ([]leaderboard.Entry, error)
}

// MaintenanceFacade triggers the streak reconciliation sweep.
type MaintenanceFacade interface {
	Reconcile(ctx context.Context, now time.Time) error
}

// PurchaseFacade covers checkout and purchase history.
type PurchaseFacade interface {
	RecordPurchase(ctx context.Context, userID string, items []model.PurchaseItem) error
	PurchaseHistory(ctx context.Context, userID string, page, limit int) ([]model.PurchaseItem, error)
}

// CommentFacade covers the comment feed.
type CommentFacade interface {
	PostComment(ctx context.Context, userID, text string) (*model.Comment, error)
	Comments(ctx context.Context) ([]model.Comment, error)
}

// CatalogFacade proxies the upstream product catalog.
type CatalogFacade interface {
	Products(ctx context.Context, limit, skip int) (*model.ProductPage, error)
	Product(ctx context.Context, id int64) (*model.Product, error)
	SearchProducts(ctx context.Context, query string) (*model.ProductPage, error)
}

// StorefrontFacade aggregates the full set of operations used across handlers.
type StorefrontFacade interface {
	AuthFacade
	DashboardFacade
	MaintenanceFacade
	PurchaseFacade
	CommentFacade
	CatalogFacade
}
