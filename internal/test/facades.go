package test

import (
	"context"
	"time"

	"github.com/polkiloo/streakmart/internal/domain/model"
	"github.com/polkiloo/streakmart/internal/leaderboard"
	pkgAuth "github.com/polkiloo/streakmart/internal/pkg/auth"
)

// AuthFacadeStub simulates session facade interactions.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, string, string) (*model.User, error)
	AuthenticateFn func(context.Context, string, string) (*model.User, pkgAuth.TokenPair, error)
	RefreshFn      func(context.Context, string) (*model.User, pkgAuth.TokenPair, error)
	LogoutFn       func(context.Context, string) error
	CheckSessionFn func(context.Context, string) (*model.User, error)
	ParseFn        func(string) (*pkgAuth.Principal, error)
}

func stubUser() *model.User {
	return &model.User{ID: "user-1", Username: "alice", Streak: 1}
}

func stubTokens() pkgAuth.TokenPair {
	return pkgAuth.TokenPair{Access: "access-token", Refresh: "refresh-token"}
}

// Register returns a stub user for successful registration scenarios.
func (s AuthFacadeStub) Register(ctx context.Context, username, password string) (*model.User, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, username, password)
	}
	return stubUser(), nil
}

// Authenticate returns a stub session for successful login scenarios.
func (s AuthFacadeStub) Authenticate(ctx context.Context, username, password string) (*model.User, pkgAuth.TokenPair, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, username, password)
	}
	return stubUser(), stubTokens(), nil
}

// Refresh rotates the stub session.
func (s AuthFacadeStub) Refresh(ctx context.Context, refreshToken string) (*model.User, pkgAuth.TokenPair, error) {
	if s.RefreshFn != nil {
		return s.RefreshFn(ctx, refreshToken)
	}
	return stubUser(), stubTokens(), nil
}

// Logout always succeeds unless overridden.
func (s AuthFacadeStub) Logout(ctx context.Context, refreshToken string) error {
	if s.LogoutFn != nil {
		return s.LogoutFn(ctx, refreshToken)
	}
	return nil
}

// CheckSession returns the stub user for valid sessions.
func (s AuthFacadeStub) CheckSession(ctx context.Context, accessToken string) (*model.User, error) {
	if s.CheckSessionFn != nil {
		return s.CheckSessionFn(ctx, accessToken)
	}
	return stubUser(), nil
}

// ParseAccessToken returns the stub principal.
func (s AuthFacadeStub) ParseAccessToken(token string) (*pkgAuth.Principal, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return &pkgAuth.Principal{UserID: "user-1", Username: "alice"}, nil
}

// DashboardFacadeStub serves canned leaderboard entries.
type DashboardFacadeStub struct {
	DashboardFn func(context.Context, bool) ([]leaderboard.Entry, error)
}

// Dashboard returns the configured entries.
func (s DashboardFacadeStub) Dashboard(ctx context.Context, showAll bool) ([]leaderboard.Entry, error) {
	if s.DashboardFn != nil {
		return s.DashboardFn(ctx, showAll)
	}
	return []leaderboard.Entry{{Username: "alice", Streak: 3}}, nil
}

// MaintenanceFacadeStub records reconciliation triggers.
type MaintenanceFacadeStub struct {
	ReconcileFn func(context.Context, time.Time) error
	Calls       int
}

// Reconcile counts invocations and delegates to the override.
func (s *MaintenanceFacadeStub) Reconcile(ctx context.Context, now time.Time) error {
	s.Calls++
	if s.ReconcileFn != nil {
		return s.ReconcileFn(ctx, now)
	}
	return nil
}

// PurchaseFacadeStub simulates checkout and history operations.
type PurchaseFacadeStub struct {
	RecordFn  func(context.Context, string, []model.PurchaseItem) error
	HistoryFn func(context.Context, string, int, int) ([]model.PurchaseItem, error)
}

// RecordPurchase accepts the cart unless overridden.
func (s PurchaseFacadeStub) RecordPurchase(ctx context.Context, userID string, items []model.PurchaseItem) error {
	if s.RecordFn != nil {
		return s.RecordFn(ctx, userID, items)
	}
	return nil
}

// PurchaseHistory returns configured history items.
func (s PurchaseFacadeStub) PurchaseHistory(ctx context.Context, userID string, page, limit int) ([]model.PurchaseItem, error) {
	if s.HistoryFn != nil {
		return s.HistoryFn(ctx, userID, page, limit)
	}
	return nil, nil
}

// CommentFacadeStub simulates the comment feed.
type CommentFacadeStub struct {
	PostFn func(context.Context, string, string) (*model.Comment, error)
	ListFn func(context.Context) ([]model.Comment, error)
}

// PostComment stores nothing and echoes a stub comment.
func (s CommentFacadeStub) PostComment(ctx context.Context, userID, text string) (*model.Comment, error) {
	if s.PostFn != nil {
		return s.PostFn(ctx, userID, text)
	}
	return &model.Comment{ID: "comment-1", UserID: userID, Username: "alice", Text: text}, nil
}

// Comments returns the configured feed.
func (s CommentFacadeStub) Comments(ctx context.Context) ([]model.Comment, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	return nil, nil
}

// CatalogFacadeStub simulates the upstream product catalog.
type CatalogFacadeStub struct {
	ProductsFn func(context.Context, int, int) (*model.ProductPage, error)
	ProductFn  func(context.Context, int64) (*model.Product, error)
	SearchFn   func(context.Context, string) (*model.ProductPage, error)
}

// Products returns an empty page unless overridden.
func (s CatalogFacadeStub) Products(ctx context.Context, limit, skip int) (*model.ProductPage, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx, limit, skip)
	}
	return &model.ProductPage{Limit: limit, Skip: skip}, nil
}

// Product returns a stub product.
func (s CatalogFacadeStub) Product(ctx context.Context, id int64) (*model.Product, error) {
	if s.ProductFn != nil {
		return s.ProductFn(ctx, id)
	}
	return &model.Product{ID: id, Title: "stub product"}, nil
}

// SearchProducts returns an empty page unless overridden.
func (s CatalogFacadeStub) SearchProducts(ctx context.Context, query string) (*model.ProductPage, error) {
	if s.SearchFn != nil {
		return s.SearchFn(ctx, query)
	}
	return &model.ProductPage{}, nil
}

// CatalogProviderStub stands in for the outbound catalog client.
type CatalogProviderStub struct {
	ListFn   func(context.Context, int, int) (*model.ProductPage, error)
	GetFn    func(context.Context, int64) (*model.Product, error)
	SearchFn func(context.Context, string) (*model.ProductPage, error)
}

// List returns an empty page unless overridden.
func (s CatalogProviderStub) List(ctx context.Context, limit, skip int) (*model.ProductPage, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, limit, skip)
	}
	return &model.ProductPage{Limit: limit, Skip: skip}, nil
}

// Get returns a stub product.
func (s CatalogProviderStub) Get(ctx context.Context, id int64) (*model.Product, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	return &model.Product{ID: id, Title: "stub product"}, nil
}

// Search returns an empty page unless overridden.
func (s CatalogProviderStub) Search(ctx context.Context, q string) (*model.ProductPage, error) {
	if s.SearchFn != nil {
		return s.SearchFn(ctx, q)
	}
	return &model.ProductPage{}, nil
}

// StorefrontFacadeStub aggregates facade dependencies for HTTP layer tests.
type StorefrontFacadeStub struct {
	AuthFacadeStub
	DashboardFacadeStub
	MaintenanceFacadeStub
	PurchaseFacadeStub
	CommentFacadeStub
	CatalogFacadeStub
}
