package app

import (
	"context"
	"time"

	"github.com/polkiloo/streakmart/internal/domain/model"
	"github.com/polkiloo/streakmart/internal/leaderboard"
	pkgAuth "github.com/polkiloo/streakmart/internal/pkg/auth"
	"github.com/polkiloo/streakmart/internal/usecase"
)

// CatalogProvider abstracts the upstream product catalog.
type CatalogProvider interface {
	List(ctx context.Context, limit, skip int) (*model.ProductPage, error)
	Get(ctx context.Context, id int64) (*model.Product, error)
	Search(ctx context.Context, q string) (*model.ProductPage, error)
}

// StorefrontFacade aggregates the use cases behind a single surface for the
// HTTP layer and the background reconciler.
type StorefrontFacade struct {
	auth      *usecase.AuthUseCase
	dashboard *usecase.DashboardUseCase
	reconcile *usecase.ReconcileUseCase
	purchases *usecase.PurchaseUseCase
	comments  *usecase.CommentUseCase
	catalog   CatalogProvider
}

func NewStorefrontFacade(
	auth *usecase.AuthUseCase,
	dashboard *usecase.DashboardUseCase,
	reconcile *usecase.ReconcileUseCase,
	purchases *usecase.PurchaseUseCase,
	comments *usecase.CommentUseCase,
	catalog CatalogProvider,
) *StorefrontFacade {
	return &StorefrontFacade{
		auth:      auth,
		dashboard: dashboard,
		reconcile: reconcile,
		purchases: purchases,
		comments:  comments,
		catalog:   catalog,
	}
}

func (f *StorefrontFacade) Register(ctx context.Context, username, password string) (*model.User, error) {
	return f.auth.Register(ctx, username, password)
}

func (f *StorefrontFacade) Authenticate(ctx context.Context, username, password string) (*model.User, pkgAuth.TokenPair, error) {
	session, err := f.auth.Authenticate(ctx, username, password)
	if err != nil {
		return nil, pkgAuth.TokenPair{}, err
	}
	return session.User, session.Tokens, nil
}

func (f *StorefrontFacade) Refresh(ctx context.Context, refreshToken string) (*model.User, pkgAuth.TokenPair, error) {
	session, err := f.auth.Refresh(ctx, refreshToken)
	if err != nil {
		return nil, pkgAuth.TokenPair{}, err
	}
	return session.User, session.Tokens, nil
}

func (f *StorefrontFacade) Logout(ctx context.Context, refreshToken string) error {
	return f.auth.Logout(ctx, refreshToken)
}

func (f *StorefrontFacade) CheckSession(ctx context.Context, accessToken string) (*model.User, error) {
	return f.auth.CheckSession(ctx, accessToken)
}

func (f *StorefrontFacade) ParseAccessToken(token string) (*pkgAuth.Principal, error) {
	return f.auth.ParseAccessToken(token)
}

func (f *StorefrontFacade) Dashboard(ctx context.Context, showAll bool) ([]leaderboard.Entry, error) {
	return f.dashboard.View(ctx, showAll)
}

func (f *StorefrontFacade) Reconcile(ctx context.Context, now time.Time) error {
	return f.reconcile.Run(ctx, now)
}

func (f *StorefrontFacade) RecordPurchase(ctx context.Context, userID string, items []model.PurchaseItem) error {
	return f.purchases.Record(ctx, userID, items)
}

func (f *StorefrontFacade) PurchaseHistory(ctx context.Context, userID string, page, limit int) ([]model.PurchaseItem, error) {
	return f.purchases.History(ctx, userID, page, limit)
}

func (f *StorefrontFacade) PostComment(ctx context.Context, userID, text string) (*model.Comment, error) {
	return f.comments.Post(ctx, userID, text)
}

func (f *StorefrontFacade) Comments(ctx context.Context) ([]model.Comment, error) {
	return f.comments.List(ctx)
}

func (f *StorefrontFacade) Products(ctx context.Context, limit, skip int) (*model.ProductPage, error) {
	return f.catalog.List(ctx, limit, skip)
}

func (f *StorefrontFacade) Product(ctx context.Context, id int64) (*model.Product, error) {
	return f.catalog.Get(ctx, id)
}

func (f *StorefrontFacade) SearchProducts(ctx context.Context, query string) (*model.ProductPage, error) {
	return f.catalog.Search(ctx, query)
}
