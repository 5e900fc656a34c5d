package usecase

import (
	"context"
	"time"

	"github.com/polkiloo/streakmart/internal/domain/model"
	"github.com/polkiloo/streakmart/internal/domain/repository"
)

const (
	defaultHistoryPage  = 1
	defaultHistoryLimit = 5
)

// PurchaseUseCase manages per-user purchase history.
type PurchaseUseCase struct {
	users     repository.UserRepository
	purchases repository.PurchaseRepository
	now       func() time.Time
}

// NewPurchaseUseCase constructs PurchaseUseCase.
func NewPurchaseUseCase(users repository.UserRepository, purchases repository.PurchaseRepository) *PurchaseUseCase {
	return &PurchaseUseCase{users: users, purchases: purchases, now: time.Now}
}

// History returns one page of the user's purchase history in insertion
// order. Page and limit fall back to defaults when non-positive.
func (u *PurchaseUseCase) History(ctx context.Context, userID string, page, limit int) ([]model.PurchaseItem, error) {
	if _, err := u.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	if page <= 0 {
		page = defaultHistoryPage
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	items, err := u.purchases.ListByUser(ctx, userID, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.PurchaseItem{}
	}
	return items, nil
}

// Record appends purchased items to the user's history, stamping each with
// the server-side purchase time.
func (u *PurchaseUseCase) Record(ctx context.Context, userID string, items []model.PurchaseItem) error {
	if _, err := u.users.GetByID(ctx, userID); err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}

	stamp := u.now().UnixMilli()
	stamped := make([]model.PurchaseItem, len(items))
	for i, item := range items {
		item.Timestamp = stamp
		stamped[i] = item
	}

	return u.purchases.Append(ctx, userID, stamped)
}
