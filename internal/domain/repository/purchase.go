package repository

import (
	"context"

	"github.com/polkiloo/streakmart/internal/domain/model"
)

// PurchaseRepository persists per-user purchase history.
type PurchaseRepository interface {
	Append(ctx context.Context, userID string, items []model.PurchaseItem) error
	// ListByUser returns history items in insertion order, sliced by
	// offset/limit.
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]model.PurchaseItem, error)
}
