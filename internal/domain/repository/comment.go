package repository

import (
	"context"

	"github.com/polkiloo/streakmart/internal/domain/model"
)

// CommentRepository persists community comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	// List returns all comments, newest first.
	List(ctx context.Context) ([]model.Comment, error)
}
