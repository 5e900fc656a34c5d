package usecase

import (
	"context"
	"strings"
	"time"

	domainErrors "github.com/polkiloo/streakmart/internal/domain/errors"
	"github.com/polkiloo/streakmart/internal/domain/model"
	"github.com/polkiloo/streakmart/internal/domain/repository"
)

// CommentUseCase manages the community comment feed.
type CommentUseCase struct {
	users    repository.UserRepository
	comments repository.CommentRepository
	now      func() time.Time
}

// NewCommentUseCase constructs CommentUseCase.
func NewCommentUseCase(users repository.UserRepository, comments repository.CommentRepository) *CommentUseCase {
	return &CommentUseCase{users: users, comments: comments, now: time.Now}
}

// Post stores a trimmed, non-empty comment attributed to the user.
func (u *CommentUseCase) Post(ctx context.Context, userID, text string) (*model.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domainErrors.ErrEmptyComment
	}

	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	comment := &model.Comment{
		UserID:    usr.ID,
		Username:  usr.Username,
		Text:      text,
		CreatedAt: u.now(),
	}
	if err := u.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// List returns all comments, newest first.
func (u *CommentUseCase) List(ctx context.Context) ([]model.Comment, error) {
	comments, err := u.comments.List(ctx)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []model.Comment{}
	}
	return comments, nil
}
