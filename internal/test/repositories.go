package test

import (
	"context"
	"strconv"
	"time"

	domainErrors "github.com/polkiloo/streakmart/internal/domain/errors"
	"github.com/polkiloo/streakmart/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests. Order preserves
// insertion order for ListAll.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[string]*model.User
	Order []string
	Next  int
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[string]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, username, passwordHash string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[string]*model.User)
	}
	if _, exists := s.Users[username]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: "user-" + strconv.Itoa(s.Next), Username: username, PasswordHash: passwordHash}
	s.Next++
	s.Users[username] = user
	s.ByID[user.ID] = user
	s.Order = append(s.Order, user.ID)
	return user, nil
}

// GetByUsername fetches user by username or returns not found.
func (s *UserRepositoryStub) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[username]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// UpdateLoginStreak persists streak and last-login on the stored user.
func (s *UserRepositoryStub) UpdateLoginStreak(ctx context.Context, id string, streak int, lastLogin time.Time) error {
	if s.Err != nil {
		return s.Err
	}
	user, ok := s.ByID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	user.Streak = streak
	last := lastLogin
	user.LastLoginDate = &last
	return nil
}

// UpdateStreak overwrites the streak only.
func (s *UserRepositoryStub) UpdateStreak(ctx context.Context, id string, streak int) error {
	if s.Err != nil {
		return s.Err
	}
	user, ok := s.ByID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	user.Streak = streak
	return nil
}

// UpdateRefreshToken stores or clears a refresh token hash.
func (s *UserRepositoryStub) UpdateRefreshToken(ctx context.Context, id string, hash *string) error {
	if s.Err != nil {
		return s.Err
	}
	user, ok := s.ByID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	user.RefreshTokenHash = hash
	return nil
}

// ListAll returns every stored user in insertion order.
func (s *UserRepositoryStub) ListAll(ctx context.Context) ([]model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	users := make([]model.User, 0, len(s.Order))
	for _, id := range s.Order {
		if user, ok := s.ByID[id]; ok {
			users = append(users, *user)
		}
	}
	return users, nil
}

// Add seeds the stub with a pre-built user record.
func (s *UserRepositoryStub) Add(user *model.User) {
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[string]*model.User)
	}
	s.Users[user.Username] = user
	s.ByID[user.ID] = user
	s.Order = append(s.Order, user.ID)
	s.Next++
}

// PurchaseRepositoryStub keeps purchase history in-memory.
type PurchaseRepositoryStub struct {
	Items map[string][]model.PurchaseItem
	Err   error
}

// NewPurchaseRepositoryStub constructs stub repository with initialized map.
func NewPurchaseRepositoryStub() *PurchaseRepositoryStub {
	return &PurchaseRepositoryStub{Items: make(map[string][]model.PurchaseItem)}
}

// Append stores items at the end of the user's history.
func (s *PurchaseRepositoryStub) Append(ctx context.Context, userID string, items []model.PurchaseItem) error {
	if s.Err != nil {
		return s.Err
	}
	if s.Items == nil {
		s.Items = make(map[string][]model.PurchaseItem)
	}
	s.Items[userID] = append(s.Items[userID], items...)
	return nil
}

// ListByUser slices stored history by offset and limit.
func (s *PurchaseRepositoryStub) ListByUser(ctx context.Context, userID string, offset, limit int) ([]model.PurchaseItem, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	history := s.Items[userID]
	if offset >= len(history) {
		return nil, nil
	}
	history = history[offset:]
	if limit < len(history) {
		history = history[:limit]
	}
	return history, nil
}

// CommentRepositoryStub keeps comments in-memory, newest first.
type CommentRepositoryStub struct {
	Comments []model.Comment
	Err      error
}

// Create prepends the comment and assigns an identifier when empty.
func (s *CommentRepositoryStub) Create(ctx context.Context, comment *model.Comment) error {
	if s.Err != nil {
		return s.Err
	}
	if comment.ID == "" {
		comment.ID = "comment-" + strconv.Itoa(len(s.Comments)+1)
	}
	s.Comments = append([]model.Comment{*comment}, s.Comments...)
	return nil
}

// List returns the stored comments.
func (s *CommentRepositoryStub) List(ctx context.Context) ([]model.Comment, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Comments, nil
}
