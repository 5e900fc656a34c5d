package usecase

import (
	"context"
	"testing"
	"time"

	domainErrors "github.com/polkiloo/streakmart/internal/domain/errors"
	testhelpers "github.com/polkiloo/streakmart/internal/test"
)

func TestCommentUseCasePost(t *testing.T) {
	users := testhelpers.NewUserRepositoryStub()
	comments := &testhelpers.CommentRepositoryStub{}
	seedUser(users, "alice", 0, nil)

	uc := NewCommentUseCase(users, comments)
	posted := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return posted }

	ctx := context.Background()
	comment, err := uc.Post(ctx, "user-alice", "  great store!  ")
	if err != nil {
		t.Fatalf("post returned error: %v", err)
	}
	if comment.Text != "great store!" {
		t.Fatalf("expected trimmed text, got %q", comment.Text)
	}
	if comment.Username != "alice" || comment.UserID != "user-alice" {
		t.Fatalf("comment not attributed: %+v", comment)
	}
	if !comment.CreatedAt.Equal(posted) {
		t.Fatalf("expected server-side timestamp, got %v", comment.CreatedAt)
	}
}

func TestCommentUseCasePostValidation(t *testing.T) {
	users := testhelpers.NewUserRepositoryStub()
	seedUser(users, "alice", 0, nil)
	uc := NewCommentUseCase(users, &testhelpers.CommentRepositoryStub{})

	ctx := context.Background()
	if _, err := uc.Post(ctx, "user-alice", "   "); err != domainErrors.ErrEmptyComment {
		t.Fatalf("expected ErrEmptyComment, got %v", err)
	}
	if _, err := uc.Post(ctx, "user-ghost", "hello"); err != domainErrors.ErrNotFound {
		t.Fatalf("expected ErrNotFound for unknown user, got %v", err)
	}
}

func TestCommentUseCaseListNewestFirst(t *testing.T) {
	users := testhelpers.NewUserRepositoryStub()
	comments := &testhelpers.CommentRepositoryStub{}
	seedUser(users, "alice", 0, nil)

	uc := NewCommentUseCase(users, comments)
	ctx := context.Background()
	for _, text := range []string{"first", "second", "third"} {
		if _, err := uc.Post(ctx, "user-alice", text); err != nil {
			t.Fatalf("post %q failed: %v", text, err)
		}
	}

	feed, err := uc.List(ctx)
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	if len(feed) != 3 || feed[0].Text != "third" || feed[2].Text != "first" {
		t.Fatalf("expected newest-first feed, got %+v", feed)
	}
}

func TestCommentUseCaseListEmpty(t *testing.T) {
	uc := NewCommentUseCase(testhelpers.NewUserRepositoryStub(), &testhelpers.CommentRepositoryStub{})

	feed, err := uc.List(context.Background())
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	if feed == nil || len(feed) != 0 {
		t.Fatalf("expected empty non-nil feed, got %#v", feed)
	}
}
