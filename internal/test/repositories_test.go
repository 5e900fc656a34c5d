package test

import (
	"context"
	"testing"

	"github.com/polkiloo/streakmart/internal/domain/model"
)

func TestUserRepositoryStubListAllSeesSeededUsers(t *testing.T) {
	repo := NewUserRepositoryStub()
	ctx := context.Background()

	created, err := repo.Create(ctx, "alice", "hash")
	if err != nil {
		t.Fatalf("create returned error: %v", err)
	}
	repo.Add(&model.User{ID: "user-stale", Username: "stale", Streak: 8})
	repo.Add(&model.User{ID: "user-today", Username: "today", Streak: 3})

	users, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list all returned error: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("expected 3 users, got %d: %+v", len(users), users)
	}
	if users[0].ID != created.ID || users[1].ID != "user-stale" || users[2].ID != "user-today" {
		t.Fatalf("unexpected order: %+v", users)
	}
}
