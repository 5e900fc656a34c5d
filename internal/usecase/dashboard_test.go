package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/polkiloo/streakmart/internal/leaderboard"
	testhelpers "github.com/polkiloo/streakmart/internal/test"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestDashboardUseCaseTopFive(t *testing.T) {
	cache := &testhelpers.CacheStub{}
	ctx := context.Background()
	for _, e := range []leaderboard.Entry{
		{Username: "a", Streak: 7},
		{Username: "b", Streak: 3},
		{Username: "c", Streak: 9},
		{Username: "d", Streak: 1},
		{Username: "e", Streak: 5},
		{Username: "f", Streak: 4},
		{Username: "g", Streak: 8},
	} {
		if err := cache.Upsert(ctx, e); err != nil {
			t.Fatalf("seed upsert failed: %v", err)
		}
	}

	uc := NewDashboardUseCase(cache, discardLogger())

	top, err := uc.View(ctx, false)
	if err != nil {
		t.Fatalf("view returned error: %v", err)
	}
	if len(top) != TopSize {
		t.Fatalf("expected %d entries, got %d", TopSize, len(top))
	}
	if top[0].Username != "c" || top[0].Streak != 9 {
		t.Fatalf("expected leader c/9, got %+v", top[0])
	}

	all, err := uc.View(ctx, true)
	if err != nil {
		t.Fatalf("view all returned error: %v", err)
	}
	if len(all) != 7 {
		t.Fatalf("expected full board of 7, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Streak < all[i].Streak {
			t.Fatalf("board not sorted at %d: %+v", i, all)
		}
	}
}

func TestDashboardUseCaseEmptyCache(t *testing.T) {
	uc := NewDashboardUseCase(&testhelpers.CacheStub{}, discardLogger())

	entries, err := uc.View(context.Background(), false)
	if err != nil {
		t.Fatalf("view returned error: %v", err)
	}
	if entries == nil || len(entries) != 0 {
		t.Fatalf("expected empty non-nil board, got %#v", entries)
	}
}

func TestDashboardUseCaseCacheFailureServesEmpty(t *testing.T) {
	cache := &testhelpers.CacheStub{Err: errors.New("disk gone")}
	uc := NewDashboardUseCase(cache, discardLogger())

	entries, err := uc.View(context.Background(), true)
	if err != nil {
		t.Fatalf("cache failure must not surface as error, got %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty board on cache failure, got %+v", entries)
	}
}
