package test

import (
	"context"

	"github.com/polkiloo/streakmart/internal/leaderboard"
)

// CacheStub is an in-memory leaderboard cache that records rebuilds.
type CacheStub struct {
	Entries  []leaderboard.Entry
	Rebuilds int
	Upserts  int
	Err      error
}

// Upsert merges the entry and keeps the collection sorted.
func (s *CacheStub) Upsert(ctx context.Context, entry leaderboard.Entry) error {
	if s.Err != nil {
		return s.Err
	}
	s.Upserts++
	s.Entries = leaderboard.ApplyUpsert(s.Entries, entry)
	return nil
}

// Rebuild replaces the cache content.
func (s *CacheStub) Rebuild(ctx context.Context, entries []leaderboard.Entry) error {
	if s.Err != nil {
		return s.Err
	}
	s.Rebuilds++
	replacement := make([]leaderboard.Entry, len(entries))
	copy(replacement, entries)
	leaderboard.SortEntries(replacement)
	s.Entries = replacement
	return nil
}

// Top returns at most n leading entries.
func (s *CacheStub) Top(ctx context.Context, n int) ([]leaderboard.Entry, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if n > len(s.Entries) {
		n = len(s.Entries)
	}
	return s.Entries[:n], nil
}

// All returns every cached entry.
func (s *CacheStub) All(ctx context.Context) ([]leaderboard.Entry, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Entries, nil
}

var _ leaderboard.Cache = (*CacheStub)(nil)
