// Package leaderboard maintains the denormalized dashboard projection of
// usernames and streaks. The cache is derived state: any component may
// rebuild it in full from the user store, and readers must never treat it as
// authoritative for streak values.
package leaderboard

import (
	"context"
	"sort"
)

// Entry is one leaderboard row, a projection of a user record.
type Entry struct {
	Username string `json:"username"`
	Streak   int    `json:"streak"`
}

// Cache is the persisted, sorted mirror of {username, streak} for all users.
type Cache interface {
	// Upsert replaces the entry for the username or appends it, then
	// re-sorts and persists the whole collection.
	Upsert(ctx context.Context, entry Entry) error
	// Rebuild replaces the entire cache content with the given entries.
	Rebuild(ctx context.Context, entries []Entry) error
	// Top returns at most n leading entries.
	Top(ctx context.Context, n int) ([]Entry, error)
	All(ctx context.Context) ([]Entry, error)
}

// SortEntries orders entries by streak descending. Equal streaks order by
// username ascending so repeated reads of the same state are stable.
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Streak != entries[j].Streak {
			return entries[i].Streak > entries[j].Streak
		}
		return entries[i].Username < entries[j].Username
	})
}

// ApplyUpsert merges entry into entries and returns the re-sorted result.
// Shared by the cache implementations.
func ApplyUpsert(entries []Entry, entry Entry) []Entry {
	replaced := false
	for i := range entries {
		if entries[i].Username == entry.Username {
			entries[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, entry)
	}
	SortEntries(entries)
	return entries
}
