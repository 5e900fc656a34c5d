package leaderboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// FileCache persists the leaderboard as a JSON array on disk, the flat-file
// variant of the cache. Writes go through a temp file and rename so a reader
// never observes a partially written collection.
type FileCache struct {
	path   string
	logger *slog.Logger
}

// NewFileCache creates a cache backed by the JSON file at path.
func NewFileCache(path string, logger *slog.Logger) *FileCache {
	return &FileCache{path: path, logger: logger}
}

// Upsert implements Cache.
func (c *FileCache) Upsert(ctx context.Context, entry Entry) error {
	entries, err := c.read()
	if err != nil {
		return err
	}
	return c.write(ApplyUpsert(entries, entry))
}

// Rebuild implements Cache.
func (c *FileCache) Rebuild(ctx context.Context, entries []Entry) error {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	SortEntries(sorted)
	return c.write(sorted)
}

// Top implements Cache.
func (c *FileCache) Top(ctx context.Context, n int) ([]Entry, error) {
	entries, err := c.read()
	if err != nil {
		return nil, err
	}
	if n >= 0 && n < len(entries) {
		entries = entries[:n]
	}
	return entries, nil
}

// All implements Cache.
func (c *FileCache) All(ctx context.Context) ([]Entry, error) {
	return c.read()
}

// read treats a missing or unreadable file as an empty collection so the
// first run bootstraps without error.
func (c *FileCache) read() ([]Entry, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			c.logger.Warn("leaderboard cache unreadable, treating as empty", slog.String("path", c.path), slog.String("error", err.Error()))
		}
		return []Entry{}, nil
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		c.logger.Warn("leaderboard cache corrupt, treating as empty", slog.String("path", c.path), slog.String("error", err.Error()))
		return []Entry{}, nil
	}
	return entries, nil
}

func (c *FileCache) write(entries []Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode leaderboard cache: %w", err)
	}

	dir := filepath.Dir(c.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(c.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp cache file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write leaderboard cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close leaderboard cache: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace leaderboard cache: %w", err)
	}
	return nil
}
