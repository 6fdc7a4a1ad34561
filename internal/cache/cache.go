// Package cache is an hour-bucketed filesystem cache for raw search
// pages. Repeated queries within the same hour are served from disk so
// iterating on extraction does not hammer the site.
package cache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Key identifies one cached page. Time is truncated to the hour, so two
// fetches of the same query within an hour share an entry. No locking:
// the tool is single-process and single-user by design.
type Key struct {
	Time     time.Time
	Make     string
	Model    string
	Postcode string
	Page     string // empty for the unpaginated first page
}

func (k Key) filename() string {
	page := k.Page
	if page == "" {
		page = "none"
	}
	return fmt.Sprintf("%s_%s_%s_%s_page-%s.html",
		k.Time.Format("2006-01-02_15h"),
		strings.ToLower(k.Make),
		strings.ToLower(k.Model),
		k.Postcode,
		page)
}

// Store reads and writes cached pages under a single directory.
type Store struct {
	dir string
}

// New creates a store rooted at dir. The directory is created lazily on
// first Put.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Get returns the cached markup for key and whether it was present.
func (s *Store) Get(key Key) (string, bool, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, key.filename()))
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read cache entry: %w", err)
	}
	return string(data), true, nil
}

// Put stores markup under key, creating the cache directory if needed.
func (s *Store) Put(key Key, html string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, key.filename()), []byte(html), 0o644); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

// Clear unconditionally deletes every cached page and reports how many
// entries were removed.
func (s *Store) Clear() (int, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, "*.html"))
	if err != nil {
		return 0, err
	}
	for i, name := range matches {
		if err := os.Remove(name); err != nil {
			return i, fmt.Errorf("failed to remove cache entry: %w", err)
		}
	}
	return len(matches), nil
}
