// Package textcache caches decoded chapter text between runs, keyed by
// document identity, so a forced re-analysis does not pay the epub/pdf
// decode cost again for an unchanged book.
package textcache

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"bookdepth/models"
)

// Cache is a file-based cache with a TTL.
type Cache struct {
	dir string
	ttl time.Duration
}

// New creates the cache directory if needed.
func New(dir string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{dir: dir, ttl: ttl}, nil
}

// key hashes the identity into a filesystem-safe name.
func (c *Cache) key(identity string) string {
	sum := sha256.Sum256([]byte(identity))
	return fmt.Sprintf("%x.json", sum)
}

// Get returns the cached chapters for identity, or false on a miss:
// absent, expired, unreadable, or unparseable entries all count as
// misses, never as errors.
func (c *Cache) Get(identity string) ([]models.Chapter, bool) {
	path := filepath.Join(c.dir, c.key(identity))

	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	if time.Since(info.ModTime()) > c.ttl {
		return nil, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	var chapters []models.Chapter
	if err := json.Unmarshal(data, &chapters); err != nil {
		return nil, false
	}
	return chapters, true
}

// Set stores the decoded chapters for identity.
func (c *Cache) Set(identity string, chapters []models.Chapter) error {
	data, err := json.Marshal(chapters)
	if err != nil {
		return fmt.Errorf("failed to marshal chapters: %w", err)
	}
	path := filepath.Join(c.dir, c.key(identity))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}
