package feed

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Cache persists one CacheRecord per feed target under the cache
// directory. Records are keyed by the feed's target path with every path
// separator replaced by a dash, so the same target always maps to the
// same cache file across runs.
type Cache struct {
	cacheDir string
}

func NewCache(cacheDir string) *Cache {
	return &Cache{cacheDir: cacheDir}
}

// CacheKey derives the cache file name for a feed target path.
func CacheKey(targetPath string) string {
	key := strings.ReplaceAll(targetPath, "/", "-")
	return strings.ReplaceAll(key, "\\", "-")
}

// Load reads the cache record for a target path. A missing file yields
// (nil, nil); a malformed or unreadable file yields an error that callers
// downgrade to cache absence.
func (c *Cache) Load(targetPath string) (*CacheRecord, error) {
	data, err := os.ReadFile(c.recordPath(targetPath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cache record: %w", err)
	}

	var record CacheRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to decode cache record: %w", err)
	}

	return &record, nil
}

// Store writes a fresh cache record, replacing any previous one.
func (c *Cache) Store(record CacheRecord) error {
	if err := os.MkdirAll(c.cacheDir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode cache record: %w", err)
	}

	if err := os.WriteFile(c.recordPath(record.Config.TargetPath), data, 0644); err != nil {
		return fmt.Errorf("failed to write cache record: %w", err)
	}

	return nil
}

func (c *Cache) recordPath(targetPath string) string {
	return filepath.Join(c.cacheDir, CacheKey(targetPath))
}
