package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// FileCache stores artifacts as JSON files under a directory, grouped by
// artifact kind. Each entry records which document and variant produced it,
// so a hash-collision or hand-edited file can never serve the wrong artifact.
type FileCache struct {
	dir string
}

// NewFileCache creates a file-based cache rooted at dir.
// The directory is created if it does not exist.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// artifactEntry is the on-disk record for one derived artifact.
type artifactEntry struct {
	Artifact  string    `json:"artifact"`
	DocHash   string    `json:"doc_hash"`
	Variant   string    `json:"variant,omitempty"`
	Data      []byte    `json:"data"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Get retrieves an artifact. Entries that fail to decode, describe a
// different key than the one asked for, or have expired are removed and
// reported as misses.
func (c *FileCache) Get(ctx context.Context, key Key) ([]byte, bool, error) {
	path := c.path(key)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entry artifactEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		_ = os.Remove(path)
		return nil, false, nil
	}
	if entry.Artifact != key.Artifact || entry.DocHash != key.DocHash || entry.Variant != key.Variant {
		_ = os.Remove(path)
		return nil, false, nil
	}
	if !entry.ExpiresAt.IsZero() && time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false, nil
	}

	return entry.Data, true, nil
}

// Set stores an artifact together with the key that produced it.
func (c *FileCache) Set(ctx context.Context, key Key, data []byte, ttl time.Duration) error {
	entry := artifactEntry{
		Artifact:  key.Artifact,
		DocHash:   key.DocHash,
		Variant:   key.Variant,
		Data:      data,
		CreatedAt: time.Now(),
	}
	if ttl > 0 {
		entry.ExpiresAt = entry.CreatedAt.Add(ttl)
	}

	entryData, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	return os.WriteFile(path, entryData, 0644)
}

// Delete removes an artifact.
func (c *FileCache) Delete(ctx context.Context, key Key) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for a file cache.
func (c *FileCache) Close() error {
	return nil
}

// path maps a key to a file under <dir>/<artifact>/<xx>/<rest>.json, with a
// two-character fan-out directory to keep any single directory small.
func (c *FileCache) path(key Key) string {
	sum := DocHash([]byte(key.DocHash + "\x00" + key.Variant))
	return filepath.Join(c.dir, key.Artifact, sum[:2], sum[2:]+".json")
}

// Ensure FileCache implements Cache.
var _ Cache = (*FileCache)(nil)
