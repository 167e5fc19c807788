// Package cache implements a small on-disk TTL cache used transparently by
// provider clients. Entries are JSON files in a single directory; staleness
// is judged from file modification time. Every failure mode is soft: a
// broken cache behaves like an empty one and never fails a fetch.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Disk is a TTL cache backed by a directory of JSON files.
type Disk struct {
	dir string
	ttl time.Duration
}

// NewDisk creates the cache directory if needed and returns a cache handle.
func NewDisk(dir string, ttl time.Duration) (*Disk, error) {
	if dir == "" {
		return nil, fmt.Errorf("cache: empty directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: create dir: %w", err)
	}
	return &Disk{dir: dir, ttl: ttl}, nil
}

// Dir returns the backing directory.
func (d *Disk) Dir() string { return d.dir }

// Get loads the cached value for key into v. It reports false when the
// entry is absent, expired, or unreadable.
func (d *Disk) Get(key string, v any) bool {
	if d == nil || d.ttl <= 0 {
		return false
	}
	path := d.path(key)
	fi, err := os.Stat(path)
	if err != nil {
		return false
	}
	if time.Since(fi.ModTime()) > d.ttl {
		return false
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return json.Unmarshal(b, v) == nil
}

// Put stores v under key. Write failures are swallowed; the next Get simply
// misses.
func (d *Disk) Put(key string, v any) {
	if d == nil || d.ttl <= 0 {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	// Write-then-rename so concurrent readers never see a torn file.
	tmp, err := os.CreateTemp(d.dir, ".tmp-*")
	if err != nil {
		return
	}
	name := tmp.Name()
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		_ = os.Remove(name)
		return
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(name)
		return
	}
	_ = os.Rename(name, d.path(key))
}

// Ping verifies the cache directory is still accessible.
func (d *Disk) Ping() error {
	if d == nil {
		return nil
	}
	_, err := os.Stat(d.dir)
	return err
}

// path maps a cache key to a file name, replacing separators so symbols
// like "BRK/B" cannot escape the cache directory.
func (d *Disk) path(key string) string {
	safe := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':':
			return '_'
		}
		return r
	}, key)
	return filepath.Join(d.dir, safe+".json")
}
