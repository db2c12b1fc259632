package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/peterbourgon/diskv/v3"
)

// Cache is a named key-value persistence layer for entity lists, backed by
// diskv. It is a write-through cache only: once a remote service is
// configured it is never treated as the source of truth.
type Cache struct {
	d        *diskv.Diskv
	basePath string
}

func OpenCache(basePath string) (*Cache, error) {
	if basePath == "" {
		return nil, errors.New("store: cache base path required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure cache path: %w", err)
	}

	return &Cache{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			CacheSizeMax: 1024 * 1024, // 1MB
		}),
		basePath: basePath,
	}, nil
}

func (cache *Cache) BasePath() string {
	return cache.basePath
}

// WriteList persists the full list under the given key.
func (cache *Cache) WriteList(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("store: marshal cache value: %w", err)
	}
	if err := cache.d.Write(key, data); err != nil {
		return fmt.Errorf("store: write cache key %s: %w", key, err)
	}
	return nil
}

// ReadList loads the list stored under key into target. A missing key is not
// an error; it reports found=false.
func (cache *Cache) ReadList(key string, target any) (bool, error) {
	if !cache.d.Has(key) {
		return false, nil
	}
	data, err := cache.d.Read(key)
	if err != nil {
		return false, fmt.Errorf("store: read cache key %s: %w", key, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return false, fmt.Errorf("store: decode cache key %s: %w", key, err)
	}
	return true, nil
}

func (cache *Cache) Erase(key string) error {
	if !cache.d.Has(key) {
		return nil
	}
	return cache.d.Erase(key)
}
