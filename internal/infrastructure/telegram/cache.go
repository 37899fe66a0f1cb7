package telegram

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/boltdb/bolt"
)

// Bot API file paths stay valid for at least an hour.
const DefaultPathTTL = time.Hour

var filePathsBucket = []byte("file_paths")

// PathCache remembers resolved file paths by file id.
type PathCache interface {
	Get(fileID string) (string, bool, error)
	Put(fileID, filePath string) error
	Delete(fileID string) error
}

type BoltPathCache struct {
	db  *bolt.DB
	ttl time.Duration
	now func() time.Time
}

type cachedPath struct {
	Path     string    `json:"path"`
	Resolved time.Time `json:"resolved"`
}

func OpenBoltPathCache(path string, ttl time.Duration) (*BoltPathCache, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt cache %s: %w", path, err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(filePathsBucket)
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("create bolt bucket: %w", err)
	}
	if ttl <= 0 {
		ttl = DefaultPathTTL
	}
	return &BoltPathCache{db: db, ttl: ttl, now: time.Now}, nil
}

func (c *BoltPathCache) Get(fileID string) (string, bool, error) {
	var entry cachedPath
	var found bool
	err := c.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(filePathsBucket).Get([]byte(fileID))
		if v == nil {
			return nil
		}
		found = true
		return json.Unmarshal(v, &entry)
	})
	if err != nil || !found {
		return "", false, err
	}
	if c.now().Sub(entry.Resolved) > c.ttl {
		return "", false, nil
	}
	return entry.Path, true, nil
}

func (c *BoltPathCache) Put(fileID, filePath string) error {
	v, err := json.Marshal(cachedPath{Path: filePath, Resolved: c.now()})
	if err != nil {
		return err
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(filePathsBucket).Put([]byte(fileID), v)
	})
}

func (c *BoltPathCache) Delete(fileID string) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(filePathsBucket).Delete([]byte(fileID))
	})
}

func (c *BoltPathCache) Close() error {
	return c.db.Close()
}

// LazyPathCache opens its Bolt file on first use, so commands that never
// download files never take the file lock. If the file cannot be opened,
// for example because another process holds it, every lookup misses and
// writes are dropped.
type LazyPathCache struct {
	path string
	ttl  time.Duration

	once    sync.Once
	cache   *BoltPathCache
	openErr error
	onError func(error)
}

// NewLazyPathCache returns a cache backed by the Bolt file at path. onError,
// if not nil, is called once when the file cannot be opened.
func NewLazyPathCache(path string, ttl time.Duration, onError func(error)) *LazyPathCache {
	return &LazyPathCache{path: path, ttl: ttl, onError: onError}
}

func (c *LazyPathCache) open() *BoltPathCache {
	c.once.Do(func() {
		c.cache, c.openErr = OpenBoltPathCache(c.path, c.ttl)
		if c.openErr != nil && c.onError != nil {
			c.onError(c.openErr)
		}
	})
	return c.cache
}

func (c *LazyPathCache) Get(fileID string) (string, bool, error) {
	if cache := c.open(); cache != nil {
		return cache.Get(fileID)
	}
	return "", false, nil
}

func (c *LazyPathCache) Put(fileID, filePath string) error {
	if cache := c.open(); cache != nil {
		return cache.Put(fileID, filePath)
	}
	return nil
}

func (c *LazyPathCache) Delete(fileID string) error {
	if cache := c.open(); cache != nil {
		return cache.Delete(fileID)
	}
	return nil
}

// Opened reports whether the Bolt file is currently held.
func (c *LazyPathCache) Opened() bool {
	return c.cache != nil
}

// Close releases the Bolt file if it was opened. Later calls are misses.
func (c *LazyPathCache) Close() error {
	c.once.Do(func() {})
	if c.cache == nil {
		return nil
	}
	err := c.cache.Close()
	c.cache = nil
	return err
}
