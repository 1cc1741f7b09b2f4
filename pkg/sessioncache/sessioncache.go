// Package sessioncache keeps fetched JSON blobs in a per-session key-value
// store and refetches them once they are older than a fixed TTL.
//
// A cached entry occupies two keys: the value under <key> and the fetch time,
// in Unix milliseconds, under <key>_timestamp.
package sessioncache

import (
	"context"
	"strconv"
	"sync"
	"time"
)

// DefaultTTL is the freshness window for cached entries
const DefaultTTL = 12 * time.Hour

// TimestampSuffix is appended to a key to store its fetch time
const TimestampSuffix = "_timestamp"

// Storage is a string key-value store scoped to one session
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Clear()
}

// FetchFunc loads a fresh value on a cache miss
type FetchFunc func(ctx context.Context) ([]byte, error)

// Cache serves values from Storage while they are fresh
type Cache struct {
	storage Storage
	ttl     time.Duration
	now     func() time.Time
}

// Option configures a Cache
type Option func(*Cache)

// WithTTL overrides DefaultTTL
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) { c.ttl = ttl }
}

// WithClock overrides the wall clock used for freshness checks
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// New creates a Cache over the given storage
func New(storage Storage, opts ...Option) *Cache {
	c := &Cache{
		storage: storage,
		ttl:     DefaultTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns the cached value for key when it is younger than the TTL.
// Otherwise it calls fetch and writes both the value and its timestamp back.
// A failed fetch leaves the stored entry untouched.
func (c *Cache) Fetch(ctx context.Context, key string, fetch FetchFunc) ([]byte, error) {
	if value, ok := c.lookup(key); ok {
		return value, nil
	}

	value, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	c.storage.Set(key, string(value))
	c.storage.Set(key+TimestampSuffix, strconv.FormatInt(c.now().UnixMilli(), 10))
	return value, nil
}

// Clear drops every cached entry
func (c *Cache) Clear() {
	c.storage.Clear()
}

func (c *Cache) lookup(key string) ([]byte, bool) {
	value, ok := c.storage.Get(key)
	if !ok {
		return nil, false
	}
	raw, ok := c.storage.Get(key + TimestampSuffix)
	if !ok {
		return nil, false
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, false
	}
	if c.now().Sub(time.UnixMilli(ms)) >= c.ttl {
		return nil, false
	}
	return []byte(value), true
}

// MemoryStorage is an in-process Storage; last writer wins
type MemoryStorage struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMemoryStorage creates an empty MemoryStorage
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: make(map[string]string)}
}

func (s *MemoryStorage) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	return v, ok
}

func (s *MemoryStorage) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
}

func (s *MemoryStorage) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]string)
}
