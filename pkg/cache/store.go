package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrCacheMiss indicates no entry exists for the key.
	ErrCacheMiss = errors.New("cache miss")

	// ErrInvalidEntry indicates the stored entry could not be decoded.
	ErrInvalidEntry = errors.New("invalid cache entry")
)

// RevalidateWindow is how long a stale entry with validators is kept in
// Redis after it expires, so that it can still answer a 304.
const RevalidateWindow = time.Hour

// Store keeps listing pages in Redis.
type Store struct {
	redis *redis.Client
}

// NewStore creates a Store on the given Redis client.
func NewStore(redisClient *redis.Client) *Store {
	if redisClient == nil {
		panic("redis client cannot be nil")
	}
	return &Store{redis: redisClient}
}

// Get returns the entry for key, fresh or stale. Callers check IsFresh.
// Returns ErrCacheMiss when nothing is stored.
func (s *Store) Get(ctx context.Context, key Key) (*Entry, error) {
	data, err := s.redis.Get(ctx, key.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			CacheMisses.Inc()
			return nil, ErrCacheMiss
		}
		CacheErrors.WithLabelValues("get").Inc()
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		CacheErrors.WithLabelValues("get").Inc()
		_ = s.Delete(ctx, key)
		return nil, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}

	if entry.IsFresh() {
		CacheHits.Inc()
	} else {
		CacheMisses.Inc()
	}
	return &entry, nil
}

// Set stores entry under key. Entries that are already expired and carry no
// validators are dropped.
func (s *Store) Set(ctx context.Context, key Key, entry *Entry) error {
	if entry == nil {
		return fmt.Errorf("cache entry cannot be nil")
	}

	ttl := retention(entry)
	if ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(entry)
	if err != nil {
		CacheErrors.WithLabelValues("set").Inc()
		return fmt.Errorf("marshal cache entry: %w", err)
	}

	if err := s.redis.Set(ctx, key.String(), data, ttl).Err(); err != nil {
		CacheErrors.WithLabelValues("set").Inc()
		return fmt.Errorf("redis set: %w", err)
	}
	StoredBytes.Add(float64(len(data)))

	return nil
}

// Delete removes the entry for key.
func (s *Store) Delete(ctx context.Context, key Key) error {
	if err := s.redis.Del(ctx, key.String()).Err(); err != nil {
		CacheErrors.WithLabelValues("delete").Inc()
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Refresh moves the expiry of an existing entry, typically after a 304.
func (s *Store) Refresh(ctx context.Context, key Key, expires time.Time) error {
	entry, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	entry.Expires = expires
	return s.Set(ctx, key, entry)
}

func retention(entry *Entry) time.Duration {
	ttl := entry.TTL()
	if entry.CanRevalidate() {
		ttl += RevalidateWindow
	}
	return ttl
}
