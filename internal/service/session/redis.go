// Package session tracks revoked refresh tokens.
package session

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "revoked_tokens:"
)

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) key(tokenID string) string {
	return keyPrefix + tokenID
}

// Revoke marks tokenID as revoked until the token itself would have expired.
// It reports whether this call did the revoking; SET NX makes concurrent
// callers race on the key so only one of them wins.
func (s *RedisStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		return true, nil
	}
	ok, err := s.client.SetNX(ctx, s.key(tokenID), 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to revoke token %s: %w", tokenID, err)
	}
	return ok, nil
}

// MemoryStore is the in-process variant for APP_STORAGE=memory and tests.
// Entries expire on their own after the token's remaining lifetime.
type MemoryStore struct {
	cache *gocache.Cache
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{cache: gocache.New(gocache.NoExpiration, time.Minute)}
}

// Revoke uses Add, which fails when the key is already present, so the
// check and the write happen under the cache's lock.
func (s *MemoryStore) Revoke(_ context.Context, tokenID string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		return true, nil
	}
	return s.cache.Add(s.key(tokenID), true, ttl) == nil, nil
}

func (s *MemoryStore) key(tokenID string) string {
	return keyPrefix + tokenID
}
