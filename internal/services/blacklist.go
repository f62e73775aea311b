package services

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist records session tokens revoked via logout before their
// natural expiry. Revoke is idempotent; all completed revokes are visible to
// subsequent lookups.
type TokenBlacklist interface {
	Revoke(ctx context.Context, token string) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// MemoryBlacklist is the single-instance implementation: a concurrent set
// with no expiry sweep. Entries live until process restart, which is
// acceptable because tokens self-expire within an hour.
type MemoryBlacklist struct {
	mu     sync.RWMutex
	tokens map[string]struct{}
}

func NewMemoryBlacklist() *MemoryBlacklist {
	return &MemoryBlacklist{tokens: make(map[string]struct{})}
}

func (b *MemoryBlacklist) Revoke(_ context.Context, token string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens[token] = struct{}{}
	return nil
}

func (b *MemoryBlacklist) IsRevoked(_ context.Context, token string) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.tokens[token]
	return ok, nil
}

// RedisBlacklist shares revocations across instances. Keys expire a little
// after the token itself would, so the set cleans up on its own.
type RedisBlacklist struct {
	client *redis.Client
	ttl    time.Duration
}

const blacklistKeyPrefix = "blacklist:"

func NewRedisBlacklist(client *redis.Client) *RedisBlacklist {
	return &RedisBlacklist{
		client: client,
		ttl:    TokenLifetime + 2*ClockSkew,
	}
}

func (b *RedisBlacklist) Revoke(ctx context.Context, token string) error {
	return b.client.Set(ctx, blacklistKeyPrefix+token, "1", b.ttl).Err()
}

func (b *RedisBlacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := b.client.Exists(ctx, blacklistKeyPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
