// Package authcache caches verified identities in redis for a short
// TTL so hot clients do not pay a provider round-trip on every request.
// Entries are keyed by a digest of the token, never the token itself.
package authcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dainouesuketarou/subsc-manager-sub001/internal/auth"
	"github.com/dainouesuketarou/subsc-manager-sub001/internal/logger"
)

const (
	keyPrefix  = "identity:"
	DefaultTTL = 60 * time.Second
)

type Cache struct {
	client *goredis.Client
	ttl    time.Duration
}

// New builds a redis-backed identity cache. A non-positive ttl falls
// back to DefaultTTL. The TTL must stay well under token lifetime:
// a cached entry delays revocation visibility by at most the TTL.
func New(client *goredis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{client: client, ttl: ttl}
}

func key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return keyPrefix + hex.EncodeToString(sum[:])
}

// Get returns the cached identity for the token, if any. Cache errors
// degrade to a miss.
func (c *Cache) Get(ctx context.Context, token string) (*auth.Identity, bool) {
	val, err := c.client.Get(ctx, key(token)).Result()
	if err == goredis.Nil {
		return nil, false
	}
	if err != nil {
		logger.Warn("identity cache read failed", map[string]any{"error": err.Error()})
		return nil, false
	}

	var id auth.Identity
	if err := json.Unmarshal([]byte(val), &id); err != nil {
		return nil, false
	}
	return &id, true
}

// Set stores the identity under the token's digest. Best effort.
func (c *Cache) Set(ctx context.Context, token string, id *auth.Identity) {
	if id == nil {
		return
	}
	data, err := json.Marshal(id)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key(token), data, c.ttl).Err(); err != nil {
		logger.Warn("identity cache write failed", map[string]any{"error": err.Error()})
	}
}

// Invalidate drops the cached identity for the token (logout).
func (c *Cache) Invalidate(ctx context.Context, token string) {
	if err := c.client.Del(ctx, key(token)).Err(); err != nil && err != goredis.Nil {
		logger.Warn("identity cache invalidate failed", map[string]any{"error": err.Error()})
	}
}

var _ auth.IdentityCache = (*Cache)(nil)
