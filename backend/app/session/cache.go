// Package session caches token lookups in Redis so hot-path auth checks do
// not hit the relational store on every request.
package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

type CachedUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type TokenCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewTokenCache returns a cache over client. A nil client yields a cache
// whose operations are all no-ops, so callers never need to branch.
func NewTokenCache(client *redis.Client) *TokenCache {
	return &TokenCache{client: client, prefix: "token:", ttl: 24 * time.Hour}
}

func (c *TokenCache) key(token string) string { return c.prefix + token }

func (c *TokenCache) Get(ctx context.Context, token string) (*CachedUser, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, c.key(token)).Result()
	if err != nil {
		return nil, false
	}
	var u CachedUser
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, false
	}
	return &u, true
}

func (c *TokenCache) Put(ctx context.Context, token string, u CachedUser) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(u)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, c.key(token), raw, c.ttl).Err()
}

// Drop evicts a token after its record changes (username or role edits).
func (c *TokenCache) Drop(ctx context.Context, token string) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Del(ctx, c.key(token)).Err()
}
