package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/joebanks10/todo-api/internal/cache"
)

const (
	tokenKeyPrefix = "auth_token:"
	tokenCacheTTL  = 10 * time.Minute
)

// TokenCacheInterface defines the cache operations for verified tokens.
type TokenCacheInterface interface {
	Remember(ctx context.Context, token string, userID uuid.UUID) error
	Lookup(ctx context.Context, token string) (uuid.UUID, bool)
	Forget(ctx context.Context, token string) error
}

// TokenCache keeps recently verified tokens in Redis so the hot
// verification path can skip the database membership check. The token
// table remains the source of truth: entries are dropped on revocation and
// expire on their own otherwise, and redis being unavailable degrades to a
// cache miss.
type TokenCache struct {
	cache *cache.Client
}

// Ensure TokenCache implements TokenCacheInterface
var _ TokenCacheInterface = (*TokenCache)(nil)

// NewTokenCache creates a new token cache.
func NewTokenCache(cache *cache.Client) *TokenCache {
	return &TokenCache{cache: cache}
}

// Remember records that token belongs to userID.
func (s *TokenCache) Remember(ctx context.Context, token string, userID uuid.UUID) error {
	key := tokenKeyPrefix + token
	return s.cache.Set(ctx, key, []byte(userID.String()), tokenCacheTTL)
}

// Lookup returns the user id a token was verified for, if cached.
func (s *TokenCache) Lookup(ctx context.Context, token string) (uuid.UUID, bool) {
	key := tokenKeyPrefix + token
	data, err := s.cache.Get(ctx, key)
	if err != nil || data == nil {
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(string(data))
	if err != nil {
		return uuid.Nil, false
	}
	return userID, true
}

// Forget drops a token from the cache. Called on revocation.
func (s *TokenCache) Forget(ctx context.Context, token string) error {
	key := tokenKeyPrefix + token
	return s.cache.Delete(ctx, key)
}
