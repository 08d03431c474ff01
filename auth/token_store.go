package auth

import (
	"context"
	"time"

	"journal-cms/cache"
)

const blacklistKeyPrefix = "blacklist:token:"

// TokenStoreInterface is the part of the token store services and middleware
// depend on.
type TokenStoreInterface interface {
	Blacklist(ctx context.Context, token string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, token string) bool
}

// TokenStore keeps logged-out JWTs in Redis until they would have expired
// anyway. Because the cache is fail-safe, logout degrades to a no-op when
// Redis is unavailable.
type TokenStore struct {
	cache *cache.Client
}

var _ TokenStoreInterface = (*TokenStore)(nil)

func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

// Blacklist marks a token as logged out for its remaining lifetime.
func (s *TokenStore) Blacklist(ctx context.Context, token string, ttl time.Duration) error {
	if s == nil {
		return nil
	}
	return s.cache.Set(ctx, blacklistKeyPrefix+token, []byte("1"), ttl)
}

// IsBlacklisted reports whether the token was logged out. Redis being down
// reads as "not blacklisted".
func (s *TokenStore) IsBlacklisted(ctx context.Context, token string) bool {
	if s == nil {
		return false
	}
	data, _ := s.cache.Get(ctx, blacklistKeyPrefix+token)
	return data != nil
}
