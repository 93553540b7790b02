// Package activation turns one-time emailed tokens into live accounts:
// token lookup, identity creation, and linking the identity back to the
// client record.
package activation

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"creditflow-engine/internal/common/database"
	"creditflow-engine/internal/common/errors"
)

// tokenRecord is the value stored per activation token. The key lives
// past ExpiresAt (with a grace window) so an expired token is reported as
// expired rather than unknown.
type tokenRecord struct {
	ClientID  string    `json:"clientId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// expiredRetention keeps expired tokens resolvable so the user sees
// "expired" instead of "not found".
const expiredRetention = 7 * 24 * time.Hour

const tokenPrefix = "activation:token:"

// TokenStore issues and resolves activation tokens in Redis.
type TokenStore struct {
	redis *database.RedisClient
	ttl   time.Duration
}

func NewTokenStore(redisClient *database.RedisClient, ttl time.Duration) *TokenStore {
	return &TokenStore{redis: redisClient, ttl: ttl}
}

// Issue creates a fresh single-use token for the client.
func (s *TokenStore) Issue(ctx context.Context, clientID string) (string, error) {
	token := uuid.NewString()
	record := tokenRecord{
		ClientID:  clientID,
		ExpiresAt: time.Now().UTC().Add(s.ttl),
	}
	data, err := json.Marshal(record)
	if err != nil {
		return "", err
	}
	if err := s.redis.Set(ctx, tokenPrefix+token, string(data), s.ttl+expiredRetention); err != nil {
		return "", errors.NewDatabaseError("store activation token", err)
	}
	return token, nil
}

// Resolve returns the client id for a live token. Unknown tokens come back
// as TOKEN_NOT_FOUND, past-expiry tokens as TOKEN_EXPIRED.
func (s *TokenStore) Resolve(ctx context.Context, token string) (string, error) {
	data, err := s.redis.Get(ctx, tokenPrefix+token)
	if err == redis.Nil {
		return "", errors.NewTokenNotFoundError()
	}
	if err != nil {
		return "", errors.NewDatabaseError("resolve activation token", err)
	}

	var record tokenRecord
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		return "", errors.NewDatabaseError("decode activation token", err)
	}
	if time.Now().UTC().After(record.ExpiresAt) {
		return "", errors.NewTokenExpiredError()
	}
	return record.ClientID, nil
}

// Invalidate removes a consumed token.
func (s *TokenStore) Invalidate(ctx context.Context, token string) error {
	return s.redis.Del(ctx, tokenPrefix+token)
}
