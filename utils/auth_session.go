// File: utils/auth_session.go
package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// ResetSession tracks one password-reset handshake: the token emailed to the
// user, redeemable exactly once before its TTL runs out.
type ResetSession struct {
	UserID        string    `json:"userId"`
	Email         string    `json:"email"`
	Token         string    `json:"token"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// SaveResetSession saves the password-reset session in Redis with a TTL.
func SaveResetSession(client *redis.Client, token string, session ResetSession) error {
	session.LastUpdatedAt = time.Now()
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal reset session: %w", err)
	}
	ctx := context.Background()
	if err := client.Set(ctx, ResetSessionPrefix+token, data, ResetSessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to save reset session: %w", err)
	}
	return nil
}

// GetResetSession retrieves the password-reset session from Redis.
func GetResetSession(client *redis.Client, token string) (*ResetSession, error) {
	ctx := context.Background()
	data, err := client.Get(ctx, ResetSessionPrefix+token).Result()
	if err != nil {
		return nil, err
	}
	var session ResetSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal reset session: %w", err)
	}
	return &session, nil
}

// DeleteResetSession removes a password-reset session from Redis. Called on
// redemption so a token can never be replayed.
func DeleteResetSession(client *redis.Client, token string) error {
	ctx := context.Background()
	return client.Del(ctx, ResetSessionPrefix+token).Err()
}

// CacheAuthToken stores the hash of an issued JWT so the auth middleware can
// verify tokens without a database round trip.
func CacheAuthToken(client *redis.Client, userID, tokenHash string) error {
	ctx := context.Background()
	return client.Set(ctx, AuthCachePrefix+userID, tokenHash, AuthCacheTTL).Err()
}

// RevokeAuthToken drops the cached token hash for a user, signing them out.
func RevokeAuthToken(client *redis.Client, userID string) error {
	ctx := context.Background()
	return client.Del(ctx, AuthCachePrefix+userID).Err()
}
