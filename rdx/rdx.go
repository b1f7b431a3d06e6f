package rdx

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Conn is the shared redis client. It backs the refresh-token store and
// token revocation only; catalog and order reads always hit Mongo directly.
var Conn *redis.Client

func init() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	Conn = redis.NewClient(&redis.Options{Addr: addr})
}

const refreshPrefix = "auth:refresh:"

// StoreRefreshToken keeps the hashed refresh token for a user with a TTL.
func StoreRefreshToken(ctx context.Context, userID, hashedToken string, ttl time.Duration) error {
	return Conn.Set(ctx, refreshPrefix+userID, hashedToken, ttl).Err()
}

// GetRefreshToken returns the stored hash, or "" when none is active.
func GetRefreshToken(ctx context.Context, userID string) string {
	val, err := Conn.Get(ctx, refreshPrefix+userID).Result()
	if err != nil {
		return ""
	}
	return val
}

// RevokeRefreshToken drops the stored refresh token, ending the session.
func RevokeRefreshToken(ctx context.Context, userID string) error {
	return Conn.Del(ctx, refreshPrefix+userID).Err()
}
