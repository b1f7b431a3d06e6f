package globals

import (
	"context"
	"os"
)

var (
	JwtSecret  = secretFromEnv("JWT_SECRET", "maison_dev_secret")
	HmacSecret = secretFromEnv("HMAC_SECRET", "maison_tracking_secret")
)

func secretFromEnv(key, fallback string) []byte {
	if v := os.Getenv(key); v != "" {
		return []byte(v)
	}
	return []byte(fallback)
}

// Context keys
type ContextKey string

const RoleKey ContextKey = "role"
const UserIDKey ContextKey = "userId"

var Ctx = context.Background()
