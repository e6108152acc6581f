// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"cleanitalia/config"

	"github.com/go-redis/redis/v8"
)

// AuthCacheClient is the dedicated client for admin session storage.
var AuthCacheClient *redis.Client

// InitAuthCache initializes the Redis client for admin sessions (using DB
// from AppConfig). Callers must only invoke this when REDIS_ADDR is set.
func InitAuthCache() {
	AuthCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAuthDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := AuthCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Auth Cache): %v", err)
	}
}

// GetAuthCacheClient returns the Redis client for admin sessions.
func GetAuthCacheClient() *redis.Client {
	if AuthCacheClient == nil {
		InitAuthCache()
	}
	return AuthCacheClient
}
