// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"njeyali/config"

	"github.com/go-redis/redis/v8"
)

// PaymentCacheClient caches payment-intent sessions (intent id -> booking id).
var PaymentCacheClient *redis.Client

// InitPaymentCache initializes the Redis client for payment session caching.
func InitPaymentCache() {
	PaymentCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := PaymentCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Payment Cache): %v", err)
	}
}

// GetPaymentCacheClient returns the payment session cache client.
func GetPaymentCacheClient() *redis.Client {
	if PaymentCacheClient == nil {
		InitPaymentCache()
	}
	return PaymentCacheClient
}
