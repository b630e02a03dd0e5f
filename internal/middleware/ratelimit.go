package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	limiterRedis "github.com/ulule/limiter/v3/drivers/store/redis"
)

// RateLimitStoreType selects the backing store for request counters.
type RateLimitStoreType string

const (
	// RateLimitStoreMemory keeps counters in process memory. Single
	// instance only.
	RateLimitStoreMemory RateLimitStoreType = "memory"
	// RateLimitStoreRedis keeps counters in Redis so multiple gateway
	// replicas share one budget.
	RateLimitStoreRedis RateLimitStoreType = "redis"
)

// RateLimitConfig configures a per-client-IP rate limiter.
type RateLimitConfig struct {
	RequestsPerMinute int
	CleanupInterval   time.Duration

	StoreType RateLimitStoreType

	// RedisClient is the shared go-redis client, required for the redis
	// store type. The caller owns its lifecycle.
	RedisClient *redis.Client

	// OnLimitReached runs before the 429 response, e.g. for audit logging.
	OnLimitReached func(c *gin.Context)
}

// NewRateLimiter builds a gin middleware limiting requests per client IP.
// The auth endpoints sit behind this so a misbehaving client cannot burn
// through the identity provider's quota.
func NewRateLimiter(cfg RateLimitConfig) (gin.HandlerFunc, error) {
	rate := limiter.Rate{
		Period: 1 * time.Minute,
		Limit:  int64(cfg.RequestsPerMinute),
	}

	var store limiter.Store
	var err error

	switch cfg.StoreType {
	case RateLimitStoreRedis:
		if cfg.RedisClient == nil {
			return nil, errors.New("redis rate limit store requires a redis client")
		}
		store, err = limiterRedis.NewStoreWithOptions(cfg.RedisClient, limiter.StoreOptions{
			Prefix:          "ratelimit",
			CleanUpInterval: cfg.CleanupInterval,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis store: %w", err)
		}

	case RateLimitStoreMemory:
		fallthrough
	default:
		store = memory.NewStore()
	}

	instance := limiter.New(store, rate)

	middleware := mgin.NewMiddleware(instance, mgin.WithLimitReachedHandler(func(c *gin.Context) {
		if cfg.OnLimitReached != nil {
			cfg.OnLimitReached(c)
		}
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":             "rate_limit_exceeded",
			"error_description": "Too many requests. Please try again later.",
		})
		c.Abort()
	}))

	return middleware, nil
}
