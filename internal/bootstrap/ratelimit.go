package bootstrap

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/madfam-org/tezca-gateway/internal/config"
	"github.com/madfam-org/tezca-gateway/internal/middleware"
	"github.com/madfam-org/tezca-gateway/internal/services"
)

// rateLimitMiddlewares holds rate limiting middlewares for different endpoints
type rateLimitMiddlewares struct {
	sso      gin.HandlerFunc
	callback gin.HandlerFunc
}

// setupRateLimiting configures rate limiting middlewares based on
// configuration. Accepts an optional shared go-redis client.
func setupRateLimiting(
	cfg *config.Config,
	auditService *services.AuditService,
	redisClient *redis.Client,
) rateLimitMiddlewares {
	noOpMiddleware := func(c *gin.Context) { c.Next() }

	if !cfg.EnableRateLimit {
		return rateLimitMiddlewares{
			sso:      noOpMiddleware,
			callback: noOpMiddleware,
		}
	}

	log.Printf("Rate limiting enabled (store: %s)", cfg.RateLimitStore)
	storeType := middleware.RateLimitStoreType(cfg.RateLimitStore)

	createLimiter := func(requestsPerMinute int, endpoint string) gin.HandlerFunc {
		limiter, err := middleware.NewRateLimiter(middleware.RateLimitConfig{
			RequestsPerMinute: requestsPerMinute,
			StoreType:         storeType,
			RedisClient:       redisClient,
			CleanupInterval:   cfg.RateLimitCleanupInterval,
			OnLimitReached: func(c *gin.Context) {
				auditService.LogRateLimitExceeded(c)
			},
		})
		if err != nil {
			log.Fatalf("Failed to create rate limiter for %s: %v", endpoint, err)
		}
		return limiter
	}

	return rateLimitMiddlewares{
		sso:      createLimiter(cfg.SSORateLimit, "/api/auth/sso"),
		callback: createLimiter(cfg.CallbackRateLimit, "/api/auth/callback"),
	}
}
