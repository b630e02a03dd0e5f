package bootstrap

import (
	"context"
	"fmt"
	"log"

	"github.com/madfam-org/tezca-gateway/internal/cache"
	"github.com/madfam-org/tezca-gateway/internal/config"
	"github.com/madfam-org/tezca-gateway/internal/core"
	"github.com/madfam-org/tezca-gateway/internal/metrics"
)

// initializeMetrics initializes Prometheus metrics
func initializeMetrics(cfg *config.Config) core.Recorder {
	recorder := metrics.Init(cfg.MetricsEnabled)
	if cfg.MetricsEnabled {
		log.Println("Prometheus metrics initialized")
	} else {
		log.Println("Metrics disabled (using noop implementation)")
	}
	return recorder
}

// initializeMetricsCache initializes the metrics cache based on configuration
func initializeMetricsCache(
	ctx context.Context,
	cfg *config.Config,
) (core.Cache[int64], func() error, error) {
	if !cfg.MetricsEnabled || !cfg.MetricsGaugeUpdateEnabled || !cfg.EnableAuditLogging {
		return nil, nil, nil
	}

	switch cfg.MetricsCacheType {
	case config.MetricsCacheTypeRedis:
		c, err := cache.NewRueidisCache[int64](
			ctx,
			cfg.RedisAddr,
			cfg.RedisPassword,
			cfg.RedisDB,
			"tezca:metrics:",
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize redis metrics cache: %w", err)
		}
		log.Printf("Metrics cache: redis (addr=%s, db=%d)", cfg.RedisAddr, cfg.RedisDB)
		return c, c.Close, nil

	default: // memory
		c := cache.NewMemoryCache[int64]()
		log.Println("Metrics cache: memory (single instance only)")
		return c, c.Close, nil
	}
}
