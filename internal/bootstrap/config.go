package bootstrap

import (
	"errors"
	"fmt"
	"log"

	"github.com/madfam-org/tezca-gateway/internal/config"
	"github.com/madfam-org/tezca-gateway/internal/middleware"
)

// validateAllConfiguration validates all configuration settings
func validateAllConfiguration(cfg *config.Config) {
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if err := validateProviderConfig(cfg); err != nil {
		log.Fatalf("Invalid identity provider configuration: %v", err)
	}
	if err := validateRateLimitConfig(cfg); err != nil {
		log.Fatalf("Invalid rate limit configuration: %v", err)
	}
}

// validateProviderConfig checks consistency of the SSO provider settings.
// A missing client id is allowed (the handlers answer 503), but partial
// credentials are a deployment mistake worth failing on.
func validateProviderConfig(cfg *config.Config) error {
	if cfg.ClientID != "" && cfg.ProviderBaseURL == "" {
		return errors.New("SSO_PROVIDER_URL is required when SSO_CLIENT_ID is set")
	}
	if cfg.ClientID == "" && cfg.ClientSecret != "" {
		return errors.New("SSO_CLIENT_SECRET is set but SSO_CLIENT_ID is empty")
	}
	return nil
}

// validateRateLimitConfig checks that the selected store is valid
func validateRateLimitConfig(cfg *config.Config) error {
	if !cfg.EnableRateLimit {
		return nil
	}
	switch middleware.RateLimitStoreType(cfg.RateLimitStore) {
	case middleware.RateLimitStoreMemory, middleware.RateLimitStoreRedis:
		return nil
	default:
		return fmt.Errorf("invalid RATE_LIMIT_STORE: %s (must be: memory, redis)", cfg.RateLimitStore)
	}
}
