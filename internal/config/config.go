package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment constants
const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
)

type Config struct {
	// Server settings
	ServerAddr  string
	BaseURL     string
	Environment string

	// Identity provider settings
	ProviderBaseURL       string
	ClientID              string
	ClientSecret          string
	Scopes                []string
	ProviderTimeout       time.Duration
	ProviderSkipTLSVerify bool

	// Session settings
	SigningSecret  string
	SessionTTL     time.Duration // signed session credential lifetime
	StateCookieTTL time.Duration // oauth-state / pkce-verifier lifetime
	BridgeTTL      time.Duration // sso-token-bridge lifetime

	// Routing
	SignInPath    string
	CallbackPath  string
	HomePath      string
	PublicRoutes  []string
	StaticPrefix  string

	// Sign-out back-channel notification
	SignOutNotifyEnabled bool
	SignOutMaxRetries    int
	SignOutRetryDelay    time.Duration
	SignOutMaxRetryDelay time.Duration

	// Metrics
	MetricsEnabled             bool
	MetricsToken               string
	MetricsGaugeUpdateEnabled  bool
	MetricsGaugeUpdateInterval time.Duration
	MetricsCacheType           string // "memory" or "redis"

	// Redis (rate limiting and metrics cache)
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	RedisConnTimeout time.Duration

	// Rate limiting
	EnableRateLimit          bool
	RateLimitStore           string // "memory" or "redis"
	SSORateLimit             int
	CallbackRateLimit        int
	RateLimitCleanupInterval time.Duration

	// Audit logging
	EnableAuditLogging bool
	AuditLogBufferSize int
	AuditLogRetention  int // days
	DatabaseDriver     string
	DatabaseDSN        string
	DBInitTimeout      time.Duration
}

// Metrics cache type constants
const (
	MetricsCacheTypeMemory = "memory"
	MetricsCacheTypeRedis  = "redis"
)

func Load() *Config {
	// Load .env file if exists (ignore error if not found)
	_ = godotenv.Load()

	driver := getEnv("DATABASE_DRIVER", "sqlite")
	var dsn string
	if driver == "sqlite" {
		dsn = getEnv("DATABASE_DSN", "gateway.db")
	} else {
		dsn = getEnv("DATABASE_DSN", "")
	}

	return &Config{
		ServerAddr:  getEnv("SERVER_ADDR", ":8080"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),
		Environment: getEnv("ENVIRONMENT", EnvDevelopment),

		ProviderBaseURL:       getEnv("SSO_PROVIDER_URL", ""),
		ClientID:              getEnv("SSO_CLIENT_ID", ""),
		ClientSecret:          getEnv("SSO_CLIENT_SECRET", ""),
		Scopes:                getEnvSlice("SSO_SCOPES", []string{"openid", "profile", "email"}),
		ProviderTimeout:       getEnvDuration("SSO_PROVIDER_TIMEOUT", 10*time.Second),
		ProviderSkipTLSVerify: getEnvBool("SSO_INSECURE_SKIP_VERIFY", false),

		SigningSecret:  getEnv("SESSION_SIGNING_SECRET", ""),
		SessionTTL:     getEnvDuration("SESSION_TTL", 7*24*time.Hour),
		StateCookieTTL: getEnvDuration("STATE_COOKIE_TTL", 300*time.Second),
		BridgeTTL:      getEnvDuration("TOKEN_BRIDGE_TTL", 60*time.Second),

		SignInPath:   getEnv("SIGN_IN_PATH", "/sign-in"),
		CallbackPath: getEnv("CALLBACK_PATH", "/api/auth/callback"),
		HomePath:     getEnv("HOME_PATH", "/"),
		PublicRoutes: getEnvSlice("PUBLIC_ROUTES", []string{
			"/",
			"/sign-in",
			"/sso",
			"/api/auth/*",
			"/health",
		}),
		StaticPrefix: getEnv("STATIC_PREFIX", "/static/"),

		SignOutNotifyEnabled: getEnvBool("SIGN_OUT_NOTIFY_ENABLED", false),
		SignOutMaxRetries:    getEnvInt("SIGN_OUT_MAX_RETRIES", 3),
		SignOutRetryDelay:    getEnvDuration("SIGN_OUT_RETRY_DELAY", 1*time.Second),
		SignOutMaxRetryDelay: getEnvDuration("SIGN_OUT_MAX_RETRY_DELAY", 10*time.Second),

		MetricsEnabled:             getEnvBool("METRICS_ENABLED", false),
		MetricsToken:               getEnv("METRICS_TOKEN", ""),
		MetricsGaugeUpdateEnabled:  getEnvBool("METRICS_GAUGE_UPDATE_ENABLED", true),
		MetricsGaugeUpdateInterval: getEnvDuration("METRICS_GAUGE_UPDATE_INTERVAL", 60*time.Second),
		MetricsCacheType:           getEnv("METRICS_CACHE_TYPE", MetricsCacheTypeMemory),

		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:          getEnvInt("REDIS_DB", 0),
		RedisConnTimeout: getEnvDuration("REDIS_CONN_TIMEOUT", 5*time.Second),

		EnableRateLimit:          getEnvBool("ENABLE_RATE_LIMIT", true),
		RateLimitStore:           getEnv("RATE_LIMIT_STORE", "memory"),
		SSORateLimit:             getEnvInt("SSO_RATE_LIMIT", 30),
		CallbackRateLimit:        getEnvInt("CALLBACK_RATE_LIMIT", 60),
		RateLimitCleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 10*time.Minute),

		EnableAuditLogging: getEnvBool("ENABLE_AUDIT_LOGGING", false),
		AuditLogBufferSize: getEnvInt("AUDIT_LOG_BUFFER_SIZE", 1000),
		AuditLogRetention:  getEnvInt("AUDIT_LOG_RETENTION_DAYS", 90),
		DatabaseDriver:     driver,
		DatabaseDSN:        dsn,
		DBInitTimeout:      getEnvDuration("DB_INIT_TIMEOUT", 30*time.Second),
	}
}

// IsProduction reports whether the gateway runs in production mode.
// The session gate fails closed on missing secrets only in production.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// Validate checks configuration consistency. Missing SSO credentials are not
// an error here: the handlers answer 503 instead, so a misconfigured gateway
// still boots and surfaces its state over HTTP.
func (c *Config) Validate() error {
	if c.ServerAddr == "" {
		return fmt.Errorf("SERVER_ADDR must not be empty")
	}
	if c.Environment != EnvProduction && c.Environment != EnvDevelopment {
		return fmt.Errorf("invalid ENVIRONMENT: %s (must be: production, development)", c.Environment)
	}
	if c.IsProduction() && c.SigningSecret == "" {
		// Boot is allowed; the gate returns 503 until the secret is set.
		// Still worth rejecting obviously broken combinations early.
		if c.ClientID != "" {
			return fmt.Errorf("SESSION_SIGNING_SECRET is required in production when SSO_CLIENT_ID is set")
		}
	}
	if c.StateCookieTTL <= 0 || c.SessionTTL <= 0 || c.BridgeTTL <= 0 {
		return fmt.Errorf("cookie lifetimes must be positive")
	}
	if c.MetricsCacheType != MetricsCacheTypeMemory && c.MetricsCacheType != MetricsCacheTypeRedis {
		return fmt.Errorf("invalid METRICS_CACHE_TYPE: %s (must be: memory, redis)", c.MetricsCacheType)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var i int
		if _, err := fmt.Sscanf(value, "%d", &i); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := []string{}
		for _, part := range strings.Split(value, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				parts = append(parts, trimmed)
			}
		}
		if len(parts) > 0 {
			return parts
		}
	}
	return defaultValue
}
