package middleware

import (
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/madfam-org/tezca-gateway/internal/config"
	"github.com/madfam-org/tezca-gateway/internal/core"
	"github.com/madfam-org/tezca-gateway/internal/handlers"
	"github.com/madfam-org/tezca-gateway/internal/session"
	"github.com/madfam-org/tezca-gateway/internal/util"
)

// Gate decisions, as recorded in metrics.
const (
	gateAllowedPublic  = "public"
	gateAllowedSession = "session"
	gateAllowedNoAuth  = "auth_disabled"
	gateRedirected     = "redirected"
	gateFailedClosed   = "failed_closed"
)

var misconfigWarnOnce sync.Once

// SessionGate protects every non-public route behind a valid session
// credential. An unset signing secret fails closed in production and
// disables the gate everywhere else, so local development works without
// secrets but a production misconfiguration never serves protected content.
func SessionGate(cfg *config.Config, metrics core.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if cfg.StaticPrefix != "" && strings.HasPrefix(path, cfg.StaticPrefix) {
			c.Next()
			return
		}

		// Secret state is decided before the allowlist: a production
		// gateway without a signing secret answers 503 on every route,
		// public or not.
		if cfg.SigningSecret == "" {
			if cfg.IsProduction() {
				metrics.RecordGateDecision(gateFailedClosed)
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
					"error": "authentication_unavailable",
				})
				return
			}
			misconfigWarnOnce.Do(func() {
				log.Printf("[gate] SIGNING_SECRET is not set, session gate disabled outside production")
			})
			metrics.RecordGateDecision(gateAllowedNoAuth)
			c.Next()
			return
		}

		if isPublicRoute(path, cfg.PublicRoutes) {
			metrics.RecordGateDecision(gateAllowedPublic)
			c.Next()
			return
		}

		credential, err := c.Cookie(handlers.CookieSession)
		if err == nil && credential != "" {
			claims, verr := session.VerifyCredential(cfg.SigningSecret, credential)
			if verr == nil {
				c.Set(util.ContextKeyUser, claims.User)
				c.Set(util.ContextKeySession, claims.Session)
				metrics.RecordGateDecision(gateAllowedSession)
				c.Next()
				return
			}
		}

		metrics.RecordGateDecision(gateRedirected)
		c.Redirect(http.StatusFound, cfg.SignInPath)
		c.Abort()
	}
}

// isPublicRoute matches a request path against the configured allowlist.
// Entries ending in "*" match by prefix, everything else matches exactly.
func isPublicRoute(path string, routes []string) bool {
	for _, route := range routes {
		if strings.HasSuffix(route, "*") {
			if strings.HasPrefix(path, strings.TrimSuffix(route, "*")) {
				return true
			}
			continue
		}
		if path == route {
			return true
		}
	}
	return false
}
