package util

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/madfam-org/tezca-gateway/internal/session"
)

// Context keys set by middleware
const (
	ContextKeyClientIP = "client_ip"
	ContextKeyUser     = "user"
	ContextKeySession  = "session"
)

// IPMiddleware extracts client IP and stores it in the context
func IPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Gin's ClientIP() handles X-Forwarded-For and other headers
		c.Set(ContextKeyClientIP, c.ClientIP())
		c.Next()
	}
}

// GetIPFromContext extracts the client IP address from the context
func GetIPFromContext(ctx context.Context) string {
	if ginCtx, ok := ctx.(*gin.Context); ok {
		return ginCtx.ClientIP()
	}
	if ip, ok := ctx.Value(ContextKeyClientIP).(string); ok {
		return ip
	}
	return ""
}

// UserFromContext returns the authenticated user injected by the session
// gate, or false when the request is anonymous.
func UserFromContext(c *gin.Context) (session.User, bool) {
	v, exists := c.Get(ContextKeyUser)
	if !exists {
		return session.User{}, false
	}
	u, ok := v.(session.User)
	return u, ok
}

// SessionFromContext returns the session injected by the session gate.
func SessionFromContext(c *gin.Context) (session.Session, bool) {
	v, exists := c.Get(ContextKeySession)
	if !exists {
		return session.Session{}, false
	}
	s, ok := v.(session.Session)
	return s, ok
}
