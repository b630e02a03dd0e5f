package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/madfam-org/tezca-gateway/internal/config"
	"github.com/madfam-org/tezca-gateway/internal/handlers"
	"github.com/madfam-org/tezca-gateway/internal/metrics"
	"github.com/madfam-org/tezca-gateway/internal/session"
	"github.com/madfam-org/tezca-gateway/internal/util"
)

const gateSigningSecret = "test-signing-secret-for-gate"

func gateConfig() *config.Config {
	return &config.Config{
		Environment:   config.EnvDevelopment,
		SigningSecret: gateSigningSecret,
		SessionTTL:    time.Hour,
		SignInPath:    "/sign-in",
		HomePath:      "/",
		PublicRoutes:  []string{"/", "/sign-in", "/sso", "/api/auth/*", "/health"},
		StaticPrefix:  "/static/",
	}
}

func gateRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SessionGate(cfg, metrics.NewNoopMetrics()))
	handler := func(c *gin.Context) { c.String(http.StatusOK, "ok") }
	r.GET("/", handler)
	r.GET("/sign-in", handler)
	r.GET("/health", handler)
	r.GET("/api/auth/session", handler)
	r.GET("/static/app.css", handler)
	r.GET("/docs/intro", handler)
	r.GET("/whoami", func(c *gin.Context) {
		user, ok := util.UserFromContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		sess, ok := util.SessionFromContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user, "session": sess})
	})
	return r
}

func gateCredential(t *testing.T, secret string, user session.User) string {
	t.Helper()
	issuer := session.NewIssuer(secret, time.Hour, "test")
	credential, _, err := issuer.Issue(
		user, "access-123", "", time.Now().Add(time.Hour), time.Now())
	require.NoError(t, err)
	return credential
}

func TestSessionGate_PublicRoutes(t *testing.T) {
	r := gateRouter(gateConfig())

	for _, path := range []string{"/", "/sign-in", "/health", "/api/auth/session"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestSessionGate_StaticPrefix(t *testing.T) {
	r := gateRouter(gateConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/static/app.css", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSessionGate_RedirectsWithoutSession(t *testing.T) {
	r := gateRouter(gateConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/docs/intro", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/sign-in", w.Header().Get("Location"))
}

func TestSessionGate_RedirectsOnInvalidCredential(t *testing.T) {
	r := gateRouter(gateConfig())

	for name, credential := range map[string]string{
		"garbage":      "not-a-jwt",
		"wrong secret": gateCredential(t, "some-other-secret", session.User{ID: "user-1"}),
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/docs/intro", nil)
		req.AddCookie(&http.Cookie{Name: handlers.CookieSession, Value: credential})
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusFound, w.Code, name)
		assert.Equal(t, "/sign-in", w.Header().Get("Location"), name)
	}
}

func TestSessionGate_AllowsValidSession(t *testing.T) {
	cfg := gateConfig()
	r := gateRouter(cfg)
	credential := gateCredential(t, cfg.SigningSecret, session.User{ID: "user-1"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/docs/intro", nil)
	req.AddCookie(&http.Cookie{Name: handlers.CookieSession, Value: credential})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSessionGate_InjectsUserIntoContext(t *testing.T) {
	cfg := gateConfig()
	r := gateRouter(cfg)
	credential := gateCredential(t, cfg.SigningSecret, session.User{
		ID:    "user-1",
		Email: "ana@example.com",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: handlers.CookieSession, Value: credential})
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ana@example.com")
}

func TestSessionGate_WildcardPublicRoute(t *testing.T) {
	cfg := gateConfig()
	cfg.PublicRoutes = []string{"/api/auth/*"}
	r := gateRouter(cfg)

	// Prefix entries match everything under them, exact entries only
	// themselves.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/docs/intro", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestSessionGate_RootIsExactMatch(t *testing.T) {
	cfg := gateConfig()
	cfg.PublicRoutes = []string{"/"}
	r := gateRouter(cfg)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// "/" without the wildcard never opens the whole site.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/docs/intro", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestSessionGate_NoSecretDevelopment(t *testing.T) {
	cfg := gateConfig()
	cfg.SigningSecret = ""
	r := gateRouter(cfg)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/docs/intro", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSessionGate_NoSecretProductionFailsClosed(t *testing.T) {
	cfg := gateConfig()
	cfg.SigningSecret = ""
	cfg.Environment = config.EnvProduction
	r := gateRouter(cfg)

	// Every route fails closed, the public allowlist included: a public
	// sign-in page served by a misconfigured gateway would dead-end anyway.
	for _, path := range []string{"/docs/intro", "/sign-in", "/", "/health", "/api/auth/session"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusServiceUnavailable, w.Code, path)
		assert.Contains(t, w.Body.String(), "authentication_unavailable", path)
	}

	// Static assets sit outside the gate entirely.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/static/app.css", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestIsPublicRoute(t *testing.T) {
	routes := []string{"/", "/sign-in", "/api/auth/*"}

	tests := []struct {
		path string
		want bool
	}{
		{"/", true},
		{"/sign-in", true},
		{"/sign-in/extra", false},
		{"/api/auth/", true},
		{"/api/auth/callback", true},
		{"/api/authx", false},
		{"/docs", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isPublicRoute(tt.path, routes), tt.path)
	}
}
