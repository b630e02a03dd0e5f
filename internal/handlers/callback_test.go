package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/madfam-org/tezca-gateway/internal/config"
	"github.com/madfam-org/tezca-gateway/internal/metrics"
	"github.com/madfam-org/tezca-gateway/internal/provider"
	"github.com/madfam-org/tezca-gateway/internal/services"
	"github.com/madfam-org/tezca-gateway/internal/session"
)

// fakeProvider stands in for the identity provider's token and userinfo
// endpoints.
type fakeProvider struct {
	srv *httptest.Server

	tokenStatus    int
	tokenResponse  map[string]any
	userInfoStatus int
	userInfo       map[string]any

	lastTokenForm url.Values
}

func newFakeProvider(t *testing.T) *fakeProvider {
	t.Helper()
	fp := &fakeProvider{
		tokenStatus: http.StatusOK,
		tokenResponse: map[string]any{
			"access_token":  "access-123",
			"token_type":    "Bearer",
			"refresh_token": "refresh-456",
			"expires_in":    900,
		},
		userInfoStatus: http.StatusOK,
		userInfo: map[string]any{
			"sub":            "user-1",
			"email":          "ana@example.com",
			"given_name":     "Ana",
			"family_name":    "Luna",
			"email_verified": true,
			"tier":           "premium",
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		fp.lastTokenForm = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(fp.tokenStatus)
		if fp.tokenStatus == http.StatusOK {
			_ = json.NewEncoder(w).Encode(fp.tokenResponse)
		} else {
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_grant"})
		}
	})
	mux.HandleFunc("/api/v1/oauth/userinfo", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(fp.userInfoStatus)
		if fp.userInfoStatus == http.StatusOK {
			_ = json.NewEncoder(w).Encode(fp.userInfo)
		}
	})

	fp.srv = httptest.NewServer(mux)
	t.Cleanup(fp.srv.Close)
	return fp
}

func newCallbackHandler(cfg *config.Config, fp *fakeProvider) *SSOHandler {
	p := provider.New(provider.Config{
		BaseURL:      fp.srv.URL,
		ClientID:     "gateway-client",
		ClientSecret: "gateway-secret",
		Scopes:       []string{"openid"},
	}, fp.srv.Client())
	issuer := session.NewIssuer(cfg.SigningSecret, cfg.SessionTTL, "test")
	audit := services.NewAuditService(nil, false, 0)
	return NewSSOHandler(cfg, p, issuer, audit, metrics.NewNoopMetrics())
}

func callbackRequest(query string, cookies map[string]string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/auth/callback?"+query, nil)
	req.Host = "app.example"
	for name, value := range cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}
	return req
}

func TestCallback_Success(t *testing.T) {
	fp := newFakeProvider(t)
	cfg := testConfig()
	r := newSSORouter(newCallbackHandler(cfg, fp))

	w := httptest.NewRecorder()
	req := callbackRequest("code=code-1&state=state-1", map[string]string{
		CookieState:    "state-1",
		CookieVerifier: "verifier-abc",
	})
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	// Verifier travels with the exchange, never with the authorize redirect.
	assert.Equal(t, "verifier-abc", fp.lastTokenForm.Get("code_verifier"))
	assert.Equal(t, "code-1", fp.lastTokenForm.Get("code"))
	assert.Equal(t, "http://app.example/api/auth/callback", fp.lastTokenForm.Get("redirect_uri"))

	resp := w.Result()
	sessionCookie := cookieByName(t, resp, CookieSession)
	require.NotNil(t, sessionCookie)
	assert.True(t, sessionCookie.HttpOnly)
	assert.Equal(t, int(cfg.SessionTTL.Seconds()), sessionCookie.MaxAge)

	credential, err := url.QueryUnescape(sessionCookie.Value)
	require.NoError(t, err)
	claims, err := session.VerifyCredential(cfg.SigningSecret, credential)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.User.ID)
	assert.Equal(t, "ana@example.com", claims.User.Email)
	assert.Equal(t, "premium", claims.User.Tier)
	assert.Equal(t, "access-123", claims.AccessToken)
	assert.Equal(t, "refresh-456", claims.RefreshToken)
	assert.NotEmpty(t, claims.Session.ID)

	// State and verifier are single-use; the response must expire both.
	assert.Equal(t, -1, cookieByName(t, resp, CookieState).MaxAge)
	assert.Equal(t, -1, cookieByName(t, resp, CookieVerifier).MaxAge)
}

func TestCallback_BridgeCookie(t *testing.T) {
	fp := newFakeProvider(t)
	cfg := testConfig()
	r := newSSORouter(newCallbackHandler(cfg, fp))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, callbackRequest("code=code-1&state=state-1", map[string]string{
		CookieState: "state-1",
	}))

	bridgeCookie := cookieByName(t, w.Result(), CookieBridge)
	require.NotNil(t, bridgeCookie)
	assert.False(t, bridgeCookie.HttpOnly)
	assert.Equal(t, int(cfg.BridgeTTL.Seconds()), bridgeCookie.MaxAge)

	raw, err := url.QueryUnescape(bridgeCookie.Value)
	require.NoError(t, err)
	var bridge session.TokenBridge
	require.NoError(t, json.Unmarshal([]byte(raw), &bridge))
	assert.Equal(t, "access-123", bridge.AccessToken)
	assert.Equal(t, "refresh-456", bridge.RefreshToken)
	assert.InDelta(t, time.Now().Add(900*time.Second).Unix(), bridge.ExpiresAt, 10)
}

func TestCallback_ProviderError(t *testing.T) {
	fp := newFakeProvider(t)
	r := newSSORouter(newCallbackHandler(testConfig(), fp))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, callbackRequest(
		"error=access_denied&error_description="+url.QueryEscape("User cancelled"),
		nil,
	))

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/sign-in?sso_error=User%20cancelled", w.Header().Get("Location"))
	assert.Nil(t, cookieByName(t, w.Result(), CookieSession))
}

func TestCallback_MissingCode(t *testing.T) {
	fp := newFakeProvider(t)
	r := newSSORouter(newCallbackHandler(testConfig(), fp))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, callbackRequest("state=state-1", map[string]string{
		CookieState: "state-1",
	}))

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t,
		"/sign-in?sso_error=Incomplete%20response%20from%20identity%20provider",
		w.Header().Get("Location"),
	)
}

func TestCallback_StateMismatch(t *testing.T) {
	fp := newFakeProvider(t)
	r := newSSORouter(newCallbackHandler(testConfig(), fp))

	// A mismatched and a missing state cookie must be indistinguishable to
	// the browser.
	cases := []map[string]string{
		{CookieState: "other-state"},
		nil,
	}
	for _, cookies := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, callbackRequest("code=code-1&state=state-1", cookies))

		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t,
			"/sign-in?sso_error=Invalid%20session%20state",
			w.Header().Get("Location"),
		)
		assert.Nil(t, cookieByName(t, w.Result(), CookieSession))
	}
}

func TestCallback_ExchangeRejected(t *testing.T) {
	fp := newFakeProvider(t)
	fp.tokenStatus = http.StatusBadRequest
	r := newSSORouter(newCallbackHandler(testConfig(), fp))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, callbackRequest("code=expired-code&state=state-1", map[string]string{
		CookieState: "state-1",
	}))

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t,
		"/sign-in?sso_error=Unable%20to%20complete%20sign-in",
		w.Header().Get("Location"),
	)
	assert.Nil(t, cookieByName(t, w.Result(), CookieSession))
}

func TestCallback_UserInfoFailureUsesPlaceholder(t *testing.T) {
	fp := newFakeProvider(t)
	fp.userInfoStatus = http.StatusInternalServerError
	cfg := testConfig()
	r := newSSORouter(newCallbackHandler(cfg, fp))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, callbackRequest("code=code-1&state=state-1", map[string]string{
		CookieState: "state-1",
	}))

	// Profile is enrichment only; tokens still produce a session.
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	sessionCookie := cookieByName(t, w.Result(), CookieSession)
	require.NotNil(t, sessionCookie)
	credential, err := url.QueryUnescape(sessionCookie.Value)
	require.NoError(t, err)
	claims, err := session.VerifyCredential(cfg.SigningSecret, credential)
	require.NoError(t, err)
	assert.Equal(t, session.PlaceholderID, claims.User.ID)
	assert.Equal(t, "access-123", claims.AccessToken)
}

func TestCallback_MissingExpiresInDefaultsToOneHour(t *testing.T) {
	fp := newFakeProvider(t)
	fp.tokenResponse = map[string]any{
		"access_token": "access-123",
		"token_type":   "Bearer",
	}
	cfg := testConfig()
	r := newSSORouter(newCallbackHandler(cfg, fp))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, callbackRequest("code=code-1&state=state-1", map[string]string{
		CookieState: "state-1",
	}))

	sessionCookie := cookieByName(t, w.Result(), CookieSession)
	require.NotNil(t, sessionCookie)
	credential, err := url.QueryUnescape(sessionCookie.Value)
	require.NoError(t, err)
	claims, err := session.VerifyCredential(cfg.SigningSecret, credential)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.Session.ExpiresAt, 10*time.Second)
}

func TestCallback_SigningFailure(t *testing.T) {
	fp := newFakeProvider(t)
	cfg := testConfig()
	cfg.SigningSecret = ""
	r := newSSORouter(newCallbackHandler(cfg, fp))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, callbackRequest("code=code-1&state=state-1", map[string]string{
		CookieState: "state-1",
	}))

	// Never a success redirect without a signed cookie.
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "session_signing_failed")
	assert.Nil(t, cookieByName(t, w.Result(), CookieSession))
	assert.Nil(t, cookieByName(t, w.Result(), CookieBridge))
}

func TestCallback_ReturnToCookie(t *testing.T) {
	fp := newFakeProvider(t)
	r := newSSORouter(newCallbackHandler(testConfig(), fp))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, callbackRequest("code=code-1&state=state-1", map[string]string{
		CookieState:    "state-1",
		CookieReturnTo: "/docs/intro",
	}))

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/docs/intro", w.Header().Get("Location"))
}

func TestCallback_UnsafeReturnToIgnored(t *testing.T) {
	fp := newFakeProvider(t)
	r := newSSORouter(newCallbackHandler(testConfig(), fp))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, callbackRequest("code=code-1&state=state-1", map[string]string{
		CookieState:    "state-1",
		CookieReturnTo: url.QueryEscape("https://evil.example/phish"),
	}))

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}
