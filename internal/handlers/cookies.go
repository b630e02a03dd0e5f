package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Cookie names on the gateway's inbound surface.
const (
	// CookieState holds the CSRF state between initiation and callback.
	CookieState = "oauth-state"
	// CookieVerifier holds the PKCE code verifier (PKCE variant only).
	CookieVerifier = "pkce-verifier"
	// CookieReturnTo carries an optional safe post-login redirect target.
	CookieReturnTo = "sso-return-to"
	// CookieSession is the signed session credential.
	CookieSession = "session"
	// CookieBridge is the client-readable token bridge. Never http-only.
	CookieBridge = "sso-token-bridge"
)

// setAuthCookie sets an http-only, same-site-lax cookie scoped to the whole
// site. Secure is tied to the production flag so local development over
// plain HTTP keeps working.
func setAuthCookie(c *gin.Context, name, value string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", secure, true)
}

// setBridgeCookie sets the token bridge cookie. Deliberately NOT http-only:
// its whole purpose is client-script readability within its 60-second window.
func setBridgeCookie(c *gin.Context, value string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieBridge, value, maxAge, "/", "", secure, false)
}

// readAndClearCookie consumes a single-use cookie: it returns the value and
// expires the cookie on the response, so a replayed callback finds nothing.
func readAndClearCookie(c *gin.Context, name string, secure bool) (string, error) {
	value, err := c.Cookie(name)
	setAuthCookie(c, name, "", -1, secure)
	return value, err
}

// clearCookie expires a cookie on the response.
func clearCookie(c *gin.Context, name string, secure bool) {
	setAuthCookie(c, name, "", -1, secure)
}
