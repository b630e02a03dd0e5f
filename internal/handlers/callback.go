package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/madfam-org/tezca-gateway/internal/session"
	"github.com/madfam-org/tezca-gateway/internal/util"
)

// User-facing failure reasons. The callback never surfaces stack traces or
// upstream identifiers to the browser; details go to the server log only.
const (
	msgIncompleteResponse = "Incomplete response from identity provider"
	msgInvalidState       = "Invalid session state"
	msgExchangeFailed     = "Unable to complete sign-in"
)

// Callback handles the identity provider's redirect. Every failure funnels
// back to the sign-in page via redirect; only a signing failure surfaces a
// server error, because a success redirect without a signed cookie would be
// a lie.
//
//	@Summary		SSO callback
//	@Description	Exchanges the authorization code for tokens and issues a signed session
//	@Tags			auth
//	@Param			code	query	string	false	"authorization code"
//	@Param			state	query	string	false	"CSRF state"
//	@Param			error	query	string	false	"provider error"
//	@Success		302
//	@Router			/api/auth/callback [get]
func (h *SSOHandler) Callback(c *gin.Context) {
	secure := h.cfg.IsProduction()

	// Provider-reported error (user cancelled, access denied, ...)
	if errParam := c.Query("error"); errParam != "" {
		reason := c.Query("error_description")
		if reason == "" {
			reason = errParam
		}
		h.failSignIn(c, "provider_error", reason)
		return
	}

	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		h.failSignIn(c, "incomplete", msgIncompleteResponse)
		return
	}

	// Single-use: reading deletes, so a replayed callback finds no state.
	storedState, stateErr := readAndClearCookie(c, CookieState, secure)
	verifier, _ := readAndClearCookie(c, CookieVerifier, secure)
	returnTo, _ := readAndClearCookie(c, CookieReturnTo, secure)

	if stateErr != nil || storedState == "" || storedState != state {
		h.failSignIn(c, "state_mismatch", msgInvalidState)
		return
	}

	redirectURI := util.RequestOrigin(c.Request) + h.cfg.CallbackPath

	start := time.Now()
	tok, err := h.provider.Exchange(c.Request.Context(), code, redirectURI, verifier)
	h.metrics.RecordTokenExchange(err == nil, time.Since(start))
	if err != nil {
		log.Printf("[SSO] Token exchange failed: %v", err)
		h.failSignIn(c, "exchange_failed", msgExchangeFailed)
		return
	}

	// Best-effort enrichment: tokens are primary, profile is optional.
	var profile *session.User
	start = time.Now()
	p, err := h.provider.FetchUserInfo(c.Request.Context(), tok.AccessToken)
	h.metrics.RecordUserInfoFetch(err == nil, time.Since(start))
	if err != nil {
		log.Printf("[SSO] Userinfo fetch failed, proceeding with placeholder identity: %v", err)
	} else {
		profile = &session.User{
			ID:            p.Sub,
			Email:         p.Email,
			GivenName:     p.GivenName,
			FamilyName:    p.FamilyName,
			EmailVerified: p.EmailVerified,
			Picture:       p.Picture,
			Tier:          p.Tier,
		}
	}

	user := session.PlaceholderUser()
	if profile != nil {
		user = *profile
	}

	now := time.Now()
	credential, sess, err := h.issuer.Issue(
		user,
		tok.AccessToken,
		tok.RefreshToken,
		tok.Expiry,
		now,
	)
	if err != nil {
		// Must never produce an unsigned cookie or a success redirect.
		log.Printf("[SSO] Failed to sign session credential: %v", err)
		h.audit.LogSSOFailure(c, "signing_failed", user.ID)
		h.metrics.RecordSSOCallback("signing_failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session_signing_failed"})
		return
	}

	setAuthCookie(c, CookieSession, credential, int(h.cfg.SessionTTL.Seconds()), secure)

	bridge, err := json.Marshal(session.Bridge(tok.AccessToken, tok.RefreshToken, sess))
	if err == nil {
		setBridgeCookie(c, string(bridge), int(h.cfg.BridgeTTL.Seconds()), secure)
	}

	h.audit.LogSSOSuccess(c, user.ID, sess.ID, tok.AccessToken)
	h.metrics.RecordSSOCallback("success")
	h.metrics.RecordSessionIssued()

	target := h.cfg.HomePath
	if returnTo != "" && util.IsRedirectSafe(returnTo, util.RequestOrigin(c.Request)) {
		target = returnTo
	}
	c.Redirect(http.StatusFound, target)
}

// failSignIn redirects to the sign-in entry point with a human-readable
// reason in the sso_error query parameter.
func (h *SSOHandler) failSignIn(c *gin.Context, result, reason string) {
	h.audit.LogSSOFailure(c, result, "")
	h.metrics.RecordSSOCallback(result)

	// QueryEscape encodes spaces as '+', which some sign-in pages render
	// literally. Percent-encode them instead; literal '+' is already %2B.
	escaped := strings.ReplaceAll(url.QueryEscape(reason), "+", "%20")
	c.Redirect(http.StatusFound, h.cfg.SignInPath+"?sso_error="+escaped)
}
