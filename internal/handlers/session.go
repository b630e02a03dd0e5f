package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/madfam-org/tezca-gateway/internal/config"
	"github.com/madfam-org/tezca-gateway/internal/core"
	"github.com/madfam-org/tezca-gateway/internal/provider"
	"github.com/madfam-org/tezca-gateway/internal/services"
	"github.com/madfam-org/tezca-gateway/internal/session"
)

// SessionHandler serves session introspection and sign-out.
type SessionHandler struct {
	cfg      *config.Config
	notifier *provider.SignOutNotifier
	audit    *services.AuditService
	metrics  core.Recorder
}

func NewSessionHandler(
	cfg *config.Config,
	notifier *provider.SignOutNotifier,
	audit *services.AuditService,
	metrics core.Recorder,
) *SessionHandler {
	return &SessionHandler{
		cfg:      cfg,
		notifier: notifier,
		audit:    audit,
		metrics:  metrics,
	}
}

// Current reports the caller's session. It never fails: an absent, invalid,
// or expired credential yields authenticated=false with a 200.
//
//	@Summary		Current session
//	@Description	Returns the authenticated user and session, or authenticated=false
//	@Tags			auth
//	@Produce		json
//	@Success		200	{object}	map[string]any
//	@Router			/api/auth/session [get]
func (h *SessionHandler) Current(c *gin.Context) {
	credential, err := c.Cookie(CookieSession)
	if err != nil || credential == "" {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}

	claims, err := session.VerifyCredential(h.cfg.SigningSecret, credential)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"user":          claims.User,
		"session":       claims.Session,
	})
}

// SignOut clears the session cookie and best-effort notifies the identity
// provider so the upstream token can be revoked. Idempotent: signing out
// without a session still succeeds.
//
//	@Summary		Sign out
//	@Description	Clears the session cookie and notifies the identity provider
//	@Tags			auth
//	@Produce		json
//	@Success		200	{object}	map[string]any
//	@Router			/api/auth/signout [post]
func (h *SessionHandler) SignOut(c *gin.Context) {
	secure := h.cfg.IsProduction()

	credential, err := c.Cookie(CookieSession)
	if err == nil && credential != "" {
		if claims, verr := session.VerifyCredential(h.cfg.SigningSecret, credential); verr == nil {
			if claims.AccessToken != "" && h.notifier != nil {
				if nerr := h.notifier.Notify(c.Request.Context(), claims.AccessToken); nerr != nil {
					log.Printf("[SSO] Sign-out notification failed: %v", nerr)
				}
			}
			h.audit.LogSignOut(c, claims.User.ID, claims.Session.ID, claims.AccessToken)
		}
	}

	clearCookie(c, CookieSession, secure)
	clearCookie(c, CookieBridge, secure)
	h.metrics.RecordSignOut()

	c.JSON(http.StatusOK, gin.H{"success": true})
}
