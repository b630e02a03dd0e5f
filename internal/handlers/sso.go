package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"

	"github.com/madfam-org/tezca-gateway/internal/config"
	"github.com/madfam-org/tezca-gateway/internal/core"
	"github.com/madfam-org/tezca-gateway/internal/pkce"
	"github.com/madfam-org/tezca-gateway/internal/provider"
	"github.com/madfam-org/tezca-gateway/internal/services"
	"github.com/madfam-org/tezca-gateway/internal/session"
	"github.com/madfam-org/tezca-gateway/internal/util"
)

// Initiation variants. Both stay live: /api/auth/sso is the primary PKCE
// flow, /sso remains for links minted before PKCE was introduced.
const (
	VariantPKCE  = "pkce"
	VariantPlain = "plain"
)

// SSOHandler drives the federated login flow: initiation and callback.
type SSOHandler struct {
	cfg      *config.Config
	provider *provider.Client
	issuer   *session.Issuer
	audit    *services.AuditService
	metrics  core.Recorder
}

// NewSSOHandler creates the SSO handler.
func NewSSOHandler(
	cfg *config.Config,
	p *provider.Client,
	issuer *session.Issuer,
	audit *services.AuditService,
	m core.Recorder,
) *SSOHandler {
	return &SSOHandler{
		cfg:      cfg,
		provider: p,
		issuer:   issuer,
		audit:    audit,
		metrics:  m,
	}
}

// InitiatePKCE starts a login with PKCE code binding.
//
//	@Summary		Start SSO login (PKCE)
//	@Description	Redirects the browser to the identity provider's authorization endpoint
//	@Tags			auth
//	@Success		302
//	@Failure		503	{object}	map[string]string
//	@Router			/api/auth/sso [get]
func (h *SSOHandler) InitiatePKCE(c *gin.Context) {
	h.initiate(c, true)
}

// Initiate starts a login without PKCE.
//
//	@Summary		Start SSO login
//	@Tags			auth
//	@Success		302
//	@Failure		503	{object}	map[string]string
//	@Router			/sso [get]
func (h *SSOHandler) Initiate(c *gin.Context) {
	h.initiate(c, false)
}

func (h *SSOHandler) initiate(c *gin.Context, withPKCE bool) {
	variant := VariantPlain
	if withPKCE {
		variant = VariantPKCE
	}

	// Hard dependency, not a soft failure: without a client id the provider
	// cannot identify us, so fail closed.
	if !h.provider.Configured() {
		h.metrics.RecordSSOInitiated(variant, false)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "sso_not_configured",
			"message": "Single sign-on is not configured on this server.",
		})
		return
	}

	secure := h.cfg.IsProduction()
	ttl := int(h.cfg.StateCookieTTL.Seconds())

	state, err := pkce.GenerateState()
	if err != nil {
		// Entropy failure aborts the attempt; never weak randomness.
		log.Printf("[SSO] Failed to generate state: %v", err)
		h.metrics.RecordSSOInitiated(variant, false)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}
	setAuthCookie(c, CookieState, state, ttl, secure)

	opts := []oauth2.AuthCodeOption{}
	if withPKCE {
		verifier, err := pkce.GenerateCodeVerifier()
		if err != nil {
			log.Printf("[SSO] Failed to generate code verifier: %v", err)
			h.metrics.RecordSSOInitiated(variant, false)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
			return
		}
		setAuthCookie(c, CookieVerifier, verifier, ttl, secure)
		opts = append(opts, oauth2.S256ChallengeOption(verifier))
	}

	// Carry an optional post-login destination, but only a safe one.
	origin := util.RequestOrigin(c.Request)
	if redirect := c.Query("redirect"); redirect != "" &&
		util.IsRedirectSafe(redirect, origin) {
		setAuthCookie(c, CookieReturnTo, redirect, ttl, secure)
	}

	redirectURI := origin + h.cfg.CallbackPath
	authURL := h.provider.AuthCodeURL(redirectURI, state, opts...)

	h.audit.LogSSOInitiated(c, variant)
	h.metrics.RecordSSOInitiated(variant, true)
	c.Redirect(http.StatusFound, authURL)
}
