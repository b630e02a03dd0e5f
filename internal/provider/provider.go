// Package provider is the HTTPS client for the external OpenID-Connect
// identity provider: authorization URL construction, authorization-code
// exchange, best-effort userinfo retrieval, and the back-channel sign-out
// notification.
package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
)

const (
	authorizePath = "/api/v1/oauth/authorize"
	tokenPath     = "/api/v1/oauth/token"
	userInfoPath  = "/api/v1/oauth/userinfo"
)

// Config contains the identity-provider settings.
type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	Scopes       []string
}

// TokenResult is the provider's reply to a code exchange. A zero Expiry
// means the provider omitted expires_in; the session issuer applies the
// one-hour default.
type TokenResult struct {
	AccessToken  string
	RefreshToken string
	Expiry       time.Time
}

// UserProfile is the identity-provider user record. Every field beyond the
// subject id is optional enrichment.
type UserProfile struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	EmailVerified bool   `json:"email_verified"`
	Picture       string `json:"picture"`
	Tier          string `json:"tier"`
}

// Client talks to the identity provider.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// New creates a provider client. httpClient must carry a bounded timeout so
// a hanging provider cannot stall the browser indefinitely.
func New(cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{cfg: cfg, httpClient: httpClient}
}

// Configured reports whether a client id is present.
func (c *Client) Configured() bool {
	return c.cfg.ClientID != ""
}

func (c *Client) oauthConfig(redirectURI string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.cfg.ClientID,
		ClientSecret: c.cfg.ClientSecret,
		RedirectURL:  redirectURI,
		Scopes:       c.cfg.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  c.cfg.BaseURL + authorizePath,
			TokenURL: c.cfg.BaseURL + tokenPath,
			// The provider expects client credentials in the form body,
			// not basic auth.
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

// AuthCodeURL composes the authorization URL for one login attempt. The
// redirect URI must exactly match what the provider has registered, so it is
// derived per-request from the trusted origin by the caller.
func (c *Client) AuthCodeURL(redirectURI, state string, opts ...oauth2.AuthCodeOption) string {
	return c.oauthConfig(redirectURI).AuthCodeURL(state, opts...)
}

// Exchange trades an authorization code for tokens. codeVerifier is empty in
// the non-PKCE variant. Failures are classified per the gateway error
// taxonomy and are never retried; the user restarts from initiation.
func (c *Client) Exchange(
	ctx context.Context,
	code, redirectURI, codeVerifier string,
) (TokenResult, error) {
	if !c.Configured() {
		return TokenResult{}, ErrNotConfigured
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)

	opts := []oauth2.AuthCodeOption{}
	if codeVerifier != "" {
		opts = append(opts, oauth2.VerifierOption(codeVerifier))
	}

	tok, err := c.oauthConfig(redirectURI).Exchange(ctx, code, opts...)
	if err != nil {
		return TokenResult{}, classifyExchangeError(err)
	}

	return TokenResult{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		Expiry:       tok.Expiry,
	}, nil
}

// classifyExchangeError maps oauth2 errors onto the gateway taxonomy:
// an upstream HTTP response (any non-2xx, or a malformed body) is a
// rejection; anything without a response is a transport failure.
func classifyExchangeError(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return fmt.Errorf("%w: status=%d body=%s",
			ErrExchangeRejected,
			retrieveErr.Response.StatusCode,
			bodyPreview(retrieveErr.Body),
		)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%w: %v", ErrExchangeTransport, urlErr)
	}

	// Parse failures of a 2xx body land here; treat as rejection, not crash.
	return fmt.Errorf("%w: %v", ErrExchangeRejected, err)
}

// FetchUserInfo retrieves the user profile with the bearer access token.
// Callers treat any error as non-fatal enrichment failure.
func (c *Client) FetchUserInfo(ctx context.Context, accessToken string) (*UserProfile, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.cfg.BaseURL+userInfoPath,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUserInfoUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUserInfoUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status=%d body=%s",
			ErrUserInfoUnavailable, resp.StatusCode, bodyPreview(body))
	}

	var profile UserProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUserInfoUnavailable, err)
	}

	return &profile, nil
}

// bodyPreview truncates upstream bodies for logs; never echoed to browsers.
func bodyPreview(body []byte) string {
	const max = 200
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
