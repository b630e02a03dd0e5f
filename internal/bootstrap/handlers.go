package bootstrap

import (
	"fmt"
	"log"

	"github.com/madfam-org/tezca-gateway/internal/client"
	"github.com/madfam-org/tezca-gateway/internal/config"
	"github.com/madfam-org/tezca-gateway/internal/core"
	"github.com/madfam-org/tezca-gateway/internal/handlers"
	"github.com/madfam-org/tezca-gateway/internal/provider"
	"github.com/madfam-org/tezca-gateway/internal/services"
	"github.com/madfam-org/tezca-gateway/internal/session"
	"github.com/madfam-org/tezca-gateway/internal/version"
)

// handlerSet holds all HTTP handlers
type handlerSet struct {
	sso     *handlers.SSOHandler
	session *handlers.SessionHandler
}

// initializeHandlers wires the provider client, session issuer, and
// handlers together
func initializeHandlers(
	cfg *config.Config,
	auditService *services.AuditService,
	recorder core.Recorder,
) (handlerSet, error) {
	if cfg.ProviderSkipTLSVerify {
		log.Printf("WARNING: provider TLS verification is disabled (SSO_INSECURE_SKIP_VERIFY=true)")
	}

	httpClient, err := client.NewProviderClient(cfg.ProviderTimeout, cfg.ProviderSkipTLSVerify)
	if err != nil {
		return handlerSet{}, fmt.Errorf("failed to create provider HTTP client: %w", err)
	}

	providerClient := provider.New(provider.Config{
		BaseURL:      cfg.ProviderBaseURL,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Scopes:       cfg.Scopes,
	}, httpClient)

	if providerClient.Configured() {
		log.Printf("SSO provider configured: %s", cfg.ProviderBaseURL)
	} else {
		log.Printf("WARNING: SSO provider not configured, auth endpoints will answer 503")
	}

	issuer := session.NewIssuer(cfg.SigningSecret, cfg.SessionTTL, version.App)

	notifier, err := createSignOutNotifier(cfg)
	if err != nil {
		return handlerSet{}, err
	}

	return handlerSet{
		sso:     handlers.NewSSOHandler(cfg, providerClient, issuer, auditService, recorder),
		session: handlers.NewSessionHandler(cfg, notifier, auditService, recorder),
	}, nil
}

// createSignOutNotifier builds the back-channel logout notifier, or nil
// when disabled.
func createSignOutNotifier(cfg *config.Config) (*provider.SignOutNotifier, error) {
	if !cfg.SignOutNotifyEnabled || cfg.ProviderBaseURL == "" {
		return nil, nil //nolint:nilnil // notifier not needed in this configuration
	}

	retryClient, err := client.NewNotifyRetryClient(
		cfg.ProviderTimeout,
		cfg.ProviderSkipTLSVerify,
		cfg.SignOutMaxRetries,
		cfg.SignOutRetryDelay,
		cfg.SignOutMaxRetryDelay,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sign-out notify client: %w", err)
	}

	log.Printf("Sign-out notification enabled (max retries: %d)", cfg.SignOutMaxRetries)
	return provider.NewSignOutNotifier(cfg.ProviderBaseURL, retryClient), nil
}
