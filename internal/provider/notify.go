package provider

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	retry "github.com/appleboy/go-httpretry"
)

const signOutPath = "/api/v1/oauth/logout"

// SignOutNotifier tells the identity provider that a session ended so it can
// revoke the tokens on its side. Fire-and-forget: the local sign-out already
// succeeded by the time this runs, so failures are only logged. Unlike the
// token exchange, this call is retried.
type SignOutNotifier struct {
	baseURL     string
	retryClient *retry.Client
}

// NewSignOutNotifier creates a notifier. A nil retry client disables
// notification entirely (Notify becomes a no-op).
func NewSignOutNotifier(baseURL string, retryClient *retry.Client) *SignOutNotifier {
	return &SignOutNotifier{baseURL: baseURL, retryClient: retryClient}
}

// Notify posts the token to the provider's sign-out endpoint.
func (n *SignOutNotifier) Notify(ctx context.Context, accessToken string) error {
	if n == nil || n.retryClient == nil || accessToken == "" {
		return nil
	}

	form := url.Values{"token": {accessToken}}
	resp, err := n.retryClient.Post(
		ctx,
		n.baseURL+signOutPath,
		retry.WithBody("application/x-www-form-urlencoded", strings.NewReader(form.Encode())),
	)
	if err != nil {
		return fmt.Errorf("sign-out notification failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sign-out notification failed: HTTP %d", resp.StatusCode)
	}
	return nil
}
