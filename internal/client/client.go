package client

import (
	"fmt"
	"net/http"
	"time"

	httpclient "github.com/appleboy/go-httpclient"
	retry "github.com/appleboy/go-httpretry"
)

// NewProviderClient creates the HTTP client used for identity provider
// calls: token exchange and userinfo. No retry wrapper here, the callback
// flow treats an exchange failure as final because the authorization code
// is single-use.
func NewProviderClient(timeout time.Duration, insecureSkipVerify bool) (*http.Client, error) {
	c, err := httpclient.NewClient(
		httpclient.WithTimeout(timeout),
		httpclient.WithTransport(NewTransport(insecureSkipVerify)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider client: %w", err)
	}
	return c, nil
}

// NewNotifyRetryClient creates the retrying client used for sign-out
// notification. Unlike the exchange, the logout call is idempotent upstream
// so retrying it is safe.
func NewNotifyRetryClient(
	timeout time.Duration,
	insecureSkipVerify bool,
	maxRetries int,
	retryDelay, maxRetryDelay time.Duration,
) (*retry.Client, error) {
	c, err := httpclient.NewClient(
		httpclient.WithTimeout(timeout),
		httpclient.WithTransport(NewTransport(insecureSkipVerify)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create notify client: %w", err)
	}

	retryClient, err := retry.NewRealtimeClient(
		retry.WithHTTPClient(c),
		retry.WithMaxRetries(maxRetries),
		retry.WithInitialRetryDelay(retryDelay),
		retry.WithMaxRetryDelay(maxRetryDelay),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create retry client: %w", err)
	}

	return retryClient, nil
}
