package provider

import "errors"

var (
	// ErrNotConfigured indicates the gateway has no client id for the
	// identity provider. A hard dependency: callers answer 503.
	ErrNotConfigured = errors.New("provider: client id not configured")

	// ErrExchangeRejected indicates the token endpoint answered with a
	// non-success status or an unparseable body. Fatal to the attempt,
	// never retried.
	ErrExchangeRejected = errors.New("provider: token exchange rejected")

	// ErrExchangeTransport indicates a network failure talking to the token
	// endpoint. Fatal to the attempt, never retried.
	ErrExchangeTransport = errors.New("provider: token exchange transport failure")

	// ErrUserInfoUnavailable indicates the userinfo endpoint failed. Callers
	// swallow this and proceed with a placeholder identity.
	ErrUserInfoUnavailable = errors.New("provider: userinfo unavailable")
)
