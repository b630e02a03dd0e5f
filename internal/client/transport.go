package client

import (
	"crypto/tls"
	"net/http"
	"time"
)

// NewTransport builds an http.Transport with a connection pool sized for
// steady traffic to a single upstream host.
func NewTransport(insecureSkipVerify bool) *http.Transport {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	if insecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true, //nolint:gosec // G402: opt-in for test environments only
		}
	}

	return transport
}
