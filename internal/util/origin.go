package util

import (
	"net/http"
	"strings"
)

// RequestOrigin reconstructs the external origin of a request so the SSO
// redirect URI matches what the identity provider has registered even when
// the gateway sits behind a reverse proxy. Forwarded headers win; the
// request's own host and TLS state are the fallback.
func RequestOrigin(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = firstForwardedValue(proto)
	}

	host := r.Host
	if fwd := r.Header.Get("X-Forwarded-Host"); fwd != "" {
		host = firstForwardedValue(fwd)
	}

	return scheme + "://" + host
}

// firstForwardedValue returns the first entry of a comma-separated forwarded
// header; proxies append, so the left-most value is the original client edge.
func firstForwardedValue(v string) string {
	if idx := strings.IndexByte(v, ','); idx >= 0 {
		v = v[:idx]
	}
	return strings.TrimSpace(v)
}
