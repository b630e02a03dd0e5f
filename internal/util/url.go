package util

import (
	"net/url"
	"strings"
)

// IsRedirectSafe reports whether a post-login redirect target can be handed
// to the browser. Accepted: site-relative paths, and absolute http(s) URLs
// whose host matches baseURL. Everything else is an open-redirect vector.
func IsRedirectSafe(redirectURL, baseURL string) bool {
	if redirectURL == "" {
		return true
	}

	// CR/LF would split the Location header.
	if strings.ContainsAny(redirectURL, "\r\n") {
		return false
	}

	if strings.HasPrefix(redirectURL, "/") {
		// "//host" is protocol-relative, "/\host" is its backslash twin.
		if strings.HasPrefix(redirectURL, "//") || strings.Contains(redirectURL, "\\") {
			return false
		}
		return true
	}

	parsed, err := url.Parse(redirectURL)
	if err != nil {
		return false
	}

	if parsed.Scheme != "" && parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}

	if parsed.Host != "" {
		base, err := url.Parse(baseURL)
		if err != nil || parsed.Host != base.Host {
			return false
		}
	}

	return true
}
