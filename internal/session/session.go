// Package session defines the bearer session model: a self-contained,
// HS256-signed credential carried in a cookie. No server-side session table
// exists; validity is signature plus expiry, which keeps every gateway
// instance able to serve every request.
package session

import "time"

// PlaceholderID is used when the identity provider's userinfo endpoint is
// unavailable. Tokens are primary, profile is enrichment: a login still
// succeeds with a placeholder identity.
const PlaceholderID = "unknown"

// User is the identity embedded in the session credential.
type User struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	GivenName     string `json:"givenName,omitempty"`
	FamilyName    string `json:"familyName,omitempty"`
	EmailVerified bool   `json:"emailVerified,omitempty"`
	Picture       string `json:"picture,omitempty"`
	Tier          string `json:"tier,omitempty"`
}

// Session is the authenticated session surfaced to the application.
// Immutable after creation within a single login.
type Session struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	ExpiresAt    time.Time `json:"expiresAt"`
	LastActivity time.Time `json:"lastActivity"`
	IsCurrent    bool      `json:"isCurrent"`
}

// TokenBridge is the short-lived client-readable artifact that lets the
// browser SDK hydrate itself after login. It is deliberately NOT http-only;
// its 60-second lifetime is the trade-off for script readability.
type TokenBridge struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresAt    int64  `json:"expires_at"`
}

// PlaceholderUser returns the identity used when no profile is available.
func PlaceholderUser() User {
	return User{ID: PlaceholderID, Email: PlaceholderID}
}
