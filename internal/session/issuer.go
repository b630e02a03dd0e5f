package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// defaultTokenLifetime applies when the provider omits expires_in.
const defaultTokenLifetime = 3600 * time.Second

var (
	// ErrNoCredential indicates no session credential was presented.
	ErrNoCredential = errors.New("session: no credential")

	// ErrInvalidCredential indicates a credential that fails signature or
	// structural validation.
	ErrInvalidCredential = errors.New("session: invalid credential")

	// ErrExpiredCredential indicates a well-formed credential past its expiry.
	ErrExpiredCredential = errors.New("session: expired credential")

	// ErrSigningFailed indicates the credential could not be signed. Callers
	// must surface a server error and never set an unsigned cookie.
	ErrSigningFailed = errors.New("session: signing failed")
)

// Claims is the payload of the signed session credential.
type Claims struct {
	User         User    `json:"user"`
	Session      Session `json:"session"`
	AccessToken  string  `json:"accessToken"`
	RefreshToken string  `json:"refreshToken,omitempty"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies session credentials with a symmetric key.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

// NewIssuer creates an issuer. The secret must be non-empty; enforcing that
// is the caller's job (the gate fails closed in production).
func NewIssuer(secret string, ttl time.Duration, issuer string) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, issuer: issuer}
}

// Issue builds a Session for the given user and tokens and returns the signed
// credential. A zero tokenExpiry means the provider omitted expires_in, in
// which case the session expiry defaults to one hour after issuance.
func (i *Issuer) Issue(
	user User,
	accessToken, refreshToken string,
	tokenExpiry time.Time,
	now time.Time,
) (string, Session, error) {
	if len(i.secret) == 0 {
		return "", Session{}, fmt.Errorf("%w: signing secret not configured", ErrSigningFailed)
	}

	if tokenExpiry.IsZero() {
		tokenExpiry = now.Add(defaultTokenLifetime)
	}

	sess := Session{
		ID:           uuid.New().String(),
		UserID:       user.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
		ExpiresAt:    tokenExpiry,
		LastActivity: now,
		IsCurrent:    true,
	}

	claims := Claims{
		User:         user,
		Session:      sess,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
			ID:        sess.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", Session{}, fmt.Errorf("%w: %v", ErrSigningFailed, err)
	}

	return signed, sess, nil
}

// VerifyCredential parses and validates a session credential. Only HS256
// under the given secret is accepted; expiry is enforced by the JWT library.
// A function rather than an Issuer method so the session gate and handlers
// can verify without constructing an issuer.
func VerifyCredential(secret, credential string) (*Claims, error) {
	if credential == "" {
		return nil, ErrNoCredential
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(credential, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredCredential
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}

	if !token.Valid {
		return nil, ErrInvalidCredential
	}

	return claims, nil
}

// Bridge builds the TokenBridge artifact for a freshly issued session.
func Bridge(accessToken, refreshToken string, sess Session) TokenBridge {
	return TokenBridge{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    sess.ExpiresAt.Unix(),
	}
}
