package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-signing-secret"

func testIssuer() *Issuer {
	return NewIssuer(testSecret, 7*24*time.Hour, "http://localhost:8080")
}

func TestIssuer_IssueAndVerify(t *testing.T) {
	i := testIssuer()
	now := time.Now()
	user := User{ID: "user-1", Email: "user@example.com", Tier: "pro"}

	cred, sess, err := i.Issue(user, "access-token", "refresh-token", now.Add(time.Hour), now)
	require.NoError(t, err)
	require.NotEmpty(t, cred)

	assert.Equal(t, "user-1", sess.UserID)
	assert.True(t, sess.IsCurrent)
	assert.WithinDuration(t, now.Add(time.Hour), sess.ExpiresAt, time.Second)

	claims, err := VerifyCredential(testSecret, cred)
	require.NoError(t, err)
	assert.Equal(t, user, claims.User)
	assert.Equal(t, sess.ID, claims.Session.ID)
	assert.Equal(t, "access-token", claims.AccessToken)
	assert.Equal(t, "refresh-token", claims.RefreshToken)
	assert.WithinDuration(t, now.Add(7*24*time.Hour), claims.ExpiresAt.Time, time.Second)
}

func TestIssuer_Issue_DefaultsTokenExpiryToOneHour(t *testing.T) {
	i := testIssuer()
	now := time.Now()

	// Zero expiry means the provider omitted expires_in
	_, sess, err := i.Issue(User{ID: "u"}, "tok", "", time.Time{}, now)
	require.NoError(t, err)

	assert.Equal(t, now.Add(3600*time.Second).Unix(), sess.ExpiresAt.Unix())
}

func TestIssuer_Issue_EmptySecretFails(t *testing.T) {
	i := NewIssuer("", time.Hour, "test")

	_, _, err := i.Issue(User{ID: "u"}, "tok", "", time.Time{}, time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSigningFailed)
}

func TestVerifyCredential_WrongSecret(t *testing.T) {
	i := testIssuer()
	cred, _, err := i.Issue(User{ID: "u"}, "tok", "", time.Time{}, time.Now())
	require.NoError(t, err)

	_, err = VerifyCredential("other-secret", cred)
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestVerifyCredential_Expired(t *testing.T) {
	i := NewIssuer(testSecret, time.Minute, "test")
	past := time.Now().Add(-time.Hour)

	cred, _, err := i.Issue(User{ID: "u"}, "tok", "", time.Time{}, past)
	require.NoError(t, err)

	_, err = VerifyCredential(testSecret, cred)
	assert.ErrorIs(t, err, ErrExpiredCredential)
}

func TestVerifyCredential_Empty(t *testing.T) {
	_, err := VerifyCredential(testSecret, "")
	assert.ErrorIs(t, err, ErrNoCredential)
}

func TestVerifyCredential_RejectsNonHMACAlgorithm(t *testing.T) {
	// A token signed with "none" must never verify
	token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		User: User{ID: "u"},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	unsigned, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = VerifyCredential(testSecret, unsigned)
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestPlaceholderUser(t *testing.T) {
	u := PlaceholderUser()
	assert.Equal(t, "unknown", u.ID)
	assert.Equal(t, "unknown", u.Email)
}

func TestBridge(t *testing.T) {
	sess := Session{ExpiresAt: time.Unix(1700000000, 0)}
	b := Bridge("at", "rt", sess)

	assert.Equal(t, "at", b.AccessToken)
	assert.Equal(t, "rt", b.RefreshToken)
	assert.Equal(t, int64(1700000000), b.ExpiresAt)
}
