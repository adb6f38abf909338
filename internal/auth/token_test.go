package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signWithClaims(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	at, err := IssueAccessToken(testSecret, "A@X.com ")
	require.NoError(t, err)
	require.NotEmpty(t, at.Token)

	claims, err := VerifyAccessToken(testSecret, at.Token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.WithinDuration(t, time.Now().UTC().Add(AccessTokenTTL), claims.Expires, 5*time.Second)
	assert.WithinDuration(t, at.Exp, claims.Expires, time.Second)
}

func TestVerifyExpiredToken(t *testing.T) {
	raw := signWithClaims(t, testSecret, jwt.MapClaims{
		"sub": "a@x.com",
		"iat": time.Now().UTC().Add(-2 * time.Hour).Unix(),
		"exp": time.Now().UTC().Add(-time.Hour).Unix(),
	})
	_, err := VerifyAccessToken(testSecret, raw)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyWrongKey(t *testing.T) {
	at, err := IssueAccessToken("other-secret", "a@x.com")
	require.NoError(t, err)

	_, err = VerifyAccessToken(testSecret, at.Token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyMalformedToken(t *testing.T) {
	for _, raw := range []string{"", "garbage", "a.b.c", "eyJhbGciOiJIUzI1NiJ9"} {
		_, err := VerifyAccessToken(testSecret, raw)
		assert.ErrorIs(t, err, ErrTokenInvalid, "token %q", raw)
	}
}

func TestVerifyWrongAlgorithm(t *testing.T) {
	// alg=none tokens must never be accepted even with a valid structure.
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "a@x.com",
		"exp": time.Now().UTC().Add(time.Hour).Unix(),
	})
	raw, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = VerifyAccessToken(testSecret, raw)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyMissingSubject(t *testing.T) {
	raw := signWithClaims(t, testSecret, jwt.MapClaims{
		"exp": time.Now().UTC().Add(time.Hour).Unix(),
	})
	_, err := VerifyAccessToken(testSecret, raw)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
