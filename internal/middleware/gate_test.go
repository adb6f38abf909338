package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creativecapture/creative-capture-server/internal/auth"
)

const gateSecret = "gate-secret"

// stubRoles is an in-memory RoleLookup recording whether it was consulted.
type stubRoles struct {
	roles  map[string]string
	err    error
	called int
}

func (s *stubRoles) RoleByEmail(_ context.Context, email string) (string, error) {
	s.called++
	if s.err != nil {
		return "", s.err
	}
	return s.roles[email], nil
}

// runChain sends a request through the given middleware wrapping a handler
// that records whether it was reached.
func runChain(t *testing.T, req *http.Request, reached *bool, mws ...echo.MiddlewareFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	h := func(c echo.Context) error {
		*reached = true
		return c.JSON(http.StatusOK, echo.Map{"ok": true})
	}
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	require.NoError(t, h(c))
	return rec
}

func bearerFor(t *testing.T, email string) string {
	t.Helper()
	at, err := auth.IssueAccessToken(gateSecret, email)
	require.NoError(t, err)
	return "Bearer " + at.Token
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Message
}

func TestJWTAuthMissingHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/classSelected", nil)
	reached := false
	rec := runChain(t, req, &reached, JWTAuth(gateSecret))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized access", message(t, rec))
	assert.False(t, reached)
}

func TestJWTAuthBadToken(t *testing.T) {
	for name, header := range map[string]string{
		"not bearer":  "Basic abc",
		"garbage":     "Bearer not.a.token",
		"wrong key":   "Bearer " + func() string { at, _ := auth.IssueAccessToken("other", "a@x.com"); return at.Token }(),
		"empty token": "Bearer ",
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/classSelected", nil)
			req.Header.Set("Authorization", header)
			reached := false
			rec := runChain(t, req, &reached, JWTAuth(gateSecret))

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, reached)
		})
	}
}

func TestJWTAuthExpiredToken(t *testing.T) {
	// A correctly signed token past its expiry is rejected the same way as
	// a missing or forged one.
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "a@x.com",
		"iat": time.Now().UTC().Add(-2 * time.Hour).Unix(),
		"exp": time.Now().UTC().Add(-time.Hour).Unix(),
	})
	raw, err := tok.SignedString([]byte(gateSecret))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/classSelected", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	reached := false
	rec := runChain(t, req, &reached, JWTAuth(gateSecret))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized access", message(t, rec))
	assert.False(t, reached)
}

func TestJWTAuthStoresEmail(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/classSelected", nil)
	req.Header.Set("Authorization", bearerFor(t, "a@x.com"))

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	var got string
	h := JWTAuth(gateSecret)(func(c echo.Context) error {
		got = AuthedEmail(c)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	assert.Equal(t, "a@x.com", got)
}

func TestSelfMatchQuery(t *testing.T) {
	cases := []struct {
		name     string
		target   string
		wantCode int
		reaches  bool
	}{
		{"own email", "a@x.com", http.StatusOK, true},
		{"other email", "b@x.com", http.StatusForbidden, false},
		{"case insensitive", "A@X.com", http.StatusOK, true},
		{"empty target passes through", "", http.StatusOK, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/classSelected?email="+tc.target, nil)
			req.Header.Set("Authorization", bearerFor(t, "a@x.com"))
			reached := false
			rec := runChain(t, req, &reached, JWTAuth(gateSecret), RequireSelfQuery("email"))

			assert.Equal(t, tc.wantCode, rec.Code)
			assert.Equal(t, tc.reaches, reached)
			if tc.wantCode == http.StatusForbidden {
				assert.Equal(t, "forbidden access", message(t, rec))
			}
		})
	}
}

func TestSelfMatchNeverRunsWithoutAuth(t *testing.T) {
	// Stage 1 failures must short-circuit before stage 2 or the handler.
	req := httptest.NewRequest(http.MethodGet, "/classSelected?email=a@x.com", nil)
	reached := false
	rec := runChain(t, req, &reached, JWTAuth(gateSecret), RequireSelfQuery("email"))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized access", message(t, rec))
	assert.False(t, reached)
}

func TestRequireAdmin(t *testing.T) {
	roles := &stubRoles{roles: map[string]string{"boss@x.com": "admin", "a@x.com": ""}}

	t.Run("admin passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		req.Header.Set("Authorization", bearerFor(t, "boss@x.com"))
		reached := false
		rec := runChain(t, req, &reached, JWTAuth(gateSecret), RequireAdmin(roles))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, reached)
	})

	t.Run("plain user forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		req.Header.Set("Authorization", bearerFor(t, "a@x.com"))
		reached := false
		rec := runChain(t, req, &reached, JWTAuth(gateSecret), RequireAdmin(roles))
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "forbidden message", message(t, rec))
		assert.False(t, reached)
	})

	t.Run("unknown user forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		req.Header.Set("Authorization", bearerFor(t, "ghost@x.com"))
		reached := false
		rec := runChain(t, req, &reached, JWTAuth(gateSecret), RequireAdmin(roles))
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.False(t, reached)
	})

	t.Run("lookup error is a server fault", func(t *testing.T) {
		broken := &stubRoles{err: errors.New("db down")}
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		req.Header.Set("Authorization", bearerFor(t, "boss@x.com"))
		reached := false
		rec := runChain(t, req, &reached, JWTAuth(gateSecret), RequireAdmin(broken))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.False(t, reached)
	})
}

func TestRequireAdminLooksUpEveryRequest(t *testing.T) {
	// Promoting the record changes the outcome on the next request using
	// the same token; the gate must not cache or trust token contents.
	roles := &stubRoles{roles: map[string]string{"a@x.com": ""}}
	header := bearerFor(t, "a@x.com")

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", header)
	reached := false
	rec := runChain(t, req, &reached, JWTAuth(gateSecret), RequireAdmin(roles))
	require.Equal(t, http.StatusForbidden, rec.Code)

	roles.roles["a@x.com"] = "admin" // live promotion

	req = httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Authorization", header)
	reached = false
	rec = runChain(t, req, &reached, JWTAuth(gateSecret), RequireAdmin(roles))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)
	assert.Equal(t, 2, roles.called)
}

func TestRequireAdminSkippedIfUnauthenticated(t *testing.T) {
	roles := &stubRoles{roles: map[string]string{}}
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	reached := false
	rec := runChain(t, req, &reached, JWTAuth(gateSecret), RequireAdmin(roles))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, roles.called, "store must never be touched when stage 1 fails")
	assert.False(t, reached)
}
