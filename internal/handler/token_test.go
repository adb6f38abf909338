package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creativecapture/creative-capture-server/internal/auth"
	"github.com/creativecapture/creative-capture-server/internal/handler"
)

func TestIssueToken(t *testing.T) {
	h := handler.NewTokenHandler("secret")

	rec := doJSON(t, h.Issue, http.MethodPost, "/jwt", `{"email":"A@X.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.Token)

	claims, err := auth.VerifyAccessToken("secret", body.Token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.WithinDuration(t, time.Now().UTC().Add(auth.AccessTokenTTL), claims.Expires, 5*time.Second)
}

func TestIssueTokenRequiresEmail(t *testing.T) {
	h := handler.NewTokenHandler("secret")
	rec := doJSON(t, h.Issue, http.MethodPost, "/jwt", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
