package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/creativecapture/creative-capture-server/internal/auth"
)

// TokenHandler issues session tokens.  The frontend authenticates the user
// elsewhere (a hosted identity provider) and then trades the identity for a
// one-hour API token here.
type TokenHandler struct {
	Secret string
}

func NewTokenHandler(secret string) *TokenHandler { return &TokenHandler{Secret: secret} }

type tokenReq struct {
	Email string `json:"email"`
}

// Issue handles POST /jwt: sign a one-hour token for the submitted email.
func (h *TokenHandler) Issue(c echo.Context) error {
	var req tokenReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "email required"})
	}

	at, err := auth.IssueAccessToken(h.Secret, req.Email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "issue token failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"token": at.Token})
}
