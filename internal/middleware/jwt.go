package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "net/http" // HTTP status codes for responses
    "strings"  // string utilities for prefix checking and trimming

    "github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

    "github.com/creativecapture/creative-capture-server/internal/auth" // session token verification
)

// emailKey is the context key under which the authenticated subject email
// is stored for downstream middleware and handlers.
const emailKey = "email"

// JWTAuth returns an Echo middleware implementing the authentication stage
// of the gate.  It requires an `Authorization: Bearer <token>` header and
// verifies the token against the process-wide signing secret.  A missing
// header, a malformed token, a bad signature and an expired token all fail
// the same way: 401 with the message "unauthorized access".  On success the
// verified subject email is attached to the request context; only then does
// the request continue toward the authorization stage and the handler.
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            // Read the Authorization header.  A valid header starts with
            // "Bearer " followed by the token.  Anything else means the
            // caller is not authenticated.
            header := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(header, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": true, "message": "unauthorized access"})
            }
            raw := strings.TrimPrefix(header, "Bearer ")

            // Verify signature, structure and expiry.  The distinction
            // between invalid and expired matters to the token service's
            // callers but not to the HTTP surface: both are a 401 here.
            claims, err := auth.VerifyAccessToken(secret, raw)
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": true, "message": "unauthorized access"})
            }

            // Store the subject email in the context.  The self-match and
            // admin gates, and any handler needing the caller identity,
            // read it via AuthedEmail.
            c.Set(emailKey, claims.Email)
            return next(c)
        }
    }
}

// AuthedEmail returns the authenticated subject email stored by JWTAuth, or
// the empty string when the request never passed the authentication stage.
func AuthedEmail(c echo.Context) string {
    if v, ok := c.Get(emailKey).(string); ok {
        return v
    }
    return ""
}
