package middleware

import (
    "context"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/creativecapture/creative-capture-server/internal/model"
)

// RoleLookup reads the current role for an email straight from the user
// store.  A missing record reports an empty role, not an error.
// *repository.UserRepo satisfies this.
type RoleLookup interface {
    RoleByEmail(ctx context.Context, email string) (string, error)
}

// RequireAdmin returns a middleware enforcing the admin-only rule.  It runs
// after JWTAuth and looks up the authenticated email's live user record on
// EVERY request; a role claim inside the token is never consulted.  That
// keeps a stale token from carrying privileges the record no longer grants:
// changing the record changes the outcome on the very next request.  A
// non-admin role — including a user with no record at all — is rejected
// with 403 and the message "forbidden message".
func RequireAdmin(users RoleLookup) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            email := AuthedEmail(c)
            if email == "" {
                return c.JSON(http.StatusForbidden, echo.Map{"error": true, "message": "forbidden message"})
            }

            ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
            defer cancel()

            role, err := users.RoleByEmail(ctx, email)
            if err != nil {
                return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "role lookup failed"})
            }
            if role != model.RoleAdmin {
                return c.JSON(http.StatusForbidden, echo.Map{"error": true, "message": "forbidden message"})
            }
            return next(c)
        }
    }
}
