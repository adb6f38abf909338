package middleware // middleware provides shared request processing for handlers

import (
    "net/http" // http package defines standard HTTP status codes
    "strings"  // email normalization before comparison

    "github.com/labstack/echo/v4" // echo provides middleware chaining and context
)

// RequireSelfQuery returns a middleware enforcing the self-match rule
// against a query parameter: the caller-supplied target email must equal
// the authenticated email placed in context by JWTAuth.  Holding a valid
// token for yourself never authorizes reading someone else's resources; a
// mismatch is rejected with 403 and the message "forbidden access".  An
// empty target is left for the handler to deal with (the observed behavior
// answers such requests with an empty list).
func RequireSelfQuery(name string) echo.MiddlewareFunc {
    return requireSelf(func(c echo.Context) string { return c.QueryParam(name) })
}

// RequireSelfParam is RequireSelfQuery for a path parameter target.
func RequireSelfParam(name string) echo.MiddlewareFunc {
    return requireSelf(func(c echo.Context) string { return c.Param(name) })
}

// requireSelf builds the self-match stage from a target extractor.  It
// assumes JWTAuth already ran; a request with no authenticated email in
// context can never match and is rejected.
func requireSelf(target func(echo.Context) string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            want := strings.ToLower(strings.TrimSpace(target(c)))
            if want == "" {
                // No target supplied; the handler answers with an empty
                // result set rather than an error.
                return next(c)
            }
            if want != AuthedEmail(c) {
                return c.JSON(http.StatusForbidden, echo.Map{"error": true, "message": "forbidden access"})
            }
            return next(c)
        }
    }
}
