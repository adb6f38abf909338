package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/creativecapture/creative-capture-server/internal/handler"    // handlers implementing the endpoints
	"github.com/creativecapture/creative-capture-server/internal/middleware" // JWT, self-match and admin gates
)

// Handlers bundles every handler the route table needs, so registration is
// one call from main with explicit dependencies instead of package globals.
type Handlers struct {
	Tokens     *handler.TokenHandler
	Classes    *handler.ClassHandler
	Selections *handler.SelectionHandler
	Payments   *handler.PaymentHandler
	Users      *handler.UserHandler
}

// RegisterRoutes wires the full route table.  Protected routes chain the
// authentication stage (JWTAuth) before any authorization stage; a request
// failing authentication never reaches a second gate or a handler.  The
// cache middleware, when provided, wraps only the public catalogue reads.
func RegisterRoutes(e *echo.Echo, h Handlers, jwtSecret string, users middleware.RoleLookup, cache echo.MiddlewareFunc) {
	authed := middleware.JWTAuth(jwtSecret)
	admin := middleware.RequireAdmin(users)

	// Liveness
	e.GET("/", handler.Root)
	e.GET("/healthz", handler.Health)

	// Session tokens are issued for a submitted identity; the route itself
	// is unauthenticated by definition.
	e.POST("/jwt", h.Tokens.Issue)

	// Public catalogue, cached when Redis is around.
	if cache != nil {
		e.GET("/classes", h.Classes.List, cache)
		e.GET("/popularClass", h.Classes.Popular, cache)
	} else {
		e.GET("/classes", h.Classes.List)
		e.GET("/popularClass", h.Classes.Popular)
	}

	// Instructor-facing class routes.
	e.POST("/classes", h.Classes.Create, authed)
	e.GET("/myClasses/:email", h.Classes.Mine, authed, middleware.RequireSelfParam("email"))

	// Pending selections (the cart).
	e.GET("/classSelected", h.Selections.List, authed, middleware.RequireSelfQuery("email"))
	e.POST("/classSelected", h.Selections.Create, authed)
	e.DELETE("/classSelected/:id", h.Selections.Remove, authed)

	// Payments.
	e.POST("/create-payment-intent", h.Payments.CreateIntent, authed)
	e.POST("/payments", h.Payments.Record, authed)
	e.GET("/payments/:email", h.Payments.History(false), authed, middleware.RequireSelfParam("email"))
	e.GET("/payment/:email", h.Payments.History(true), authed, middleware.RequireSelfParam("email"))

	// Users and roles.
	e.GET("/users", h.Users.List, authed, admin)
	e.POST("/users", h.Users.Upsert)
	e.GET("/users/admin/:email", h.Users.IsAdmin, authed, middleware.RequireSelfParam("email"))
	e.GET("/users/instructor/:email", h.Users.IsInstructor, authed, middleware.RequireSelfParam("email"))
	e.PATCH("/users/admin/:id", h.Users.PromoteAdmin, authed, admin)
	e.PATCH("/users/instructor/:id", h.Users.PromoteInstructor, authed, admin)
	e.DELETE("/users/:id", h.Users.Remove, authed, admin)
}
