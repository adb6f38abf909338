package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health reports liveness for load balancers and monitoring.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// Root answers the banner the original frontend polls for.
func Root(c echo.Context) error {
	return c.String(http.StatusOK, "Creative capture is running")
}
