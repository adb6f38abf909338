package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/creativecapture/creative-capture-server/internal/model"
)

// popularLimit caps the popular-classes listing at the six most enrolled.
const popularLimit = 6

// ClassStore is the slice of the class repository the handlers consume.
// *repository.ClassRepo satisfies it.
type ClassStore interface {
	All(ctx context.Context) ([]model.Class, error)
	Popular(ctx context.Context, limit int) ([]model.Class, error)
	ByInstructor(ctx context.Context, email string) ([]model.Class, error)
	Create(ctx context.Context, c model.Class) (uint64, error)
}

// ClassHandler serves the class catalogue endpoints.
type ClassHandler struct {
	Classes ClassStore
}

func NewClassHandler(classes ClassStore) *ClassHandler { return &ClassHandler{Classes: classes} }

// List handles GET /classes: the full catalogue.
func (h *ClassHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	classes, err := h.Classes.All(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "query failed"})
	}
	return c.JSON(http.StatusOK, classes)
}

// Popular handles GET /popularClass: top classes by enrollment, descending.
func (h *ClassHandler) Popular(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	classes, err := h.Classes.Popular(ctx, popularLimit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "query failed"})
	}
	return c.JSON(http.StatusOK, classes)
}

// Mine handles GET /myClasses/:email: the classes an instructor owns.  The
// self-match gate has already confirmed the path email is the caller's.
func (h *ClassHandler) Mine(c echo.Context) error {
	email := strings.ToLower(strings.TrimSpace(c.Param("email")))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	classes, err := h.Classes.ByInstructor(ctx, email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "query failed"})
	}
	return c.JSON(http.StatusOK, classes)
}

// Create handles POST /classes: add a class to the catalogue.
func (h *ClassHandler) Create(c echo.Context) error {
	var cls model.Class
	if err := c.Bind(&cls); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "invalid body"})
	}
	if strings.TrimSpace(cls.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Classes.Create(ctx, cls)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "create class failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"acknowledged": true, "insertedId": id})
}
