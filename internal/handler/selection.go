package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/creativecapture/creative-capture-server/internal/model"
)

// SelectionStore is the slice of the selection repository the handlers
// consume.  *repository.SelectionRepo satisfies it.
type SelectionStore interface {
	ByEmail(ctx context.Context, email string) ([]model.Selection, error)
	Create(ctx context.Context, s model.Selection) (uint64, error)
	Delete(ctx context.Context, id uint64) (int64, error)
	DeleteByIDs(ctx context.Context, ids []uint64) (int64, error)
}

// SelectionHandler serves the pending-selection (cart) endpoints.
type SelectionHandler struct {
	Selections SelectionStore
}

func NewSelectionHandler(selections SelectionStore) *SelectionHandler {
	return &SelectionHandler{Selections: selections}
}

// List handles GET /classSelected?email=.  The self-match gate already
// confirmed the query email belongs to the caller; a missing email answers
// an empty list, mirroring the observed behavior.
func (h *SelectionHandler) List(c echo.Context) error {
	email := strings.ToLower(strings.TrimSpace(c.QueryParam("email")))
	if email == "" {
		return c.JSON(http.StatusOK, []model.Selection{})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	selections, err := h.Selections.ByEmail(ctx, email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "query failed"})
	}
	return c.JSON(http.StatusOK, selections)
}

// Create handles POST /classSelected: add a pending selection.
func (h *SelectionHandler) Create(c echo.Context) error {
	var s model.Selection
	if err := c.Bind(&s); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "invalid body"})
	}
	if strings.TrimSpace(s.Email) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "email required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Selections.Create(ctx, s)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "create selection failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"acknowledged": true, "insertedId": id})
}

// Remove handles DELETE /classSelected/:id: drop one pending selection.
func (h *SelectionHandler) Remove(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	n, err := h.Selections.Delete(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "delete selection failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"acknowledged": true, "deletedCount": n})
}
