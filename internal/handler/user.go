package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/creativecapture/creative-capture-server/internal/model"
	"github.com/creativecapture/creative-capture-server/internal/repository"
)

// UserStore is the slice of the user repository the handlers consume.
// *repository.UserRepo satisfies it.
type UserStore interface {
	Create(ctx context.Context, email, name, photoURL string) (uint64, error)
	All(ctx context.Context) ([]model.User, error)
	RoleByEmail(ctx context.Context, email string) (string, error)
	SetRole(ctx context.Context, id uint64, role string) (int64, error)
	Delete(ctx context.Context, id uint64) (int64, error)
}

// UserHandler serves the user management endpoints.
type UserHandler struct {
	Users UserStore
}

func NewUserHandler(users UserStore) *UserHandler { return &UserHandler{Users: users} }

type upsertUserReq struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL"`
}

// List handles GET /users (admin only): every user record.
func (h *UserHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Users.All(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "query failed"})
	}
	return c.JSON(http.StatusOK, users)
}

// Upsert handles POST /users: record a user on first sign-in.  The
// operation is idempotent — a second call with the same email changes
// nothing and answers the canonical already-exists message with a success
// status, never an error.
func (h *UserHandler) Upsert(c echo.Context) error {
	var req upsertUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "email required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Users.Create(ctx, req.Email, req.Name, req.PhotoURL)
	if err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusOK, echo.Map{"message": "user already exist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "create user failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"acknowledged": true, "insertedId": id})
}

// IsAdmin handles GET /users/admin/:email: report whether the target email
// currently holds the admin role.  The gate already matched the path email
// to the caller; the role itself is read live.
func (h *UserHandler) IsAdmin(c echo.Context) error {
	return h.hasRole(c, model.RoleAdmin, "admin")
}

// IsInstructor handles GET /users/instructor/:email, same shape as IsAdmin.
func (h *UserHandler) IsInstructor(c echo.Context) error {
	return h.hasRole(c, model.RoleInstructor, "instructor")
}

func (h *UserHandler) hasRole(c echo.Context, role, field string) error {
	email := strings.ToLower(strings.TrimSpace(c.Param("email")))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	current, err := h.Users.RoleByEmail(ctx, email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{field: current == role})
}

// PromoteAdmin handles PATCH /users/admin/:id.
func (h *UserHandler) PromoteAdmin(c echo.Context) error {
	return h.promote(c, model.RoleAdmin)
}

// PromoteInstructor handles PATCH /users/instructor/:id.
func (h *UserHandler) PromoteInstructor(c echo.Context) error {
	return h.promote(c, model.RoleInstructor)
}

func (h *UserHandler) promote(c echo.Context, role string) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	n, err := h.Users.SetRole(ctx, id, role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "update role failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"acknowledged": true, "modifiedCount": n})
}

// Remove handles DELETE /users/:id (admin only).
func (h *UserHandler) Remove(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	n, err := h.Users.Delete(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "delete user failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"acknowledged": true, "deletedCount": n})
}
