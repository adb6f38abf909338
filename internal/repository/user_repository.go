package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/creativecapture/creative-capture-server/internal/model"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

var ErrEmailExists = errors.New("email already exists")

// Create inserts a user and returns its ID.  The email column carries a
// unique index; a duplicate insert surfaces as ErrEmailExists so the
// handler can answer with the idempotent "already exists" message.
func (r *UserRepo) Create(ctx context.Context, email, name, photoURL string) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, name, photo_url, role) VALUES (?,?,?,'')",
		email, name, photoURL)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// FindByEmail fetches a user by normalized email.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,name,photo_url,role,created_at FROM users WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.Email, &u.Name, &u.PhotoURL, &u.Role, &u.CreatedAt)
	return u, err
}

// All returns every user record, oldest first.
func (r *UserRepo) All(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,email,name,photo_url,role,created_at FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.PhotoURL, &u.Role, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// RoleByEmail reads the current role for an email.  A missing record is not
// an error: it reports an empty role, which every gate treats as
// insufficient.  The admin gate calls this on every request instead of
// trusting a role embedded in the token.
func (r *UserRepo) RoleByEmail(ctx context.Context, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var role string
	err := r.DB.QueryRowContext(ctx,
		"SELECT role FROM users WHERE email=? LIMIT 1", email).Scan(&role)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return role, nil
}

// SetRole promotes a user to the given role and reports how many rows
// changed.  There is no demotion path; callers only pass admin or
// instructor.
func (r *UserRepo) SetRole(ctx context.Context, id uint64, role string) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET role=? WHERE id=?", role, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Delete removes a user by id and reports how many rows were deleted.
func (r *UserRepo) Delete(ctx context.Context, id uint64) (int64, error) {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
