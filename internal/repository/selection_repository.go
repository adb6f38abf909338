package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/creativecapture/creative-capture-server/internal/model"
)

// SelectionRepo manages the selected_classes table: the pending picks a
// user has made but not yet paid for.
type SelectionRepo struct{ DB *sql.DB }

func NewSelectionRepo(db *sql.DB) *SelectionRepo { return &SelectionRepo{DB: db} }

// ByEmail returns the pending selections belonging to one user.
func (r *SelectionRepo) ByEmail(ctx context.Context, email string) ([]model.Selection, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,email,class_id,class_name,image_url,instructor_name,price FROM selected_classes WHERE email=?",
		email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	selections := make([]model.Selection, 0)
	for rows.Next() {
		var s model.Selection
		if err := rows.Scan(&s.ID, &s.Email, &s.ClassID, &s.ClassName, &s.ImageURL, &s.InstructorName, &s.Price); err != nil {
			return nil, err
		}
		selections = append(selections, s)
	}
	return selections, rows.Err()
}

// Create inserts a selection and returns its ID.
func (r *SelectionRepo) Create(ctx context.Context, s model.Selection) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO selected_classes (email, class_id, class_name, image_url, instructor_name, price) VALUES (?,?,?,?,?,?)",
		strings.ToLower(strings.TrimSpace(s.Email)), s.ClassID, s.ClassName, s.ImageURL, s.InstructorName, s.Price)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Delete removes one selection by id and reports the affected row count.
func (r *SelectionRepo) Delete(ctx context.Context, id uint64) (int64, error) {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM selected_classes WHERE id=?", id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteByIDs removes every selection whose id is in the given set and
// reports the deleted row count.  Used for the post-payment sweep.  An
// empty set deletes nothing and returns zero.
func (r *SelectionRepo) DeleteByIDs(ctx context.Context, ids []uint64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM selected_classes WHERE id IN ("+placeholders+")", args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
