package repository

import (
	"context"
	"database/sql"

	"github.com/creativecapture/creative-capture-server/internal/model"
)

// ClassRepo provides read and insert access to the classes catalogue.
// Classes are created by instructors and browsed publicly; enrollment
// counts feed the popularity ranking.
type ClassRepo struct{ DB *sql.DB }

func NewClassRepo(db *sql.DB) *ClassRepo { return &ClassRepo{DB: db} }

const classColumns = "id,name,image_url,instructor_name,instructor_email,available_seats,price,number_of_students,status"

func scanClass(row interface{ Scan(...any) error }) (model.Class, error) {
	var c model.Class
	err := row.Scan(&c.ID, &c.Name, &c.ImageURL, &c.InstructorName, &c.InstructorEmail,
		&c.AvailableSeats, &c.Price, &c.NumberOfStudents, &c.Status)
	return c, err
}

// All returns the full class catalogue.
func (r *ClassRepo) All(ctx context.Context) ([]model.Class, error) {
	return r.query(ctx, "SELECT "+classColumns+" FROM classes")
}

// Popular returns the top classes ranked by enrollment count, descending.
func (r *ClassRepo) Popular(ctx context.Context, limit int) ([]model.Class, error) {
	return r.query(ctx,
		"SELECT "+classColumns+" FROM classes ORDER BY number_of_students DESC LIMIT ?", limit)
}

// ByInstructor returns the classes owned by one instructor email.
func (r *ClassRepo) ByInstructor(ctx context.Context, email string) ([]model.Class, error) {
	return r.query(ctx,
		"SELECT "+classColumns+" FROM classes WHERE instructor_email=?", email)
}

// Create inserts a class and returns its ID.
func (r *ClassRepo) Create(ctx context.Context, c model.Class) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO classes
		   (name, image_url, instructor_name, instructor_email, available_seats, price, number_of_students, status)
		 VALUES (?,?,?,?,?,?,?,?)`,
		c.Name, c.ImageURL, c.InstructorName, c.InstructorEmail,
		c.AvailableSeats, c.Price, c.NumberOfStudents, c.Status)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *ClassRepo) query(ctx context.Context, q string, args ...any) ([]model.Class, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	classes := make([]model.Class, 0)
	for rows.Next() {
		c, err := scanClass(rows)
		if err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}
