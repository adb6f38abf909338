package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/creativecapture/creative-capture-server/internal/model"
)

// PaymentRepo manages the append-only payments table plus payment_items,
// the join table remembering which selection ids each payment covered.
type PaymentRepo struct{ DB *sql.DB }

func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{DB: db} }

// Create inserts a payment row and its item rows, returning the payment ID.
// The item insert shares the payment insert's fate inside one transaction;
// the compensating selection sweep does NOT — that happens afterwards in
// the handler and its failure is surfaced to the caller, not rolled back.
func (r *PaymentRepo) Create(ctx context.Context, p model.Payment) (uint64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO payments (email, transaction_id, amount, paid_at) VALUES (?,?,?,?)",
		strings.ToLower(strings.TrimSpace(p.Email)), p.TransactionID, p.Amount, p.PaidAt)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(p.SelectedClassIDs) > 0 {
		q := "INSERT INTO payment_items (payment_id, selected_class_id) VALUES "
		args := make([]any, 0, len(p.SelectedClassIDs)*2)
		for i, sid := range p.SelectedClassIDs {
			if i > 0 {
				q += ","
			}
			q += "(?,?)"
			args = append(args, id, sid)
		}
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ByEmail returns a user's payments.  When newestFirst is set the rows come
// back ordered by payment date descending (the history view).
func (r *PaymentRepo) ByEmail(ctx context.Context, email string, newestFirst bool) ([]model.Payment, error) {
	q := "SELECT id,email,transaction_id,amount,paid_at FROM payments WHERE email=?"
	if newestFirst {
		q += " ORDER BY paid_at DESC"
	}
	rows, err := r.DB.QueryContext(ctx, q, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]model.Payment, 0)
	for rows.Next() {
		var p model.Payment
		if err := rows.Scan(&p.ID, &p.Email, &p.TransactionID, &p.Amount, &p.PaidAt); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Attach the covered selection ids so history responses mirror what was
	// originally recorded.
	for i := range payments {
		ids, err := r.itemIDs(ctx, payments[i].ID)
		if err != nil {
			return nil, err
		}
		payments[i].SelectedClassIDs = ids
	}
	return payments, nil
}

func (r *PaymentRepo) itemIDs(ctx context.Context, paymentID uint64) ([]uint64, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT selected_class_id FROM payment_items WHERE payment_id=?", paymentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
