package model

import "time"

// Payment represents a completed charge as stored in the `payments` table.
// Records are append-only.  SelectedClassIDs lists the selection rows the
// payment covered; recording a payment triggers a compensating bulk delete
// of exactly those rows.  The two steps are not transactional — if the
// sweep fails after the insert succeeded, both raw outcomes are returned
// to the caller as-is.
type Payment struct {
    ID               uint64    `json:"id"`
    Email            string    `json:"email"`
    TransactionID    string    `json:"transactionId"`
    Amount           float64   `json:"amount"`
    SelectedClassIDs []uint64  `json:"selectedClassItems,omitempty"`
    PaidAt           time.Time `json:"date"`
}
