// Package queue defines message payloads exchanged over the message broker.
package queue

// PaymentRecordedEvent is published when a payment has been persisted and
// its selection sweep attempted.  It carries enough information for
// downstream consumers to send receipts or feed analytics without querying
// the primary database.
type PaymentRecordedEvent struct {
    PaymentID        uint64   `json:"payment_id"`
    Email            string   `json:"email"`
    TransactionID    string   `json:"transaction_id"`
    Amount           float64  `json:"amount"`
    SelectedClassIDs []uint64 `json:"selected_class_ids"`
    PaidAt           string   `json:"paid_at"`
}
