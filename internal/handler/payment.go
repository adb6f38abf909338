package handler

import (
	"context"
	"log"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/creativecapture/creative-capture-server/internal/middleware"
	"github.com/creativecapture/creative-capture-server/internal/model"
	"github.com/creativecapture/creative-capture-server/internal/queue"
)

// PaymentStore is the slice of the payment repository the handlers consume.
// *repository.PaymentRepo satisfies it.
type PaymentStore interface {
	Create(ctx context.Context, p model.Payment) (uint64, error)
	ByEmail(ctx context.Context, email string, newestFirst bool) ([]model.Payment, error)
}

// IntentCreator creates a provider payment intent and returns its id and
// client secret.  *payments.StripeProvider satisfies it.
type IntentCreator interface {
	CreatePaymentIntent(amount int64, currency string) (id, clientSecret string, err error)
}

// PaymentHandler serves the payment endpoints: provider intents, recording
// a payment with its compensating selection sweep, and payment history.
type PaymentHandler struct {
	Payments   PaymentStore
	Selections SelectionStore
	Intents    IntentCreator
	// Publish emits a payment-recorded event after a successful insert.
	// Failures are logged and never fail the request.  Nil disables
	// publishing (tests, broker-less deployments).
	Publish func(ctx context.Context, ev queue.PaymentRecordedEvent) error
}

func NewPaymentHandler(p PaymentStore, s SelectionStore, i IntentCreator,
	publish func(context.Context, queue.PaymentRecordedEvent) error) *PaymentHandler {
	return &PaymentHandler{Payments: p, Selections: s, Intents: i, Publish: publish}
}

type intentReq struct {
	Email string  `json:"email"`
	Price float64 `json:"price"`
}

// CreateIntent handles POST /create-payment-intent.  The amount charged is
// the submitted price in the major unit, rounded to cents.  When the body
// carries an email it must match the authenticated caller.
func (h *PaymentHandler) CreateIntent(c echo.Context) error {
	var req intentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "invalid body"})
	}
	if email := strings.ToLower(strings.TrimSpace(req.Email)); email != "" && email != middleware.AuthedEmail(c) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": true, "message": "forbidden access"})
	}
	if req.Price <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "price required"})
	}

	amount := int64(math.Round(req.Price * 100))
	_, secret, err := h.Intents.CreatePaymentIntent(amount, "usd")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "create payment intent failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"clientSecret": secret})
}

// Record handles POST /payments: insert the payment record, then sweep the
// selection rows it covered.  The two steps are deliberately not one
// transaction — when the sweep fails after a successful insert, both raw
// outcomes go back to the caller instead of rolling anything back.
func (h *PaymentHandler) Record(c echo.Context) error {
	var p model.Payment
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "invalid body"})
	}
	if strings.TrimSpace(p.Email) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": true, "message": "email required"})
	}
	if p.PaidAt.IsZero() {
		p.PaidAt = time.Now().UTC()
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Payments.Create(ctx, p)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "record payment failed"})
	}
	insertResult := echo.Map{"acknowledged": true, "insertedId": id}

	var deleteResult echo.Map
	if n, err := h.Selections.DeleteByIDs(ctx, p.SelectedClassIDs); err != nil {
		deleteResult = echo.Map{"acknowledged": false, "error": err.Error()}
	} else {
		deleteResult = echo.Map{"acknowledged": true, "deletedCount": n}
	}

	if h.Publish != nil {
		ev := queue.PaymentRecordedEvent{
			PaymentID:        id,
			Email:            strings.ToLower(strings.TrimSpace(p.Email)),
			TransactionID:    p.TransactionID,
			Amount:           p.Amount,
			SelectedClassIDs: p.SelectedClassIDs,
			PaidAt:           p.PaidAt.Format(time.RFC3339),
		}
		if err := h.Publish(ctx, ev); err != nil {
			log.Printf("payment event publish failed: %v", err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"insertResult": insertResult, "deleteResult": deleteResult})
}

// History handles GET /payments/:email and GET /payment/:email.  The latter
// sorts newest first for the history page; the gate already matched the
// path email to the caller.
func (h *PaymentHandler) History(newestFirst bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		email := strings.ToLower(strings.TrimSpace(c.Param("email")))

		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()

		payments, err := h.Payments.ByEmail(ctx, email, newestFirst)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": true, "message": "query failed"})
		}
		return c.JSON(http.StatusOK, payments)
	}
}
