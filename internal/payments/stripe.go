package payments

import (
	"fmt"

	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"
)

// StripeProvider creates payment intents against the Stripe API.  The key
// is set once at construction; the stripe-go bindings keep it process-wide.
type StripeProvider struct {
	apiKey string
}

// NewStripeProvider configures the Stripe bindings with the given secret key.
func NewStripeProvider(apiKey string) *StripeProvider {
	stripe.Key = apiKey
	return &StripeProvider{apiKey: apiKey}
}

// CreatePaymentIntent creates a card payment intent for the given amount in
// the currency's minor unit and returns its id and client secret.  The
// client secret goes back to the frontend, which completes the charge with
// Stripe directly.
func (s *StripeProvider) CreatePaymentIntent(amount int64, currency string) (string, string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", "", fmt.Errorf("failed to create payment intent: %w", err)
	}
	return pi.ID, pi.ClientSecret, nil
}
