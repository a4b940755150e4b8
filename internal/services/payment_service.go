// ./mentora-backend/internal/services/payment_service.go
package services

import (
	"context"
	"log"
	"math"

	"github.com/pkg/errors"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// MaxAmountInCents is the largest charge Stripe accepts in USD ($999,999.99).
const MaxAmountInCents int64 = 99999999

var ErrAmountOutOfRange = errors.New("amount out of range")

// AmountInCents converts a positive dollar amount to the smallest currency
// unit. Amounts that round to nothing or exceed MaxAmountInCents are rejected.
func AmountInCents(amount float64) (int64, error) {
	cents := math.Round(amount * 100)
	if math.IsNaN(cents) || cents < 1 || cents > float64(MaxAmountInCents) {
		return 0, errors.Wrapf(ErrAmountOutOfRange, "%v", amount)
	}
	return int64(cents), nil
}

// PaymentService creates Stripe payment intents for card payments in USD.
type PaymentService struct {
	api *client.API
}

func NewPaymentService(secretKey string) *PaymentService {
	if secretKey == "" {
		log.Println("[PaymentService] STRIPE_SECRET_KEY not set, payment intents will fail")
	}
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return &PaymentService{api: sc}
}

// CreatePaymentIntent returns the intent's client secret. Stripe errors come
// back as *stripe.Error.
func (s *PaymentService) CreatePaymentIntent(ctx context.Context, amountInCents int64) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amountInCents),
		Currency:           stripe.String(string(stripe.CurrencyUSD)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	pi, err := s.api.PaymentIntents.New(params)
	if err != nil {
		return "", err
	}
	return pi.ClientSecret, nil
}

// PaymentErrorMessage extracts the provider's human-readable message.
func PaymentErrorMessage(err error) string {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
		return stripeErr.Msg
	}
	return err.Error()
}
