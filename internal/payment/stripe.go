// README: Stripe-backed payment processor.
package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"fuelflow/internal/types"
)

// ephemeralKeyVersion must match the mobile SDK's pinned API version.
const ephemeralKeyVersion = "2024-06-20"

type StripeProcessor struct {
	sc *client.API
}

func NewStripeProcessor(secretKey string) *StripeProcessor {
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return &StripeProcessor{sc: sc}
}

// CreateIntent provisions a throwaway customer, an ephemeral key for
// it, and a payment intent for the order total.
func (p *StripeProcessor) CreateIntent(_ context.Context, amount types.Money, metadata map[string]string) (Intent, error) {
	currency := amount.Currency
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}

	cust, err := p.sc.Customers.New(&stripe.CustomerParams{})
	if err != nil {
		return Intent{}, fmt.Errorf("%w: create customer: %v", ErrRemoteService, err)
	}

	ek, err := p.sc.EphemeralKeys.New(&stripe.EphemeralKeyParams{
		Customer:      stripe.String(cust.ID),
		StripeVersion: stripe.String(ephemeralKeyVersion),
	})
	if err != nil {
		return Intent{}, fmt.Errorf("%w: create ephemeral key: %v", ErrRemoteService, err)
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount.Cents),
		Currency: stripe.String(currency),
		Customer: stripe.String(cust.ID),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := p.sc.PaymentIntents.New(params)
	if err != nil {
		return Intent{}, fmt.Errorf("%w: create payment intent: %v", ErrRemoteService, err)
	}

	return Intent{
		ClientSecret: pi.ClientSecret,
		EphemeralKey: ek.Secret,
		CustomerID:   cust.ID,
	}, nil
}
