// README: Payment processor boundary; the client completes the payment
// sheet with the returned secrets.
package payment

import (
	"context"
	"errors"

	"fuelflow/internal/types"
)

// ErrRemoteService wraps provider failures so handlers can map them to
// one status without inspecting provider error types.
var ErrRemoteService = errors.New("payment provider unavailable")

// Intent carries everything the mobile client needs to present the
// payment sheet.
type Intent struct {
	ClientSecret string `json:"clientSecret"`
	EphemeralKey string `json:"ephemeralKey"`
	CustomerID   string `json:"customerId"`
}

// Processor creates a payment intent for an order total.
type Processor interface {
	CreateIntent(ctx context.Context, amount types.Money, metadata map[string]string) (Intent, error)
}
