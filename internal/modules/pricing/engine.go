// README: Deterministic order cost breakdown.
package pricing

import (
	"errors"
	"math"
)

const (
	// Order quantity bounds in gallons, inclusive.
	MinOrderQuantity = 5.0
	MaxOrderQuantity = 50.0

	DefaultTaxRate     = 0.08
	DefaultDeliveryFee = 4.99
)

// ErrQuantityOutOfRange marks an order quantity outside [min, max].
var ErrQuantityOutOfRange = errors.New("quantity out of range")

// Breakdown is a complete order cost breakdown. It is never returned
// partially filled.
type Breakdown struct {
	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"deliveryFee"`
	Tax         float64 `json:"tax"`
	Total       float64 `json:"total"`
}

// Engine computes cost breakdowns. A pure function of its inputs:
// identical inputs always yield identical output.
type Engine struct {
	taxRate float64
}

func NewEngine(taxRate float64) *Engine {
	if taxRate <= 0 {
		taxRate = DefaultTaxRate
	}
	return &Engine{taxRate: taxRate}
}

func (e *Engine) TaxRate() float64 { return e.taxRate }

// Quote computes subtotal, tax, and total for an order configuration.
// Quantity bounds are enforced before any arithmetic. Intermediate
// precision is preserved; each monetary component is rounded to cents
// only once, at the end.
func (e *Engine) Quote(ourPrice, quantity, deliveryFee float64) (Breakdown, error) {
	if quantity < MinOrderQuantity || quantity > MaxOrderQuantity {
		return Breakdown{}, ErrQuantityOutOfRange
	}
	if deliveryFee < 0 {
		deliveryFee = DefaultDeliveryFee
	}

	subtotal := ourPrice * quantity
	tax := (subtotal + deliveryFee) * e.taxRate
	total := subtotal + deliveryFee + tax

	return Breakdown{
		Subtotal:    RoundCents(subtotal),
		DeliveryFee: RoundCents(deliveryFee),
		Tax:         RoundCents(tax),
		Total:       RoundCents(total),
	}, nil
}

// RoundCents rounds half-up to two decimal places.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
