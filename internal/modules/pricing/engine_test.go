package pricing

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestQuote(t *testing.T) {
	engine := NewEngine(0.08)

	tests := []struct {
		name        string
		price       float64
		quantity    float64
		deliveryFee float64
		want        Breakdown
	}{
		{
			name:        "reference order",
			price:       4.00,
			quantity:    15,
			deliveryFee: 4.99,
			want:        Breakdown{Subtotal: 60.00, DeliveryFee: 4.99, Tax: 5.20, Total: 70.19},
		},
		{
			name:        "minimum quantity",
			price:       3.50,
			quantity:    5,
			deliveryFee: 4.99,
			want:        Breakdown{Subtotal: 17.50, DeliveryFee: 4.99, Tax: 1.80, Total: 24.29},
		},
		{
			name:        "maximum quantity",
			price:       3.50,
			quantity:    50,
			deliveryFee: 4.99,
			want:        Breakdown{Subtotal: 175.00, DeliveryFee: 4.99, Tax: 14.40, Total: 194.39},
		},
		{
			name:        "negative fee falls back to default",
			price:       4.00,
			quantity:    15,
			deliveryFee: -1,
			want:        Breakdown{Subtotal: 60.00, DeliveryFee: 4.99, Tax: 5.20, Total: 70.19},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.Quote(tt.price, tt.quantity, tt.deliveryFee)
			if err != nil {
				t.Fatalf("Quote() error = %v", err)
			}
			if !almostEqual(got.Subtotal, tt.want.Subtotal) {
				t.Errorf("subtotal = %.4f, want %.2f", got.Subtotal, tt.want.Subtotal)
			}
			if !almostEqual(got.DeliveryFee, tt.want.DeliveryFee) {
				t.Errorf("deliveryFee = %.4f, want %.2f", got.DeliveryFee, tt.want.DeliveryFee)
			}
			if !almostEqual(got.Tax, tt.want.Tax) {
				t.Errorf("tax = %.4f, want %.2f", got.Tax, tt.want.Tax)
			}
			if !almostEqual(got.Total, tt.want.Total) {
				t.Errorf("total = %.4f, want %.2f", got.Total, tt.want.Total)
			}
		})
	}
}

func TestQuote_QuantityBounds(t *testing.T) {
	engine := NewEngine(0.08)

	for _, quantity := range []float64{4, 4.99, 50.01, 51, 0, -5} {
		if _, err := engine.Quote(4.00, quantity, 4.99); !errors.Is(err, ErrQuantityOutOfRange) {
			t.Errorf("Quote(qty=%v) error = %v, want ErrQuantityOutOfRange", quantity, err)
		}
	}
	for _, quantity := range []float64{5, 50, 20} {
		if _, err := engine.Quote(4.00, quantity, 4.99); err != nil {
			t.Errorf("Quote(qty=%v) error = %v, want nil", quantity, err)
		}
	}
}

func TestQuote_Deterministic(t *testing.T) {
	engine := NewEngine(0.08)

	first, err := engine.Quote(3.79, 12.5, 4.99)
	if err != nil {
		t.Fatalf("Quote() error = %v", err)
	}
	for i := 0; i < 100; i++ {
		got, err := engine.Quote(3.79, 12.5, 4.99)
		if err != nil {
			t.Fatalf("Quote() error = %v", err)
		}
		if got != first {
			t.Fatalf("Quote() = %+v, want %+v on repeat call", got, first)
		}
	}
}

func TestRoundCents(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{5.1992, 5.20},
		{5.195, 5.20},
		{5.194, 5.19},
		{0, 0},
		{70.189, 70.19},
	}
	for _, tt := range tests {
		if got := RoundCents(tt.in); !almostEqual(got, tt.want) {
			t.Errorf("RoundCents(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
