package pricing

import (
	"context"
	"math"
	"testing"

	"fuelflow/internal/types"
)

func TestDistanceFee(t *testing.T) {
	depot := types.Coordinate{Latitude: 40.7128, Longitude: -74.0060}
	fee := NewDistanceFee(depot, 4.99, 10, 0.35)

	t.Run("inside base band", func(t *testing.T) {
		// Times Square, about 3.4 miles from the depot.
		got, err := fee.FeeFor(context.Background(), types.Coordinate{Latitude: 40.7580, Longitude: -73.9855})
		if err != nil {
			t.Fatalf("FeeFor() error = %v", err)
		}
		if got != 4.99 {
			t.Errorf("fee = %v, want base 4.99 inside the band", got)
		}
	})

	t.Run("beyond base band", func(t *testing.T) {
		// White Plains, roughly 25 miles out.
		got, err := fee.FeeFor(context.Background(), types.Coordinate{Latitude: 41.0340, Longitude: -73.7629})
		if err != nil {
			t.Fatalf("FeeFor() error = %v", err)
		}
		if got <= 4.99 {
			t.Errorf("fee = %v, want surcharge above base", got)
		}
		// base + (miles-10)*0.35 never exceeds base + 40*0.35 inside
		// the 50-mile service radius.
		if got > 4.99+40*0.35 {
			t.Errorf("fee = %v, exceeds service-radius ceiling", got)
		}
	})

	t.Run("zero base falls back to default", func(t *testing.T) {
		f := NewDistanceFee(depot, 0, 10, 0.35)
		got, err := f.FeeFor(context.Background(), depot)
		if err != nil {
			t.Fatalf("FeeFor() error = %v", err)
		}
		if got != DefaultDeliveryFee {
			t.Errorf("fee = %v, want %v", got, DefaultDeliveryFee)
		}
	})
}

func TestFlatFee(t *testing.T) {
	got, err := FlatFee(4.99).FeeFor(context.Background(), types.Coordinate{Latitude: 34.0522, Longitude: -118.2437})
	if err != nil {
		t.Fatalf("FeeFor() error = %v", err)
	}
	if math.Abs(got-4.99) > 1e-9 {
		t.Errorf("fee = %v, want 4.99 regardless of destination", got)
	}
}
