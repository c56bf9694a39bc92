// README: Distance-banded delivery fee calculator.
package pricing

import (
	"context"

	"fuelflow/internal/geo"
	"fuelflow/internal/types"
)

// FeeSource computes the delivery fee for a destination.
type FeeSource interface {
	FeeFor(ctx context.Context, destination types.Coordinate) (float64, error)
}

// DistanceFee charges the base fee inside the base band around the
// depot and adds a per-mile surcharge beyond it.
type DistanceFee struct {
	depot     types.Coordinate
	baseFee   float64
	baseMiles float64
	perMile   float64
}

func NewDistanceFee(depot types.Coordinate, baseFee, baseMiles, perMile float64) *DistanceFee {
	if baseFee <= 0 {
		baseFee = DefaultDeliveryFee
	}
	return &DistanceFee{depot: depot, baseFee: baseFee, baseMiles: baseMiles, perMile: perMile}
}

func (d *DistanceFee) FeeFor(_ context.Context, destination types.Coordinate) (float64, error) {
	miles := geo.DistanceMiles(d.depot, destination)
	fee := d.baseFee
	if miles > d.baseMiles {
		fee += (miles - d.baseMiles) * d.perMile
	}
	return RoundCents(fee), nil
}

// FlatFee always returns the same fee; the fallback when no fee source
// is configured.
type FlatFee float64

func (f FlatFee) FeeFor(context.Context, types.Coordinate) (float64, error) {
	return float64(f), nil
}
