// README: Coordinate sanity checks and service-area enforcement.
package address

import (
	"errors"

	"fuelflow/internal/geo"
	"fuelflow/internal/types"
)

var (
	// ErrInvalidCoordinates marks a latitude or longitude outside its
	// valid range. Checked before any geographic computation.
	ErrInvalidCoordinates = errors.New("invalid coordinates")

	// ErrOutsideServiceArea marks a valid coordinate beyond the
	// configured delivery radius.
	ErrOutsideServiceArea = errors.New("address is outside the service area")
)

// DefaultMaxRadiusMiles is the delivery radius used when no override is
// configured.
const DefaultMaxRadiusMiles = 50.0

// Validator enforces coordinate sanity and the service-area radius.
type Validator struct {
	center         types.Coordinate
	maxRadiusMiles float64
}

func NewValidator(center types.Coordinate, maxRadiusMiles float64) *Validator {
	if maxRadiusMiles <= 0 {
		maxRadiusMiles = DefaultMaxRadiusMiles
	}
	return &Validator{center: center, maxRadiusMiles: maxRadiusMiles}
}

// ValidateCoordinates rejects out-of-range components. Values are never
// clamped.
func ValidateCoordinates(c types.Coordinate) error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return ErrInvalidCoordinates
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return ErrInvalidCoordinates
	}
	return nil
}

// ValidateServiceArea checks coordinate validity first, then the
// great-circle distance from the service center. The ordering matters:
// garbage coordinates report ErrInvalidCoordinates, never
// ErrOutsideServiceArea.
func (v *Validator) ValidateServiceArea(c types.Coordinate) error {
	if err := ValidateCoordinates(c); err != nil {
		return err
	}
	if geo.DistanceMiles(v.center, c) > v.maxRadiusMiles {
		return ErrOutsideServiceArea
	}
	return nil
}
