// README: Shared value objects used across modules.
package types

// ID is an opaque entity identifier.
type ID string

// Coordinate is a WGS84 point. Latitude must be in [-90, 90] and
// longitude in [-180, 180]; validation happens in the address module,
// values are never clamped.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// FuelType selects the price lookup key and drives vehicle compatibility.
type FuelType string

const (
	FuelRegular FuelType = "regular"
	FuelPremium FuelType = "premium"
	FuelDiesel  FuelType = "diesel"
)

// Valid reports whether f is one of the known fuel types.
func (f FuelType) Valid() bool {
	switch f {
	case FuelRegular, FuelPremium, FuelDiesel:
		return true
	}
	return false
}

// Money is an integer-cent amount for the payment boundary. Quote
// arithmetic stays in float64 and rounds once at the edge.
type Money struct {
	Cents    int64
	Currency string
}
