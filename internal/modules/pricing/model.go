// README: Price comparison and quote models.
package pricing

import (
	"time"

	"fuelflow/internal/types"
)

// NearbyStation is one competitor data point inside a comparison.
type NearbyStation struct {
	StationID types.ID `json:"stationId"`
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	Distance  float64  `json:"distance"`
}

// Savings is derived from a market snapshot when the comparison is built.
type Savings struct {
	PerGallon  float64 `json:"perGallon"`
	Percentage float64 `json:"percentage"`
}

// PriceComparison is the cached market view for a (zipCode, fuelType)
// key. Rows older than the freshness window are superseded by a newer
// row on the next access, never deleted.
type PriceComparison struct {
	ID             types.ID
	ZipCode        string
	FuelType       types.FuelType
	OurPrice       float64
	MarketAverage  float64
	NearbyStations []NearbyStation
	Savings        Savings
	CreatedAt      time.Time
}

// MarketSnapshot is what a PriceSource returns for a zip code.
type MarketSnapshot struct {
	OurPrice       float64
	MarketAverage  float64
	NearbyStations []NearbyStation
}

// Quote is the per-request pricing view: the comparison data plus total
// savings for the requested quantity. Total savings are recomputed on
// every call since quantity varies per request.
type Quote struct {
	OurPrice       float64         `json:"ourPrice"`
	MarketAverage  float64         `json:"marketAverage"`
	NearbyStations []NearbyStation `json:"nearbyStations"`
	PerGallon      float64         `json:"perGallonSavings"`
	Percentage     float64         `json:"percentageSavings"`
	TotalSavings   float64         `json:"totalSavings"`
}

// Station is a gas station row feeding the market snapshot.
type Station struct {
	ID           types.ID
	Name         string
	Brand        string
	ZipCode      string
	Coordinate   types.Coordinate
	RegularPrice float64
	PremiumPrice float64
	DieselPrice  float64
	UpdatedAt    time.Time
}

// PriceFor returns the station's price for the given fuel type.
func (s Station) PriceFor(fuel types.FuelType) float64 {
	switch fuel {
	case types.FuelPremium:
		return s.PremiumPrice
	case types.FuelDiesel:
		return s.DieselPrice
	default:
		return s.RegularPrice
	}
}
