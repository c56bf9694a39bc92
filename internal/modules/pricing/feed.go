// README: Station-backed market price feed.
package pricing

import (
	"context"
	"fmt"

	"fuelflow/internal/geo"
	"fuelflow/internal/types"
)

// maxNearbyStations caps the competitor list inside a comparison.
const maxNearbyStations = 5

// ZipLocator resolves a zip code to a reference coordinate for distance
// ranking. The geocoding adapter satisfies this with Forward.
type ZipLocator interface {
	Forward(ctx context.Context, addressText string) (types.Coordinate, bool, error)
}

// StationStore lists gas stations by zip code.
type StationStore interface {
	ListByZip(ctx context.Context, zipCode string) ([]Station, error)
}

// StationFeed derives a market snapshot for a zip code from the tracked
// station prices: the market average over stations carrying the fuel,
// our price at a configured discount below it, and the nearest stations
// ranked by distance from the zip center.
type StationFeed struct {
	stations StationStore
	locator  ZipLocator
	discount float64
}

func NewStationFeed(stations StationStore, locator ZipLocator, discount float64) *StationFeed {
	return &StationFeed{stations: stations, locator: locator, discount: discount}
}

func (f *StationFeed) FetchMarketPrices(ctx context.Context, zipCode string, fuel types.FuelType) (MarketSnapshot, error) {
	stations, err := f.stations.ListByZip(ctx, zipCode)
	if err != nil {
		return MarketSnapshot{}, fmt.Errorf("list stations: %w", err)
	}
	if len(stations) == 0 {
		return MarketSnapshot{}, fmt.Errorf("no station prices for zip %s", zipCode)
	}

	center, ok, err := f.locator.Forward(ctx, zipCode)
	if err != nil {
		return MarketSnapshot{}, fmt.Errorf("locate zip: %w", err)
	}
	if !ok {
		// Fall back to the centroid of the stations themselves.
		points := make([]types.Coordinate, len(stations))
		for i, st := range stations {
			points[i] = st.Coordinate
		}
		center = geo.Centroid(points)
	}

	var sum float64
	var counted int
	nearby := make([]NearbyStation, 0, len(stations))
	for _, st := range stations {
		price := st.PriceFor(fuel)
		if price <= 0 {
			continue
		}
		sum += price
		counted++
		nearby = append(nearby, NearbyStation{
			StationID: st.ID,
			Name:      st.Name,
			Price:     price,
			Distance:  geo.DistanceMiles(center, st.Coordinate),
		})
	}
	if counted == 0 {
		return MarketSnapshot{}, fmt.Errorf("no %s prices for zip %s", fuel, zipCode)
	}

	geo.SortByDistance(nearby, func(n NearbyStation) float64 { return n.Distance })
	if len(nearby) > maxNearbyStations {
		nearby = nearby[:maxNearbyStations]
	}

	market := sum / float64(counted)
	return MarketSnapshot{
		OurPrice:       RoundCents(market * (1 - f.discount)),
		MarketAverage:  RoundCents(market),
		NearbyStations: nearby,
	}, nil
}
