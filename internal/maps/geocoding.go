package maps

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"

	"fuelflow/internal/types"
)

// PartialAddress holds the structured postal fields a reverse-geocode
// lookup can recover. Any field may be empty.
type PartialAddress struct {
	Street  string
	City    string
	State   string
	ZipCode string
}

// GeocodingClient handles interactions with the Google Maps Geocoding API.
type GeocodingClient struct {
	client *maps.Client
	region string
}

// NewGeocodingClient creates a GeocodingClient with the given API key.
// Results are biased to US addresses, matching the service area.
func NewGeocodingClient(apiKey string) (*GeocodingClient, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GeocodingClient{client: client, region: "us"}, nil
}

// Forward resolves free-form address text to a coordinate. The boolean
// result is false when the API returns no matches.
func (c *GeocodingClient) Forward(ctx context.Context, addressText string) (types.Coordinate, bool, error) {
	results, err := c.client.Geocode(ctx, &maps.GeocodingRequest{
		Address: addressText,
		Region:  c.region,
	})
	if err != nil {
		return types.Coordinate{}, false, fmt.Errorf("geocoding api error: %w", err)
	}
	if len(results) == 0 {
		return types.Coordinate{}, false, nil
	}
	loc := results[0].Geometry.Location
	return types.Coordinate{Latitude: loc.Lat, Longitude: loc.Lng}, true, nil
}

// Reverse resolves a coordinate to structured postal fields. The boolean
// result is false when the API returns no matches.
func (c *GeocodingClient) Reverse(ctx context.Context, coord types.Coordinate) (PartialAddress, bool, error) {
	results, err := c.client.ReverseGeocode(ctx, &maps.GeocodingRequest{
		LatLng: &maps.LatLng{Lat: coord.Latitude, Lng: coord.Longitude},
	})
	if err != nil {
		return PartialAddress{}, false, fmt.Errorf("geocoding api error: %w", err)
	}
	if len(results) == 0 {
		return PartialAddress{}, false, nil
	}
	return parseComponents(results[0].AddressComponents), true, nil
}

func parseComponents(components []maps.AddressComponent) PartialAddress {
	var streetNumber, route string
	var out PartialAddress
	for _, comp := range components {
		for _, t := range comp.Types {
			switch t {
			case "street_number":
				streetNumber = comp.LongName
			case "route":
				route = comp.LongName
			case "locality", "sublocality":
				if out.City == "" {
					out.City = comp.LongName
				}
			case "administrative_area_level_1":
				out.State = comp.ShortName
			case "postal_code":
				out.ZipCode = comp.LongName
			}
		}
	}
	if streetNumber != "" && route != "" {
		out.Street = streetNumber + " " + route
	} else {
		out.Street = streetNumber + route
	}
	return out
}
