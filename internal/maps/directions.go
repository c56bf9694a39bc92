package maps

import (
	"context"
	"fmt"
	"time"

	"googlemaps.github.io/maps"

	"fuelflow/internal/types"
)

// RouteSummary is the raw directions result handed to the route module:
// human-readable labels plus the encoded overview polyline.
type RouteSummary struct {
	DistanceLabel   string
	DurationLabel   string
	EncodedPolyline string
}

// DirectionsClient handles interactions with the Google Maps Directions API.
type DirectionsClient struct {
	client *maps.Client
}

// NewDirectionsClient creates a DirectionsClient with the given API key.
func NewDirectionsClient(apiKey string) (*DirectionsClient, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &DirectionsClient{client: client}, nil
}

// FetchRoute returns the driving route from origin to destination.
func (c *DirectionsClient) FetchRoute(ctx context.Context, origin, destination types.Coordinate) (RouteSummary, error) {
	r := &maps.DirectionsRequest{
		Origin:      latLng(origin),
		Destination: latLng(destination),
		Mode:        maps.TravelModeDriving,
		Units:       maps.UnitsImperial,
	}

	routes, _, err := c.client.Directions(ctx, r)
	if err != nil {
		return RouteSummary{}, fmt.Errorf("maps api error: %w", err)
	}

	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return RouteSummary{}, fmt.Errorf("no route found")
	}

	leg := routes[0].Legs[0]
	return RouteSummary{
		DistanceLabel:   leg.Distance.HumanReadable,
		DurationLabel:   durationLabel(leg.Duration),
		EncodedPolyline: routes[0].OverviewPolyline.Points,
	}, nil
}

func latLng(c types.Coordinate) string {
	return fmt.Sprintf("%f,%f", c.Latitude, c.Longitude)
}

func durationLabel(d time.Duration) string {
	mins := int(d.Round(time.Minute) / time.Minute)
	if mins < 60 {
		return fmt.Sprintf("%d min", mins)
	}
	return fmt.Sprintf("%d hr %d min", mins/60, mins%60)
}
