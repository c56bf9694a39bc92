package route

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"fuelflow/internal/geo"
	"fuelflow/internal/maps"
	"fuelflow/internal/types"
)

type fakeDirections struct {
	summary maps.RouteSummary
	err     error
}

func (f *fakeDirections) FetchRoute(context.Context, types.Coordinate, types.Coordinate) (maps.RouteSummary, error) {
	return f.summary, f.err
}

var (
	depot = types.Coordinate{Latitude: 40.7128, Longitude: -74.0060}
	dest  = types.Coordinate{Latitude: 40.7580, Longitude: -73.9855}
)

func TestComputeRoute(t *testing.T) {
	est := NewEstimator(&fakeDirections{summary: maps.RouteSummary{
		DistanceLabel:   "3.1 mi",
		DurationLabel:   "14 mins",
		EncodedPolyline: "_p~iF~ps|U_ulLnnqC",
	}}, zap.NewNop())

	r, err := est.ComputeRoute(context.Background(), depot, dest)
	if err != nil {
		t.Fatalf("ComputeRoute() error = %v", err)
	}
	if r.DistanceLabel != "3.1 mi" || r.DurationLabel != "14 mins" {
		t.Errorf("labels = %q/%q", r.DistanceLabel, r.DurationLabel)
	}
	if len(r.Path) != 2 {
		t.Fatalf("path = %d points, want 2", len(r.Path))
	}
	if r.Path[0].Latitude != 38.5 || r.Path[0].Longitude != -120.2 {
		t.Errorf("path[0] = %+v", r.Path[0])
	}
}

func TestComputeRoute_SourceFailure(t *testing.T) {
	est := NewEstimator(&fakeDirections{err: errors.New("DEADLINE_EXCEEDED")}, zap.NewNop())

	_, err := est.ComputeRoute(context.Background(), depot, dest)
	if !errors.Is(err, ErrRouteUnavailable) {
		t.Errorf("ComputeRoute() error = %v, want ErrRouteUnavailable", err)
	}
}

func TestComputeRoute_MalformedPolyline(t *testing.T) {
	est := NewEstimator(&fakeDirections{summary: maps.RouteSummary{
		DistanceLabel:   "3.1 mi",
		DurationLabel:   "14 mins",
		EncodedPolyline: "_p~iF",
	}}, zap.NewNop())

	_, err := est.ComputeRoute(context.Background(), depot, dest)
	if !errors.Is(err, ErrRouteUnavailable) {
		t.Errorf("ComputeRoute() error = %v, want ErrRouteUnavailable", err)
	}
	if !errors.Is(err, geo.ErrMalformedPolyline) {
		t.Errorf("ComputeRoute() error = %v, want wrapped ErrMalformedPolyline", err)
	}
}
