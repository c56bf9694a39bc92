// README: Route estimation between the depot and a delivery address.
package route

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"fuelflow/internal/geo"
	"fuelflow/internal/maps"
	"fuelflow/internal/types"
)

// ErrRouteUnavailable means no route could be computed. Callers render
// nothing and keep going; route failure never blocks an order.
var ErrRouteUnavailable = errors.New("route unavailable")

// DirectionsSource fetches a driving route from the maps provider.
type DirectionsSource interface {
	FetchRoute(ctx context.Context, origin, destination types.Coordinate) (maps.RouteSummary, error)
}

// Route is the decoded result served to clients.
type Route struct {
	DistanceLabel string             `json:"distance"`
	DurationLabel string             `json:"duration"`
	Path          []types.Coordinate `json:"path"`
}

type Estimator struct {
	source DirectionsSource
	log    *zap.Logger
}

func NewEstimator(source DirectionsSource, log *zap.Logger) *Estimator {
	return &Estimator{source: source, log: log}
}

// ComputeRoute fetches and decodes the route. Any collaborator failure,
// including a malformed polyline in the response, surfaces as
// ErrRouteUnavailable with the cause wrapped.
func (e *Estimator) ComputeRoute(ctx context.Context, origin, destination types.Coordinate) (*Route, error) {
	summary, err := e.source.FetchRoute(ctx, origin, destination)
	if err != nil {
		e.log.Warn("route fetch failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrRouteUnavailable, err)
	}

	path, err := geo.DecodePolyline(summary.EncodedPolyline)
	if err != nil {
		e.log.Warn("route polyline malformed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrRouteUnavailable, err)
	}

	return &Route{
		DistanceLabel: summary.DistanceLabel,
		DurationLabel: summary.DurationLabel,
		Path:          path,
	}, nil
}
