// Package geo contains pure geographic computation helpers.
package geo

import (
	"math"

	"fuelflow/internal/types"
)

// Earth radius in miles; all service-area rules are expressed in miles.
const earthRadiusMiles = 3959.0

// DistanceMiles returns the great-circle distance in miles between two
// points using the haversine formula. Symmetric, and zero for identical
// points.
func DistanceMiles(a, b types.Coordinate) float64 {
	dLat := degreesToRadians(b.Latitude - a.Latitude)
	dLng := degreesToRadians(b.Longitude - a.Longitude)

	rLat1 := degreesToRadians(a.Latitude)
	rLat2 := degreesToRadians(b.Latitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMiles * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// WithinBounds reports whether p lies inside the rectangle spanned by the
// northeast and southwest corners. The comparison is inclusive and
// per-axis, not geodesic.
func WithinBounds(p, northeast, southwest types.Coordinate) bool {
	return p.Latitude <= northeast.Latitude &&
		p.Latitude >= southwest.Latitude &&
		p.Longitude <= northeast.Longitude &&
		p.Longitude >= southwest.Longitude
}

// Centroid returns the arithmetic mean of the coordinate components.
// An empty input yields the zero coordinate; that is a documented
// degenerate case, not an error.
func Centroid(points []types.Coordinate) types.Coordinate {
	if len(points) == 0 {
		return types.Coordinate{}
	}
	var sumLat, sumLng float64
	for _, p := range points {
		sumLat += p.Latitude
		sumLng += p.Longitude
	}
	n := float64(len(points))
	return types.Coordinate{Latitude: sumLat / n, Longitude: sumLng / n}
}

// Region is a map viewport: a center plus latitude/longitude spans.
type Region struct {
	Center        types.Coordinate
	LatitudeSpan  float64
	LongitudeSpan float64
}

// RegionForZoom computes the viewport span for a tile zoom level:
// span = 2^(20-zoom) * 0.009. Zoom levels outside the usual 1..20 range
// still compute but produce extreme spans; clamping is the caller's
// responsibility.
func RegionForZoom(center types.Coordinate, zoom int) Region {
	span := math.Pow(2, float64(20-zoom)) * 0.009
	return Region{Center: center, LatitudeSpan: span, LongitudeSpan: span}
}

// SortByDistance performs an insertion sort (fine for small N) on any slice
// where each element exposes a distance via the accessor function.
func SortByDistance[T any](items []T, dist func(T) float64) {
	for i := 1; i < len(items); i++ {
		key := items[i]
		j := i - 1
		for j >= 0 && dist(items[j]) > dist(key) {
			items[j+1] = items[j]
			j--
		}
		items[j+1] = key
	}
}
