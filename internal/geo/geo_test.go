package geo

import (
	"math"
	"testing"

	"fuelflow/internal/types"
)

func TestDistanceMiles_KnownDistances(t *testing.T) {
	tests := []struct {
		name      string
		a, b      types.Coordinate
		wantMiles float64
		tolerance float64
	}{
		{
			name:      "same point",
			a:         types.Coordinate{Latitude: 40.7128, Longitude: -74.0060},
			b:         types.Coordinate{Latitude: 40.7128, Longitude: -74.0060},
			wantMiles: 0,
			tolerance: 1e-9,
		},
		{
			name:      "lower Manhattan to Times Square (~3.37mi)",
			a:         types.Coordinate{Latitude: 40.7128, Longitude: -74.0060},
			b:         types.Coordinate{Latitude: 40.7589, Longitude: -73.9851},
			wantMiles: 3.368,
			tolerance: 1e-3,
		},
		{
			name:      "New York to Los Angeles (~2451mi)",
			a:         types.Coordinate{Latitude: 40.7128, Longitude: -74.0060},
			b:         types.Coordinate{Latitude: 34.0522, Longitude: -118.2437},
			wantMiles: 2451,
			tolerance: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceMiles(tt.a, tt.b)
			if math.Abs(got-tt.wantMiles) > tt.tolerance {
				t.Errorf("DistanceMiles() = %f, want %f (±%f)", got, tt.wantMiles, tt.tolerance)
			}
		})
	}
}

func TestDistanceMiles_Symmetry(t *testing.T) {
	a := types.Coordinate{Latitude: 40.0, Longitude: -74.0}
	b := types.Coordinate{Latitude: 41.0, Longitude: -73.0}
	d1 := DistanceMiles(a, b)
	d2 := DistanceMiles(b, a)
	if math.Abs(d1-d2) > 1e-9 {
		t.Errorf("distance is not symmetric: %f vs %f", d1, d2)
	}
}

func TestWithinBounds(t *testing.T) {
	ne := types.Coordinate{Latitude: 41.0, Longitude: -73.0}
	sw := types.Coordinate{Latitude: 40.0, Longitude: -74.0}

	tests := []struct {
		name string
		p    types.Coordinate
		want bool
	}{
		{"strictly inside", types.Coordinate{Latitude: 40.5, Longitude: -73.5}, true},
		{"on northeast corner", ne, true},
		{"on southwest corner", sw, true},
		{"latitude above", types.Coordinate{Latitude: 41.1, Longitude: -73.5}, false},
		{"latitude below", types.Coordinate{Latitude: 39.9, Longitude: -73.5}, false},
		{"longitude east", types.Coordinate{Latitude: 40.5, Longitude: -72.9}, false},
		{"longitude west", types.Coordinate{Latitude: 40.5, Longitude: -74.1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WithinBounds(tt.p, ne, sw); got != tt.want {
				t.Errorf("WithinBounds(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestCentroid(t *testing.T) {
	if got := Centroid(nil); got != (types.Coordinate{}) {
		t.Errorf("Centroid(nil) = %v, want zero coordinate", got)
	}

	single := types.Coordinate{Latitude: 40.7128, Longitude: -74.0060}
	if got := Centroid([]types.Coordinate{single}); got != single {
		t.Errorf("Centroid([p]) = %v, want %v", got, single)
	}

	got := Centroid([]types.Coordinate{
		{Latitude: 40, Longitude: -74},
		{Latitude: 41, Longitude: -73},
		{Latitude: 40.5, Longitude: -73.5},
	})
	if math.Abs(got.Latitude-40.5) > 1e-9 || math.Abs(got.Longitude-(-73.5)) > 1e-9 {
		t.Errorf("Centroid() = %v, want {40.5 -73.5}", got)
	}
}

func TestRegionForZoom(t *testing.T) {
	center := types.Coordinate{Latitude: 40.7128, Longitude: -74.0060}

	r := RegionForZoom(center, 15)
	want := math.Pow(2, 5) * 0.009 // 0.288
	if math.Abs(r.LatitudeSpan-want) > 1e-9 || math.Abs(r.LongitudeSpan-want) > 1e-9 {
		t.Errorf("RegionForZoom(15) span = %f, want %f", r.LatitudeSpan, want)
	}
	if r.Center != center {
		t.Errorf("RegionForZoom center = %v, want %v", r.Center, center)
	}

	// No clamping: absurd zoom levels still compute.
	extreme := RegionForZoom(center, -4)
	if extreme.LatitudeSpan <= math.Pow(2, 20)*0.009 {
		t.Errorf("RegionForZoom(-4) span = %f, expected an extreme span", extreme.LatitudeSpan)
	}
}

func TestSortByDistance(t *testing.T) {
	type station struct {
		id   string
		dist float64
	}
	stations := []station{
		{"c", 5.0},
		{"a", 1.0},
		{"b", 3.0},
	}
	SortByDistance(stations, func(s station) float64 { return s.dist })
	if stations[0].id != "a" || stations[1].id != "b" || stations[2].id != "c" {
		t.Errorf("unexpected sort order: %v", stations)
	}

	var empty []station
	SortByDistance(empty, func(s station) float64 { return s.dist })
}
