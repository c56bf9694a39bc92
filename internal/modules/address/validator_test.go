package address

import (
	"errors"
	"testing"

	"fuelflow/internal/types"
)

var serviceCenter = types.Coordinate{Latitude: 40.7128, Longitude: -74.0060}

func TestValidateCoordinates(t *testing.T) {
	tests := []struct {
		name    string
		c       types.Coordinate
		wantErr bool
	}{
		{"valid", types.Coordinate{Latitude: 40.7128, Longitude: -74.0060}, false},
		{"latitude boundary north", types.Coordinate{Latitude: 90, Longitude: 0}, false},
		{"latitude boundary south", types.Coordinate{Latitude: -90, Longitude: 0}, false},
		{"longitude boundary east", types.Coordinate{Latitude: 0, Longitude: 180}, false},
		{"longitude boundary west", types.Coordinate{Latitude: 0, Longitude: -180}, false},
		{"latitude too large", types.Coordinate{Latitude: 90.0001, Longitude: 0}, true},
		{"latitude too small", types.Coordinate{Latitude: -90.0001, Longitude: 0}, true},
		{"longitude too large", types.Coordinate{Latitude: 0, Longitude: 180.0001}, true},
		{"longitude too small", types.Coordinate{Latitude: 0, Longitude: -180.0001}, true},
		{"both out of range", types.Coordinate{Latitude: 999, Longitude: 999}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCoordinates(tt.c)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCoordinates(%v) error = %v, wantErr %v", tt.c, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidCoordinates) {
				t.Errorf("error = %v, want ErrInvalidCoordinates", err)
			}
		})
	}
}

func TestValidateServiceArea(t *testing.T) {
	v := NewValidator(serviceCenter, DefaultMaxRadiusMiles)

	// Garbage coordinates report invalid coordinates, not outside area.
	err := v.ValidateServiceArea(types.Coordinate{Latitude: 999, Longitude: 999})
	if !errors.Is(err, ErrInvalidCoordinates) {
		t.Errorf("validateServiceArea({999,999}) = %v, want ErrInvalidCoordinates", err)
	}

	// Los Angeles is valid but ~2450 miles out.
	err = v.ValidateServiceArea(types.Coordinate{Latitude: 34.0522, Longitude: -118.2437})
	if !errors.Is(err, ErrOutsideServiceArea) {
		t.Errorf("validateServiceArea(LA) = %v, want ErrOutsideServiceArea", err)
	}

	// Times Square is well inside the radius.
	if err := v.ValidateServiceArea(types.Coordinate{Latitude: 40.7589, Longitude: -73.9851}); err != nil {
		t.Errorf("validateServiceArea(Times Square) = %v, want nil", err)
	}
}

func TestNewValidator_DefaultRadius(t *testing.T) {
	v := NewValidator(serviceCenter, 0)
	if v.maxRadiusMiles != DefaultMaxRadiusMiles {
		t.Errorf("maxRadiusMiles = %f, want %f", v.maxRadiusMiles, DefaultMaxRadiusMiles)
	}
}
