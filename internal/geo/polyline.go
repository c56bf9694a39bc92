package geo

import (
	"errors"
	"math"
	"strings"

	"fuelflow/internal/types"
)

// ErrMalformedPolyline is returned when an encoded polyline ends in the
// middle of a varint group.
var ErrMalformedPolyline = errors.New("malformed polyline")

// polylineScale is the fixed-point scale of the standard encoding:
// coordinates are rounded to five decimal places.
const polylineScale = 1e5

// DecodePolyline decodes the standard encoded-polyline format (5-bit
// groups offset by 63, continuation bit 0x20, zig-zag sign encoding,
// 1e5 scale) into an ordered coordinate path. Decoding is a single pass;
// a string that ends mid-varint is rejected rather than truncated.
func DecodePolyline(encoded string) ([]types.Coordinate, error) {
	var path []types.Coordinate
	var lat, lng int64

	for i := 0; i < len(encoded); {
		dLat, next, err := decodeSigned(encoded, i)
		if err != nil {
			return nil, err
		}
		lat += dLat

		dLng, next, err := decodeSigned(encoded, next)
		if err != nil {
			return nil, err
		}
		lng += dLng

		path = append(path, types.Coordinate{
			Latitude:  float64(lat) / polylineScale,
			Longitude: float64(lng) / polylineScale,
		})
		i = next
	}
	return path, nil
}

// decodeSigned reads one zig-zag varint starting at offset i and returns
// the value and the offset just past it.
func decodeSigned(encoded string, i int) (int64, int, error) {
	var result int64
	var shift uint
	for {
		if i >= len(encoded) {
			return 0, i, ErrMalformedPolyline
		}
		b := int64(encoded[i]) - 63
		if b < 0 {
			return 0, i, ErrMalformedPolyline
		}
		i++
		result |= (b & 0x1f) << shift
		shift += 5
		if b < 0x20 {
			break
		}
	}
	if result&1 != 0 {
		return ^(result >> 1), i, nil
	}
	return result >> 1, i, nil
}

// EncodePolyline is the inverse of DecodePolyline. Coordinates are
// rounded to five decimal places, so Decode(Encode(points)) == points
// for already-rounded input.
func EncodePolyline(points []types.Coordinate) string {
	var sb strings.Builder
	var prevLat, prevLng int64
	for _, p := range points {
		lat := int64(math.Round(p.Latitude * polylineScale))
		lng := int64(math.Round(p.Longitude * polylineScale))
		encodeSigned(&sb, lat-prevLat)
		encodeSigned(&sb, lng-prevLng)
		prevLat, prevLng = lat, lng
	}
	return sb.String()
}

func encodeSigned(sb *strings.Builder, v int64) {
	u := v << 1
	if v < 0 {
		u = ^u
	}
	for u >= 0x20 {
		sb.WriteByte(byte(0x20|(u&0x1f)) + 63)
		u >>= 5
	}
	sb.WriteByte(byte(u) + 63)
}
