// Package geo provides great-circle distance and coordinate validation.
package geo

import (
	"math"

	"github.com/paulmach/orb"
)

// EarthRadiusKm is the mean Earth radius used for haversine distances.
const EarthRadiusKm = 6371.0

// validBound is the full WGS 84 range of valid coordinates.
var validBound = orb.Bound{Min: orb.Point{-180, -90}, Max: orb.Point{180, 90}}

// Distance returns the great-circle distance between two points in kilometers.
// Points are orb.Points ([lon, lat] in degrees). NaN inputs yield NaN.
func Distance(from, to orb.Point) float64 {
	lat1 := degreesToRadians(from.Lat())
	lat2 := degreesToRadians(to.Lat())
	deltaLat := lat2 - lat1
	deltaLng := degreesToRadians(to.Lon()) - degreesToRadians(from.Lon())

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// IsValid reports whether a point lies within valid geographic bounds.
func IsValid(p orb.Point) bool {
	if math.IsNaN(p.Lat()) || math.IsNaN(p.Lon()) {
		return false
	}

	return validBound.Contains(p)
}

func degreesToRadians(d float64) float64 {
	return d * math.Pi / 180
}
