// Package geo provides great-circle distance math for facility ranking.
package geo

import (
	"math"

	"github.com/voltwise/stationmatch/core/model"
)

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371.0

// Distance returns the great-circle distance in kilometers between two
// coordinates using the haversine formula. Inputs must already be validated;
// use DistanceChecked at trust boundaries.
func Distance(a, b model.Coordinate) float64 {
	dLat := radians(b.Latitude - a.Latitude)
	dLon := radians(b.Longitude - a.Longitude)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(a.Latitude))*math.Cos(radians(b.Latitude))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// DistanceChecked validates both coordinates before computing the distance.
func DistanceChecked(a, b model.Coordinate) (float64, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}
	if err := b.Validate(); err != nil {
		return 0, err
	}
	return Distance(a, b), nil
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
