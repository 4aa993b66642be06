package engine

import (
	"github.com/voltwise/stationmatch/core/geo"
	"github.com/voltwise/stationmatch/core/model"
)

// isReachable reports whether the vehicle can cover the distance with its
// remaining energy plus the safety margin. A negative distance means the
// caller could not resolve one; that fails closed, since recommending an
// unreachable facility is a correctness bug rather than a ranking nuance.
func isReachable(v model.VehicleProfile, distanceKm, safetyMarginPercent float64) bool {
	if distanceKm < 0 {
		return false
	}
	required := distanceKm * v.ConsumptionKWhPer100 / 100 * (1 + safetyMarginPercent/100)
	return v.AvailableEnergyKWh() >= required
}

// resolveDistance picks the caller-annotated distance when present, derives
// one from coordinates when the annotation is zero, and reports false for a
// negative annotation.
func resolveDistance(user model.Coordinate, f model.Facility) (float64, bool) {
	switch {
	case f.DistanceFromUserKm > 0:
		return f.DistanceFromUserKm, true
	case f.DistanceFromUserKm < 0:
		return 0, false
	}
	return geo.Distance(user, f.Coordinate), true
}
