package engine

import (
	"github.com/voltwise/stationmatch/core/model"
)

// weights is one row of the intent weight table. Each row sums to 1.0 so raw
// scores stay in [0,1].
type weights struct {
	Distance  float64
	Price     float64
	Power     float64
	Wait      float64
	Connector float64
}

// intentWeights maps every supported intent to its weight row. Adding an
// intent means adding a row here; there is deliberately no default branch, so
// an unknown intent surfaces as an error at the boundary instead of being
// scored like "balanced".
var intentWeights = map[model.Intent]weights{
	model.IntentBalanced:    {Distance: 0.30, Price: 0.20, Power: 0.20, Wait: 0.20, Connector: 0.10},
	model.IntentFastest:     {Distance: 0.15, Price: 0.05, Power: 0.55, Wait: 0.15, Connector: 0.10},
	model.IntentCheapest:    {Distance: 0.15, Price: 0.55, Power: 0.10, Wait: 0.10, Connector: 0.10},
	model.IntentLeastDetour: {Distance: 0.60, Price: 0.10, Power: 0.10, Wait: 0.10, Connector: 0.10},
	model.IntentLeastWait:   {Distance: 0.15, Price: 0.10, Power: 0.10, Wait: 0.55, Connector: 0.10},
}

// scoringContext carries the per-query ceilings sub-scores are normalized
// against. Ceilings adapt to the candidate set so a query in a dense urban
// area and one in the countryside both spread across the full score range.
type scoringContext struct {
	MaxRadiusKm  float64
	PriceCeiling float64
	PowerCeiling float64
}

// subscores holds the normalized per-criterion scores in [0,1].
type subscores struct {
	Distance  float64
	Price     float64
	Power     float64
	Wait      float64
	Connector float64
}

// connectorMismatchScore is deliberately above zero: adapters exist, so a
// facility without the preferred plug is penalized, not excluded.
const connectorMismatchScore = 0.3

func computeSubscores(v model.VehicleProfile, f model.Facility, distanceKm float64, forecast model.OccupancyForecast, ctx scoringContext) subscores {
	var s subscores

	s.Distance = 1.0
	if ctx.MaxRadiusKm > 0 {
		s.Distance = 1 - clamp01(distanceKm/ctx.MaxRadiusKm)
	}

	s.Price = 1.0
	if ctx.PriceCeiling > 0 {
		s.Price = 1 - clamp01(f.MinPricePerKWh()/ctx.PriceCeiling)
	}

	if ctx.PowerCeiling > 0 {
		s.Power = clamp01(f.MaxPowerKW() / ctx.PowerCeiling)
	}

	switch forecast.Level {
	case model.OccupancyLow:
		s.Wait = 1.0
	case model.OccupancyMedium:
		s.Wait = 0.5
	}
	if f.AvailableChargerCount() == 0 {
		// No free charger means waiting regardless of the forecast; this also
		// ranks such facilities below otherwise-equal candidates under every
		// intent, since no wait weight is zero.
		s.Wait = 0
	}

	s.Connector = connectorMismatchScore
	if f.HasConnector(v.PreferredConnector) {
		s.Connector = 1.0
	}
	return s
}

// score computes the weighted raw score in [0,1] for one candidate.
func score(v model.VehicleProfile, f model.Facility, distanceKm float64, forecast model.OccupancyForecast, intent model.Intent, ctx scoringContext) (float64, subscores, error) {
	w, ok := intentWeights[intent]
	if !ok {
		return 0, subscores{}, &model.UnsupportedIntentError{Intent: string(intent)}
	}
	s := computeSubscores(v, f, distanceKm, forecast, ctx)
	raw := w.Distance*s.Distance + w.Price*s.Price + w.Power*s.Power + w.Wait*s.Wait + w.Connector*s.Connector
	return raw, s, nil
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
