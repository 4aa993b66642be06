package engine

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/voltwise/stationmatch/core/model"
)

func TestWeightRowsSumToOne(t *testing.T) {
	for intent, w := range intentWeights {
		sum := w.Distance + w.Price + w.Power + w.Wait + w.Connector
		if math.Abs(sum-1.0) > 1e-9 {
			t.Errorf("weights for %s sum to %v, want 1.0", intent, sum)
		}
	}
}

func TestEveryIntentHasWeights(t *testing.T) {
	for _, intent := range model.Intents() {
		if _, ok := intentWeights[intent]; !ok {
			t.Errorf("intent %s has no weight row", intent)
		}
	}
}

func TestScoreStaysInUnitInterval(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	v := model.VehicleProfile{BatteryCapacityKWh: 80, StateOfChargePercent: 90, ConsumptionKWhPer100: 18, PreferredConnector: model.ConnectorCCS2}
	forecasts := []model.OccupancyLevel{model.OccupancyLow, model.OccupancyMedium, model.OccupancyHigh}
	connectors := []model.ConnectorType{model.ConnectorCCS2, model.ConnectorType2, model.ConnectorCHAdeMO}
	statuses := []model.ChargerStatus{model.ChargerAvailable, model.ChargerOccupied, model.ChargerOutOfService}

	ctx := scoringContext{MaxRadiusKm: 50, PriceCeiling: 5000, PowerCeiling: 350}
	for i := 0; i < 500; i++ {
		f := model.Facility{ID: "st"}
		for n := rng.Intn(4); n >= 0; n-- {
			f.Chargers = append(f.Chargers, model.ChargerState{
				ID:          "c",
				Connector:   connectors[rng.Intn(len(connectors))],
				PowerKW:     1 + rng.Float64()*400,
				PricePerKWh: rng.Float64() * 6000,
				Status:      statuses[rng.Intn(len(statuses))],
			})
		}
		forecast := model.OccupancyForecast{Level: forecasts[rng.Intn(len(forecasts))]}
		dist := rng.Float64() * 70
		for _, intent := range model.Intents() {
			raw, _, err := score(v, f, dist, forecast, intent, ctx)
			if err != nil {
				t.Fatalf("score error: %v", err)
			}
			if raw < 0 || raw > 1 {
				t.Fatalf("raw score %v outside [0,1] for intent %s", raw, intent)
			}
		}
	}
}

func TestScoreRejectsUnknownIntent(t *testing.T) {
	v := model.VehicleProfile{BatteryCapacityKWh: 60, StateOfChargePercent: 50, ConsumptionKWhPer100: 15}
	_, _, err := score(v, model.Facility{ID: "x"}, 10, model.OccupancyForecast{}, model.Intent("turbo"), scoringContext{})
	if err == nil {
		t.Fatalf("unknown intent must error, not fall back to balanced")
	}
	var uie *model.UnsupportedIntentError
	if !errors.As(err, &uie) {
		t.Errorf("error should be *UnsupportedIntentError, got %T", err)
	}
}

func TestConnectorMismatchKeepsPartialCredit(t *testing.T) {
	v := model.VehicleProfile{BatteryCapacityKWh: 60, StateOfChargePercent: 50, ConsumptionKWhPer100: 15, PreferredConnector: model.ConnectorCCS2}
	ctx := scoringContext{MaxRadiusKm: 10, PriceCeiling: 100, PowerCeiling: 100}

	matched := model.Facility{ID: "m", Chargers: []model.ChargerState{{ID: "c", Connector: model.ConnectorCCS2, PowerKW: 100, PricePerKWh: 100, Status: model.ChargerAvailable}}}
	mismatched := model.Facility{ID: "n", Chargers: []model.ChargerState{{ID: "c", Connector: model.ConnectorType2, PowerKW: 100, PricePerKWh: 100, Status: model.ChargerAvailable}}}

	sm := computeSubscores(v, matched, 5, model.OccupancyForecast{Level: model.OccupancyLow}, ctx)
	sn := computeSubscores(v, mismatched, 5, model.OccupancyForecast{Level: model.OccupancyLow}, ctx)
	if sm.Connector != 1.0 {
		t.Errorf("matched connector score = %v, want 1.0", sm.Connector)
	}
	// Adapters exist, so a mismatch is penalized but never zeroed out.
	if sn.Connector != connectorMismatchScore {
		t.Errorf("mismatched connector score = %v, want %v", sn.Connector, connectorMismatchScore)
	}
}

func TestWaitScoreZeroWhenNoChargerFree(t *testing.T) {
	v := model.VehicleProfile{BatteryCapacityKWh: 60, StateOfChargePercent: 50, ConsumptionKWhPer100: 15}
	ctx := scoringContext{MaxRadiusKm: 10, PriceCeiling: 100, PowerCeiling: 100}
	full := model.Facility{ID: "f", Chargers: []model.ChargerState{{ID: "c", PowerKW: 100, PricePerKWh: 50, Status: model.ChargerOccupied}}}

	// Even a low forecast cannot mask that nothing is free right now.
	s := computeSubscores(v, full, 5, model.OccupancyForecast{Level: model.OccupancyLow}, ctx)
	if s.Wait != 0 {
		t.Errorf("wait score = %v, want 0 when no charger is free", s.Wait)
	}
}

func TestWaitScoreLevels(t *testing.T) {
	v := model.VehicleProfile{BatteryCapacityKWh: 60, StateOfChargePercent: 50, ConsumptionKWhPer100: 15}
	ctx := scoringContext{MaxRadiusKm: 10, PriceCeiling: 100, PowerCeiling: 100}
	free := model.Facility{ID: "f", Chargers: []model.ChargerState{{ID: "c", PowerKW: 100, PricePerKWh: 50, Status: model.ChargerAvailable}}}

	want := map[model.OccupancyLevel]float64{
		model.OccupancyLow:    1.0,
		model.OccupancyMedium: 0.5,
		model.OccupancyHigh:   0.0,
	}
	for lvl, expect := range want {
		s := computeSubscores(v, free, 5, model.OccupancyForecast{Level: lvl}, ctx)
		if s.Wait != expect {
			t.Errorf("wait score for %s = %v, want %v", lvl, s.Wait, expect)
		}
	}
}
