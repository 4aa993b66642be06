package occupancy

import (
	"reflect"
	"testing"
	"time"

	"github.com/voltwise/stationmatch/core/model"
)

// facilityWith builds a facility with total chargers, free of them available.
func facilityWith(total, free int) model.Facility {
	f := model.Facility{ID: "st-1"}
	for i := 0; i < total; i++ {
		status := model.ChargerOccupied
		if i < free {
			status = model.ChargerAvailable
		}
		f.Chargers = append(f.Chargers, model.ChargerState{ID: "c", PowerKW: 50, Status: status})
	}
	return f
}

var (
	wedMorning = time.Date(2025, 3, 5, 8, 0, 0, 0, time.UTC)  // Wednesday commute peak
	wedNoon    = time.Date(2025, 3, 5, 12, 0, 0, 0, time.UTC) // Wednesday daytime
	wedNight   = time.Date(2025, 3, 5, 23, 30, 0, 0, time.UTC)
	satMorning = time.Date(2025, 3, 8, 8, 0, 0, 0, time.UTC)  // Saturday, before weekend peak
	satMidday  = time.Date(2025, 3, 8, 11, 0, 0, 0, time.UTC) // Saturday weekend peak
)

func TestTimeBuckets(t *testing.T) {
	p := NewHeuristicPredictor()
	// One of four chargers free keeps the ratio below the step-down threshold,
	// so the time baseline shows through unmodified.
	f := facilityWith(4, 1)

	cases := []struct {
		name string
		now  time.Time
		want model.OccupancyLevel
	}{
		{"weekday commute peak", wedMorning, model.OccupancyHigh},
		{"weekday daytime", wedNoon, model.OccupancyMedium},
		{"night", wedNight, model.OccupancyLow},
		{"weekend morning shifted later", satMorning, model.OccupancyMedium},
		{"weekend midday peak", satMidday, model.OccupancyHigh},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := p.Predict(f, c.now)
			if got.Level != c.want {
				t.Errorf("level = %s, want %s (basis %v)", got.Level, c.want, got.ConfidenceBasis)
			}
		})
	}
}

func TestAvailabilityRatioAdjustment(t *testing.T) {
	p := NewHeuristicPredictor()

	// Half the chargers free steps the peak baseline down one level.
	if got := p.Predict(facilityWith(4, 2), wedMorning); got.Level != model.OccupancyMedium {
		t.Errorf("half free during peak: level = %s, want medium", got.Level)
	}
	// Plenty free at night stays at the floor.
	if got := p.Predict(facilityWith(4, 4), wedNight); got.Level != model.OccupancyLow {
		t.Errorf("free at night: level = %s, want low", got.Level)
	}
	// Everything taken steps the baseline up one level.
	if got := p.Predict(facilityWith(4, 0), wedNoon); got.Level != model.OccupancyHigh {
		t.Errorf("all taken at noon: level = %s, want high", got.Level)
	}
	// Everything taken during peak stays at the ceiling.
	if got := p.Predict(facilityWith(4, 0), wedMorning); got.Level != model.OccupancyHigh {
		t.Errorf("all taken during peak: level = %s, want high", got.Level)
	}
}

func TestNoCapacityData(t *testing.T) {
	p := NewHeuristicPredictor()
	got := p.Predict(model.Facility{ID: "st-empty"}, wedMorning)
	if got.Level != model.OccupancyLow {
		t.Errorf("level = %s, want low", got.Level)
	}
	if len(got.ConfidenceBasis) != 1 || got.ConfidenceBasis[0] != "no capacity data" {
		t.Errorf("basis = %v, want [no capacity data]", got.ConfidenceBasis)
	}
}

func TestPredictDeterministic(t *testing.T) {
	p := NewHeuristicPredictor()
	f := facilityWith(3, 1)
	first := p.Predict(f, satMidday)
	for i := 0; i < 50; i++ {
		if got := p.Predict(f, satMidday); !reflect.DeepEqual(got, first) {
			t.Fatalf("prediction changed between calls: %+v vs %+v", got, first)
		}
	}
}

func TestBasisRecordsSignals(t *testing.T) {
	p := NewHeuristicPredictor()
	got := p.Predict(facilityWith(2, 2), wedMorning)
	if len(got.ConfidenceBasis) != 2 {
		t.Fatalf("basis = %v, want time bucket plus occupancy signal", got.ConfidenceBasis)
	}
	if got.ConfidenceBasis[0] != "weekday commute peak" {
		t.Errorf("first signal = %q", got.ConfidenceBasis[0])
	}
}
