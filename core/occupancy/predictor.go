package occupancy

import (
	"fmt"
	"time"

	"github.com/voltwise/stationmatch/core/model"
)

// Predictor forecasts the occupancy level of a facility at a point in time.
// Implementations must be deterministic: identical snapshot and timestamp
// yield an identical forecast.
type Predictor interface {
	Predict(f model.Facility, now time.Time) model.OccupancyForecast
}

// HeuristicPredictor derives a forecast from hour-of-day traffic buckets
// adjusted by the live charger availability ratio. It is a stand-in until a
// model trained on real session data replaces it behind the same interface.
type HeuristicPredictor struct{}

// NewHeuristicPredictor returns the default time-and-availability predictor.
func NewHeuristicPredictor() HeuristicPredictor { return HeuristicPredictor{} }

// Predict never fails: a facility with no chargers yields a low forecast with
// the basis noting the missing capacity data.
func (HeuristicPredictor) Predict(f model.Facility, now time.Time) model.OccupancyForecast {
	total := len(f.Chargers)
	if total == 0 {
		return model.OccupancyForecast{
			FacilityID:      f.ID,
			Level:           model.OccupancyLow,
			ConfidenceBasis: []string{"no capacity data"},
		}
	}

	level, bucket := timeBaseline(now)
	basis := []string{bucket}

	ratio := float64(f.AvailableChargerCount()) / float64(total)
	switch {
	case ratio >= 0.5:
		if level > model.OccupancyLow {
			level--
		}
		basis = append(basis, fmt.Sprintf("%.0f%% of chargers free", ratio*100))
	case ratio == 0:
		if level < model.OccupancyHigh {
			level++
		}
		basis = append(basis, "all chargers taken")
	default:
		basis = append(basis, fmt.Sprintf("%.0f%% of chargers free", ratio*100))
	}

	return model.OccupancyForecast{FacilityID: f.ID, Level: level, ConfidenceBasis: basis}
}

// timeBaseline maps the local hour and weekday onto a busyness baseline.
// Commute peaks drive weekday traffic; weekend traffic shifts later into
// midday and evening.
func timeBaseline(now time.Time) (model.OccupancyLevel, string) {
	h := now.Hour()
	if h >= 23 || h <= 5 {
		return model.OccupancyLow, "night off-peak"
	}
	wd := now.Weekday()
	if wd == time.Saturday || wd == time.Sunday {
		if (h >= 10 && h <= 13) || (h >= 18 && h <= 21) {
			return model.OccupancyHigh, "weekend peak hours"
		}
		return model.OccupancyMedium, "weekend daytime"
	}
	if (h >= 7 && h <= 9) || (h >= 17 && h <= 20) {
		return model.OccupancyHigh, "weekday commute peak"
	}
	return model.OccupancyMedium, "weekday daytime"
}
