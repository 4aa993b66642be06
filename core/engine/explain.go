package engine

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/voltwise/stationmatch/core/model"
)

// maxReasons caps how many reasons accompany a recommendation.
const maxReasons = 3

// explain derives the human-readable reasons backing a candidate's rank. The
// reasons follow the weighted contribution of each sub-score under the active
// intent, so they answer "why did this intent rank it here" rather than
// describing the facility generically. Raw scores never leak into the text.
func explain(v model.VehicleProfile, f model.Facility, forecast model.OccupancyForecast, intent model.Intent, s subscores, distanceKm float64) []string {
	w := intentWeights[intent]
	type contribution struct {
		reason string
		weight float64
	}
	avail := f.AvailableChargerCount()

	powerReason := fmt.Sprintf("up to %.0f kW when a charger frees up", f.MaxPowerKW())
	if avail > 0 {
		powerReason = fmt.Sprintf("%.0f kW available now", f.MaxPowerKW())
	}
	priceReason := "free charging"
	if p := f.MinPricePerKWh(); p > 0 {
		priceReason = fmt.Sprintf("charging from %s per kWh", strconv.FormatFloat(p, 'f', -1, 64))
	}
	connectorReason := fmt.Sprintf("no %s plug, adapter may be needed", v.PreferredConnector)
	if f.HasConnector(v.PreferredConnector) {
		connectorReason = fmt.Sprintf("has your %s connector", v.PreferredConnector)
	}

	contributions := []contribution{
		{fmt.Sprintf("%.1f km away", distanceKm), w.Distance * s.Distance},
		{priceReason, w.Price * s.Price},
		{powerReason, w.Power * s.Power},
		{fmt.Sprintf("predicted %s wait", forecast.Level), w.Wait * s.Wait},
		{connectorReason, w.Connector * s.Connector},
	}
	sort.SliceStable(contributions, func(i, j int) bool {
		return contributions[i].weight > contributions[j].weight
	})

	reasons := make([]string, 0, maxReasons)
	for _, c := range contributions {
		if len(reasons) == maxReasons {
			break
		}
		reasons = append(reasons, c.reason)
	}
	return reasons
}
