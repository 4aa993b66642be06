package model

// OccupancyLevel is a coarse forecast of how busy a facility is likely to be.
type OccupancyLevel int

const (
	OccupancyLow OccupancyLevel = iota
	OccupancyMedium
	OccupancyHigh
)

func (l OccupancyLevel) String() string {
	switch l {
	case OccupancyLow:
		return "low"
	case OccupancyMedium:
		return "medium"
	case OccupancyHigh:
		return "high"
	}
	return "unknown"
}

// MarshalText renders the level as its lowercase name for JSON payloads.
func (l OccupancyLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// OccupancyForecast is the predictor output for one facility snapshot.
// ConfidenceBasis records which signals fired so the forecast can be
// displayed and debugged.
type OccupancyForecast struct {
	FacilityID      string         `json:"facility_id"`
	Level           OccupancyLevel `json:"level"`
	ConfidenceBasis []string       `json:"confidence_basis"`
}

// Recommendation is one ranked entry of a recommendation response.
// MatchPercent is relative to the current candidate set only, not an absolute
// quality measure. RawScore stays internal to debugging surfaces.
type Recommendation struct {
	Facility     Facility          `json:"facility"`
	DistanceKm   float64           `json:"distance_km"`
	MatchPercent int               `json:"match_percent"`
	Reasons      []string          `json:"reasons"`
	Occupancy    OccupancyForecast `json:"occupancy"`
	RawScore     float64           `json:"-"`
}
