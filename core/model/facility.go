package model

import "fmt"

// ConnectorType identifies a charging plug standard.
type ConnectorType string

const (
	ConnectorCCS2    ConnectorType = "CCS2"
	ConnectorType2   ConnectorType = "Type2"
	ConnectorCHAdeMO ConnectorType = "CHAdeMO"
	ConnectorGBT     ConnectorType = "GBT"
)

// ChargerStatus is the operational state reported for a single charger.
type ChargerStatus string

const (
	ChargerAvailable    ChargerStatus = "available"
	ChargerOccupied     ChargerStatus = "occupied"
	ChargerOutOfService ChargerStatus = "out_of_service"
)

// Coordinate is a WGS84 position in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate checks that the coordinate lies within valid WGS84 bounds.
func (c Coordinate) Validate() error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return &ValidationError{Field: "latitude", Reason: fmt.Sprintf("%.6f outside [-90,90]", c.Latitude)}
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return &ValidationError{Field: "longitude", Reason: fmt.Sprintf("%.6f outside [-180,180]", c.Longitude)}
	}
	return nil
}

// ChargerState is the reported state of one charger at a facility.
type ChargerState struct {
	ID          string        `json:"id"`
	Connector   ConnectorType `json:"connector"`
	PowerKW     float64       `json:"power_kw"`
	PricePerKWh float64       `json:"price_per_kwh"`
	Status      ChargerStatus `json:"status"`
}

// Facility is a snapshot of a charging site and its chargers. The engine never
// mutates a facility; callers supply a fresh snapshot per request.
type Facility struct {
	ID         string         `json:"id"`
	Name       string         `json:"name,omitempty"`
	Coordinate Coordinate     `json:"coordinate"`
	Chargers   []ChargerState `json:"chargers"`
	// OpeningHours is a display string such as "06:00-23:00" or "24/7".
	OpeningHours string `json:"opening_hours,omitempty"`
	// DistanceFromUserKm is the caller-annotated road or crow-fly distance.
	// Zero means "unknown, derive from coordinates"; a negative value marks
	// the distance as unresolvable and the facility is treated as unreachable.
	DistanceFromUserKm float64 `json:"distance_from_user_km,omitempty"`
}

// MaxPowerKW returns the highest rated power among the facility's chargers.
func (f Facility) MaxPowerKW() float64 {
	max := 0.0
	for _, c := range f.Chargers {
		if c.PowerKW > max {
			max = c.PowerKW
		}
	}
	return max
}

// MinPricePerKWh returns the lowest price among available chargers, falling
// back to the lowest price overall when none is available. Zero chargers yield 0.
func (f Facility) MinPricePerKWh() float64 {
	min, found := 0.0, false
	for _, c := range f.Chargers {
		if c.Status != ChargerAvailable {
			continue
		}
		if !found || c.PricePerKWh < min {
			min, found = c.PricePerKWh, true
		}
	}
	if found {
		return min
	}
	for _, c := range f.Chargers {
		if !found || c.PricePerKWh < min {
			min, found = c.PricePerKWh, true
		}
	}
	return min
}

// AvailableChargerCount returns the number of chargers reported available.
func (f Facility) AvailableChargerCount() int {
	n := 0
	for _, c := range f.Chargers {
		if c.Status == ChargerAvailable {
			n++
		}
	}
	return n
}

// HasConnector reports whether any charger at the facility offers the plug type.
func (f Facility) HasConnector(t ConnectorType) bool {
	for _, c := range f.Chargers {
		if c.Connector == t {
			return true
		}
	}
	return false
}

// Validate checks that the facility snapshot is well formed.
func (f Facility) Validate() error {
	if f.ID == "" {
		return &ValidationError{Field: "facility.id", Reason: "must not be empty"}
	}
	if err := f.Coordinate.Validate(); err != nil {
		return err
	}
	for _, c := range f.Chargers {
		if c.PowerKW <= 0 {
			return &ValidationError{Field: "charger.power_kw", Reason: fmt.Sprintf("charger %s: must be positive", c.ID)}
		}
		if c.PricePerKWh < 0 {
			return &ValidationError{Field: "charger.price_per_kwh", Reason: fmt.Sprintf("charger %s: must not be negative", c.ID)}
		}
	}
	return nil
}
