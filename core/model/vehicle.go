package model

import "fmt"

// VehicleProfile describes the energy state of the vehicle a recommendation is
// computed for. Profiles are immutable per call and supplied fresh by the
// caller; the engine never stores them.
type VehicleProfile struct {
	BatteryCapacityKWh   float64       `json:"battery_capacity_kwh"`
	StateOfChargePercent float64       `json:"state_of_charge_percent"`
	ConsumptionKWhPer100 float64       `json:"consumption_kwh_per_100km"`
	PreferredConnector   ConnectorType `json:"preferred_connector"`
}

// AvailableEnergyKWh returns the usable energy left in the battery.
func (v VehicleProfile) AvailableEnergyKWh() float64 {
	return v.BatteryCapacityKWh * v.StateOfChargePercent / 100
}

// Validate checks that the profile fields are physically plausible.
func (v VehicleProfile) Validate() error {
	if v.BatteryCapacityKWh <= 0 {
		return &ValidationError{Field: "battery_capacity_kwh", Reason: "must be positive"}
	}
	if v.StateOfChargePercent < 0 || v.StateOfChargePercent > 100 {
		return &ValidationError{Field: "state_of_charge_percent", Reason: fmt.Sprintf("%.1f outside [0,100]", v.StateOfChargePercent)}
	}
	if v.ConsumptionKWhPer100 <= 0 {
		return &ValidationError{Field: "consumption_kwh_per_100km", Reason: "must be positive"}
	}
	return nil
}
