package constraints

import (
	"fmt"
	"math"
)

// EV describes the charging requirement merged into the bound tables before
// allocation.
type EV struct {
	TotalEnergyKWh float64 `yaml:"total_energy_kwh" json:"total_energy_kwh"`
	ChargingHours  []int   `yaml:"charging_hours" json:"charging_hours"`
	PowerLimitKW   float64 `yaml:"power_limit_kw" json:"power_limit_kw"`
}

// EVError reports that the requested EV energy does not fit inside the
// merged maximum bounds over the charging window.
type EVError struct {
	RequiredKWh  float64
	AvailableKWh float64
}

func (e *EVError) Error() string {
	return fmt.Sprintf("ev energy %.2f kWh exceeds available maximum %.2f kWh over charging hours",
		e.RequiredKWh, e.AvailableKWh)
}

// WithEV returns a copy of the bounds with the EV requirement merged in:
// each charging hour's minimum is raised by the per-hour share of the total
// EV energy and its maximum by the charging power limit, both capped at
// capKW. Returns *EVError when the merged maxima cannot fit the requirement.
func (b Bounds) WithEV(ev EV, capKW float64) (Bounds, error) {
	if ev.TotalEnergyKWh <= 0 || len(ev.ChargingHours) == 0 {
		return b, nil
	}
	for _, h := range ev.ChargingHours {
		if h < 0 || h > 23 {
			return Bounds{}, fmt.Errorf("ev charging hour out of range: %d", h)
		}
	}

	perHour := ev.TotalEnergyKWh / float64(len(ev.ChargingHours))
	for _, h := range ev.ChargingHours {
		b.Min[h] = math.Min(b.Min[h]+perHour, capKW)
		b.Max[h] = math.Min(b.Max[h]+ev.PowerLimitKW, capKW)
	}

	var available float64
	for _, h := range ev.ChargingHours {
		available += b.Max[h]
	}
	if ev.TotalEnergyKWh > available {
		return Bounds{}, &EVError{RequiredKWh: ev.TotalEnergyKWh, AvailableKWh: available}
	}
	return b, nil
}
