package tariff

import "sort"

// Slot is one of the three standard Italian time-of-use bands.
type Slot int

const (
	// F1 covers weekday working hours, F2 shoulders, F3 nights and Sundays.
	F1 Slot = 1
	F2 Slot = 2
	F3 Slot = 3
)

// Slots lists all bands in ascending id order.
var Slots = []Slot{F1, F2, F3}

// Rates holds the contracted price per band in EUR/kWh.
type Rates map[Slot]float64

var periodRates = map[string]Rates{
	"warm": {
		F1: 0.106118333,
		F2: 0.12321,
		F3: 0.099136667,
	},
	"cold": {
		F1: 0.121395,
		F2: 0.117425,
		F3: 0.097566667,
	},
}

// ByPeriod returns the band rates for a planning period ("warm" or "cold").
func ByPeriod(period string) (Rates, bool) {
	r, ok := periodRates[period]
	return r, ok
}

// SlotFor maps an hour of day [0, 24) and weekday (0=Monday .. 6=Sunday) to
// its time-of-use band.
func SlotFor(hour, weekday int) Slot {
	if weekday <= 4 && hour >= 7 && hour < 19 {
		return F1
	}
	if weekday <= 5 && hour >= 6 && hour < 23 {
		return F2
	}
	return F3
}

// Ranks orders the bands by descending price and returns each band's
// position: 0 for the most expensive band, 2 for the cheapest. Equal rates
// rank by ascending band id.
func (r Rates) Ranks() map[Slot]int {
	ordered := make([]Slot, len(Slots))
	copy(ordered, Slots)
	sort.SliceStable(ordered, func(i, j int) bool {
		return r[ordered[i]] > r[ordered[j]]
	})

	ranks := make(map[Slot]int, len(ordered))
	for i, s := range ordered {
		ranks[s] = i
	}
	return ranks
}
