package simulator

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"energy_scheduler/internal/schedule"
	"energy_scheduler/internal/solar"
	"energy_scheduler/internal/tariff"
)

// Result holds the outcome of simulating one day under a schedule.
type Result struct {
	// TotalExpense is the simulated electricity cost in EUR.
	TotalExpense float64 `json:"total_expense"`
	// EnergySoldKWh is the total solar energy generated over the day.
	EnergySoldKWh float64 `json:"energy_sold_kwh"`
	// HourlyExpense breaks the cost down per hour.
	HourlyExpense [24]float64 `json:"hourly_expense"`
}

const (
	// selfConsumptionDiscount is the fraction of the market price paid
	// for consumption covered by unspent same-day solar generation.
	selfConsumptionDiscount = 0.05
	// relativeStdDev shapes the noise applied to generation and price
	// base values.
	relativeStdDev = 0.1
	// maxSampleDraws bounds the rejection loop. At sigma = 0.1*mu the
	// bounds sit 10 sigma from the mean, so the cap never fires on
	// well-formed values.
	maxSampleDraws = 100
)

// Simulator scores schedules against stochastic generation and price draws
// for one planning period. The lookup tables are fixed at construction and
// never mutated; every Run is a pure function of its arguments and seed.
type Simulator struct {
	profile solar.Profile
	rates   tariff.Rates
}

// New builds a simulator from a period's generation profile and band rates.
func New(profile solar.Profile, rates tariff.Rates) *Simulator {
	return &Simulator{profile: profile, rates: rates}
}

// Run simulates one day: it draws a noisy solar curve and noisy band prices
// from a generator seeded with seed, then walks the schedule hour by hour
// keeping a running balance of unspent solar credit. Consumption covered by
// the credit pays the discounted tariff, the remainder full price. A given
// seed yields a fully reproducible trajectory.
func (s *Simulator) Run(weekday int, sched schedule.Schedule, panelCount int, seed uint64) Result {
	src := rand.NewSource(seed)

	// Draw order is fixed: solar hours 0..23, then bands ascending.
	var generated [24]float64
	for h := 0; h < 24; h++ {
		generated[h] = float64(panelCount) * shift(s.profile[h], src)
	}
	prices := make(map[tariff.Slot]float64, len(tariff.Slots))
	for _, slot := range tariff.Slots {
		prices[slot] = shift(s.rates[slot], src)
	}

	var res Result
	var solarCredit float64
	for h := 0; h < 24; h++ {
		res.EnergySoldKWh += generated[h]
		solarCredit += generated[h]

		consumption := sched[h]
		discounted := math.Min(consumption, solarCredit)
		fullPrice := consumption - discounted
		solarCredit -= discounted

		price := prices[tariff.SlotFor(h, weekday)]
		expense := price*selfConsumptionDiscount*discounted + price*fullPrice
		res.HourlyExpense[h] = expense
		res.TotalExpense += expense
	}
	return res
}

// shift draws a bounded noisy sample around v: normal with sigma 0.1*v,
// rejected outside [0, 2v]. A non-positive base short-circuits to 0 and
// exhausting the draw budget clamps the last draw into the bounds.
func shift(v float64, src rand.Source) float64 {
	if v <= 0 {
		return 0
	}
	dist := distuv.Normal{Mu: v, Sigma: relativeStdDev * v, Src: src}
	upper := 2 * v

	var x float64
	for i := 0; i < maxSampleDraws; i++ {
		x = dist.Rand()
		if x >= 0 && x <= upper {
			return x
		}
	}
	return math.Min(math.Max(x, 0), upper)
}
