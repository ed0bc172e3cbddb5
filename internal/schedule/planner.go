package schedule

import (
	"errors"
	"fmt"
	"math"

	"energy_scheduler/internal/constraints"
	"energy_scheduler/internal/solar"
	"energy_scheduler/internal/tariff"
)

// Schedule is the planned energy consumption per hour in kWh.
type Schedule [24]float64

// Total returns the energy scheduled over the whole day.
func (s Schedule) Total() float64 {
	var sum float64
	for _, v := range s {
		sum += v
	}
	return sum
}

// InfeasibleError reports that the bound tables cannot satisfy the requested
// allocation. It is fatal to the scenario: clamping silently would hide an
// unsatisfiable request.
type InfeasibleError struct {
	Reason string
}

func (e *InfeasibleError) Error() string {
	return "infeasible constraints: " + e.Reason
}

// ErrNoConvergence is returned if the refinement loop exhausts its pass
// budget with energy still unassigned. Unreachable when the feasibility
// preconditions hold; it guards the loop against malformed state.
var ErrNoConvergence = errors.New("allocation did not converge within pass budget")

const (
	// defaultTolerance is the residual energy below which the allocation
	// is considered complete.
	defaultTolerance = 1e-4
	// maxRefinePasses bounds the iterative refinement loop.
	maxRefinePasses = 1000
	// defaultPriceRankWeight scales the price-band rank against the
	// normalized PV and hour factors inside the goodness score.
	defaultPriceRankWeight = 0.5
)

// Planner allocates a daily energy budget across hours for one planning
// period. The lookup tables are fixed at construction; Plan is a pure
// function of its arguments.
type Planner struct {
	pvFactors [24]float64
	slotRank  map[tariff.Slot]int

	// PriceRankWeight is a tunable constant, not a contract: the rank is
	// unit-less while the other goodness terms are normalized to [0, 1].
	PriceRankWeight float64
	// Tolerance is the residual-energy threshold ending refinement.
	Tolerance float64
}

// NewPlanner builds a planner from a period's generation profile and band
// rates.
func NewPlanner(profile solar.Profile, rates tariff.Rates) *Planner {
	return &Planner{
		pvFactors:       profile.Factors(),
		slotRank:        rates.Ranks(),
		PriceRankWeight: defaultPriceRankWeight,
		Tolerance:       defaultTolerance,
	}
}

// Plan distributes totalEnergy kWh across the day, honoring the per-hour
// bounds and the global cap. The schedule sums to totalEnergy within the
// tolerance and keeps every hour inside [Min[h], min(capKW, Max[h])].
func (p *Planner) Plan(weekday int, totalEnergy float64, b constraints.Bounds, hp Hyperparameters, capKW float64) (Schedule, error) {
	if weekday < 0 || weekday > 6 {
		return Schedule{}, fmt.Errorf("weekday out of range: %d", weekday)
	}
	if hp.Morning < 0 || hp.Afternoon < 0 || hp.Evening < 0 || hp.Night < 0 {
		return Schedule{}, fmt.Errorf("hyperparameters must be non-negative: %+v", hp)
	}
	if err := checkFeasible(totalEnergy, b, capKW); err != nil {
		return Schedule{}, err
	}

	hourFactors := BuildHourFactors(hp)
	var rankScore [24]float64
	for h := range rankScore {
		rankScore[h] = float64(p.slotRank[tariff.SlotFor(h, weekday)])
	}

	// Seed with the minimum bound at every hour.
	var cur Schedule
	remaining := totalEnergy
	for h := range cur {
		cur[h] = b.Min[h]
		remaining -= b.Min[h]
	}

	tol := p.Tolerance
	if tol <= 0 {
		tol = defaultTolerance
	}

	for pass := 0; remaining > tol; pass++ {
		if pass >= maxRefinePasses {
			return Schedule{}, ErrNoConvergence
		}

		scores, sum := p.goodness(cur, rankScore, hourFactors, capKW)
		if sum <= 0 {
			// Degenerate score shape: spread over hours with headroom.
			scores, sum = uniformScores(cur, b, capKW)
			if sum == 0 {
				return Schedule{}, ErrNoConvergence
			}
		}

		// Assignments are proportional to the residual at pass start;
		// the residual shrinks as capped hours absorb less than their
		// share.
		snapshot := remaining
		for h := range cur {
			assign := snapshot * scores[h] / sum
			headroom := math.Min(capKW, b.Max[h]) - cur[h]
			if headroom < 0 {
				headroom = 0
			}
			if assign > headroom {
				assign = headroom
			}
			cur[h] += assign
			remaining -= assign
		}
	}

	return cur, nil
}

// goodness scores each hour for the next refinement pass. The quadratic
// saturation term derates hours already loaded close to the cap so the
// distribution stays smooth instead of greedily filling favored hours.
func (p *Planner) goodness(cur Schedule, rankScore, hourFactors [24]float64, capKW float64) ([24]float64, float64) {
	var scores [24]float64
	var sum float64
	for h := range scores {
		load := cur[h] / capKW
		saturation := 1 - load*load
		scores[h] = saturation * (rankScore[h]*p.PriceRankWeight + p.pvFactors[h] + hourFactors[h])
		sum += scores[h]
	}
	return scores, sum
}

// uniformScores gives equal weight to every hour that still has headroom.
func uniformScores(cur Schedule, b constraints.Bounds, capKW float64) ([24]float64, float64) {
	var scores [24]float64
	var sum float64
	for h := range scores {
		if math.Min(capKW, b.Max[h])-cur[h] > 0 {
			scores[h] = 1
			sum++
		}
	}
	return scores, sum
}

func checkFeasible(totalEnergy float64, b constraints.Bounds, capKW float64) error {
	var minSum, maxSum float64
	for h := 0; h < 24; h++ {
		if b.Min[h] < 0 {
			return &InfeasibleError{Reason: fmt.Sprintf("negative minimum %.3f at hour %d", b.Min[h], h)}
		}
		if b.Max[h] > capKW {
			return &InfeasibleError{Reason: fmt.Sprintf("maximum %.3f at hour %d exceeds cap %.3f", b.Max[h], h, capKW)}
		}
		if b.Min[h] > b.Max[h] {
			return &InfeasibleError{Reason: fmt.Sprintf("minimum %.3f exceeds maximum %.3f at hour %d", b.Min[h], b.Max[h], h)}
		}
		minSum += b.Min[h]
		maxSum += b.Max[h]
	}
	if totalEnergy < minSum {
		return &InfeasibleError{Reason: fmt.Sprintf("total energy %.3f below minimum demand %.3f", totalEnergy, minSum)}
	}
	if totalEnergy > maxSum {
		return &InfeasibleError{Reason: fmt.Sprintf("total energy %.3f exceeds maximum capacity %.3f", totalEnergy, maxSum)}
	}
	return nil
}
