package schedule

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"energy_scheduler/internal/constraints"
	"energy_scheduler/internal/solar"
	"energy_scheduler/internal/tariff"
)

func warmPlanner(t *testing.T) *Planner {
	t.Helper()
	profile, ok := solar.ByPeriod("warm")
	require.True(t, ok)
	rates, ok := tariff.ByPeriod("warm")
	require.True(t, ok)
	return NewPlanner(profile, rates)
}

func uniformBounds(min, max float64) constraints.Bounds {
	var b constraints.Bounds
	for h := range b.Min {
		b.Min[h] = min
		b.Max[h] = max
	}
	return b
}

func TestPlan_SumAndBounds(t *testing.T) {
	p := warmPlanner(t)
	b := uniformBounds(0, 3)
	const total = 35.0

	sched, err := p.Plan(4, total, b, DefaultHyperparameters(), 6)
	require.NoError(t, err)

	assert.InDelta(t, total, sched.Total(), 1e-3)
	for h := 0; h < 24; h++ {
		assert.GreaterOrEqual(t, sched[h], b.Min[h], "hour %d", h)
		assert.LessOrEqual(t, sched[h], math.Min(6, b.Max[h])+1e-9, "hour %d", h)
	}
}

func TestPlan_Deterministic(t *testing.T) {
	p := warmPlanner(t)
	b := uniformBounds(0.2, 3)
	hp := Hyperparameters{Morning: 2, Afternoon: 0.5, Evening: 1, Night: 3}

	first, err := p.Plan(4, 30, b, hp, 6)
	require.NoError(t, err)
	second, err := p.Plan(4, 30, b, hp, 6)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPlan_MinimumsRespected(t *testing.T) {
	p := warmPlanner(t)
	b := uniformBounds(0, 3)
	b.Min[3] = 2.5 // force a heavy night minimum

	sched, err := p.Plan(4, 30, b, DefaultHyperparameters(), 6)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, sched[3], 2.5)
	assert.InDelta(t, 30, sched.Total(), 1e-3)
}

func TestPlan_SingleOpenHour(t *testing.T) {
	p := warmPlanner(t)
	b := uniformBounds(0, 0)
	b.Max[12] = 3

	sched, err := p.Plan(4, 3, b, DefaultHyperparameters(), 3)
	require.NoError(t, err)

	assert.InDelta(t, 3, sched[12], 1e-3)
	for h := 0; h < 24; h++ {
		if h == 12 {
			continue
		}
		assert.InDelta(t, 0, sched[h], 1e-9, "hour %d", h)
	}
}

func TestPlan_FullSaturation(t *testing.T) {
	p := warmPlanner(t)
	b := uniformBounds(0, 3)

	sched, err := p.Plan(4, 72, b, DefaultHyperparameters(), 3)
	require.NoError(t, err)

	for h := 0; h < 24; h++ {
		assert.InDelta(t, 3, sched[h], 1e-3, "hour %d", h)
	}
	assert.InDelta(t, 72, sched.Total(), 1e-3)
}

func TestPlan_WeightsBiasAllocation(t *testing.T) {
	p := warmPlanner(t)
	b := uniformBounds(0, 3)

	nightHeavy, err := p.Plan(4, 20, b, Hyperparameters{Morning: 0.1, Afternoon: 0.1, Evening: 0.1, Night: 10}, 6)
	require.NoError(t, err)
	morningHeavy, err := p.Plan(4, 20, b, Hyperparameters{Morning: 10, Afternoon: 0.1, Evening: 0.1, Night: 0.1}, 6)
	require.NoError(t, err)

	nightShare := nightHeavy[0] + nightHeavy[1] + nightHeavy[2] + nightHeavy[3]
	morningShare := morningHeavy[0] + morningHeavy[1] + morningHeavy[2] + morningHeavy[3]
	assert.Greater(t, nightShare, morningShare)
}

func TestPlan_InfeasibleInputs(t *testing.T) {
	p := warmPlanner(t)

	tests := []struct {
		name   string
		mutate func(*constraints.Bounds)
		total  float64
		cap    float64
	}{
		{"negative minimum", func(b *constraints.Bounds) { b.Min[5] = -1 }, 10, 6},
		{"maximum above cap", func(b *constraints.Bounds) { b.Max[5] = 7 }, 10, 6},
		{"minimum above maximum", func(b *constraints.Bounds) { b.Min[5] = 4; b.Max[5] = 2 }, 70, 6},
		{"total below minimum demand", func(b *constraints.Bounds) {
			for h := range b.Min {
				b.Min[h] = 1
			}
		}, 10, 6},
		{"total above capacity", func(b *constraints.Bounds) {}, 100, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := uniformBounds(0, 3)
			tt.mutate(&b)
			_, err := p.Plan(4, tt.total, b, DefaultHyperparameters(), tt.cap)
			require.Error(t, err)

			var infeasible *InfeasibleError
			assert.True(t, errors.As(err, &infeasible), "got %v", err)
		})
	}
}

func TestPlan_RejectsBadParameters(t *testing.T) {
	p := warmPlanner(t)
	b := uniformBounds(0, 3)

	_, err := p.Plan(7, 10, b, DefaultHyperparameters(), 6)
	assert.Error(t, err)

	_, err = p.Plan(4, 10, b, Hyperparameters{Morning: -1, Afternoon: 1, Evening: 1, Night: 1}, 6)
	assert.Error(t, err)
}

func TestPlan_DegenerateScoresFallBackToUniform(t *testing.T) {
	// All goodness terms zero: zero PV factors, zero ranks, zero weights.
	// The planner must still distribute via the uniform fallback.
	p := &Planner{
		slotRank:  map[tariff.Slot]int{tariff.F1: 0, tariff.F2: 0, tariff.F3: 0},
		Tolerance: defaultTolerance,
	}

	b := uniformBounds(0, 3)
	sched, err := p.Plan(4, 24, b, Hyperparameters{}, 6)
	require.NoError(t, err)

	assert.InDelta(t, 24, sched.Total(), 1e-3)
	// Uniform fallback spreads evenly
	for h := 0; h < 24; h++ {
		assert.InDelta(t, 1, sched[h], 1e-3, "hour %d", h)
	}
}

func TestSchedule_Total(t *testing.T) {
	var s Schedule
	s[0] = 1.5
	s[23] = 2.5
	assert.InDelta(t, 4, s.Total(), 1e-9)
}
