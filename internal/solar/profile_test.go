package solar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByPeriod_KnownPeriods(t *testing.T) {
	warm, ok := ByPeriod("warm")
	require.True(t, ok)
	cold, ok := ByPeriod("cold")
	require.True(t, ok)

	// Periods are the season averages
	for h := 0; h < 24; h++ {
		assert.InDelta(t, (spring[h]+summer[h])/2, warm[h], 1e-9)
		assert.InDelta(t, (autumn[h]+winter[h])/2, cold[h], 1e-9)
	}

	_, ok = ByPeriod("monsoon")
	assert.False(t, ok)
}

func TestProfile_SeasonShapes(t *testing.T) {
	for name, p := range Seasons {
		// Generation peaks around midday and is negligible at night
		assert.Greater(t, p[12], p[0], "season %s", name)
		assert.Greater(t, p[12], p[23], "season %s", name)
	}
	// Summer noon outproduces winter noon
	assert.Greater(t, Seasons["summer"][12], Seasons["winter"][12])
}

func TestFactors_MinMaxNormalization(t *testing.T) {
	warm, _ := ByPeriod("warm")
	factors := warm.Factors()

	var sawZero, sawOne bool
	for h, f := range factors {
		assert.GreaterOrEqual(t, f, 0.0, "hour %d", h)
		assert.LessOrEqual(t, f, 1.0, "hour %d", h)
		if f == 0 {
			sawZero = true
		}
		if f == 1 {
			sawOne = true
		}
	}
	assert.True(t, sawZero, "lowest hour should map to 0")
	assert.True(t, sawOne, "peak hour should map to 1")
	// Peak is at noon for the warm period
	assert.InDelta(t, 1.0, factors[12], 1e-9)
}

func TestFactors_FlatProfileFallback(t *testing.T) {
	flat := Profile{}
	for h := range flat {
		flat[h] = 0.4
	}

	factors := flat.Factors()
	for h, f := range factors {
		assert.InDelta(t, flatFactor, f, 1e-9, "hour %d", h)
	}
}

func TestFactors_ZeroProfileFallback(t *testing.T) {
	var zero Profile
	factors := zero.Factors()
	for h, f := range factors {
		assert.InDelta(t, flatFactor, f, 1e-9, "hour %d", h)
	}
}
