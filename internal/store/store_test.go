package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"energy_scheduler/internal/model"
)

func sampleRun(dayType string) model.OptimizationRun {
	return model.OptimizationRun{
		Scenario: model.Scenario{DayType: dayType, Season: "warm", Weekday: 4},
	}
}

func TestAdd_AssignsSequentialIDs(t *testing.T) {
	s := New()

	first := s.Add(sampleRun("workdays"))
	second := s.Add(sampleRun("weekend"))

	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)
	assert.Equal(t, 2, s.Len())
}

func TestRuns_ReturnsCopyInOrder(t *testing.T) {
	s := New()
	s.Add(sampleRun("workdays"))
	s.Add(sampleRun("weekend"))

	runs := s.Runs()
	require.Len(t, runs, 2)
	assert.Equal(t, "workdays", runs[0].Scenario.DayType)
	assert.Equal(t, "weekend", runs[1].Scenario.DayType)

	// Mutating the copy must not affect the store
	runs[0].Scenario.DayType = "mutated"
	assert.Equal(t, "workdays", s.Runs()[0].Scenario.DayType)
}

func TestLatest(t *testing.T) {
	s := New()

	_, ok := s.Latest()
	assert.False(t, ok)

	s.Add(sampleRun("workdays"))
	s.Add(sampleRun("weekend"))

	latest, ok := s.Latest()
	require.True(t, ok)
	assert.Equal(t, "weekend", latest.Scenario.DayType)
	assert.Equal(t, 2, latest.ID)
}
