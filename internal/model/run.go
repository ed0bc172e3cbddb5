package model

import (
	"time"

	"energy_scheduler/internal/schedule"
	"energy_scheduler/internal/simulator"
)

// Scenario identifies one planning case: a day type from the constraints
// source, a tariff/generation period and a concrete weekday.
type Scenario struct {
	// DayType keys the constraints and EV requirements, e.g. "workdays".
	DayType string `json:"day_type"`
	// Season is the planning period, "warm" or "cold".
	Season string `json:"season"`
	// Weekday is 0=Monday .. 6=Sunday.
	Weekday int `json:"weekday"`
}

// Label returns a human-readable scenario name.
func (s Scenario) Label() string {
	return s.DayType + " (" + s.Season + ")"
}

// OptimizationRun records one completed scenario optimization: the baseline
// schedule under default hyperparameters and the schedule produced by the
// best combination found.
type OptimizationRun struct {
	ID       int      `json:"id"`
	Scenario Scenario `json:"scenario"`

	Baseline       schedule.Schedule `json:"baseline"`
	BaselineResult simulator.Result  `json:"baseline_result"`

	Best            schedule.Hyperparameters `json:"best_hyperparameters"`
	Optimized       schedule.Schedule        `json:"optimized"`
	OptimizedResult simulator.Result         `json:"optimized_result"`

	Trials     int       `json:"trials"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// SavingsEUR is the simulated expense reduction of the optimized schedule
// over the baseline.
func (r OptimizationRun) SavingsEUR() float64 {
	return r.BaselineResult.TotalExpense - r.OptimizedResult.TotalExpense
}
