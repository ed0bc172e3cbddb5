package scenario

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"energy_scheduler/internal/config"
	"energy_scheduler/internal/constraints"
	"energy_scheduler/internal/model"
	"energy_scheduler/internal/schedule"
	"energy_scheduler/internal/search"
	"energy_scheduler/internal/simulator"
	"energy_scheduler/internal/solar"
	"energy_scheduler/internal/tariff"
)

// Progress reports grid-search completion: done trials out of total.
type Progress func(done, total int)

// DefaultScenarios lists the four canonical planning cases: workdays and
// weekend in each period, planned for a Friday and a Sunday respectively.
func DefaultScenarios() []model.Scenario {
	return []model.Scenario{
		{DayType: "workdays", Season: "warm", Weekday: 4},
		{DayType: "weekend", Season: "warm", Weekday: 6},
		{DayType: "workdays", Season: "cold", Weekday: 4},
		{DayType: "weekend", Season: "cold", Weekday: 6},
	}
}

// Runner drives a full scenario optimization: bound tables, EV merge,
// baseline plan, hyperparameter search and the optimized plan.
type Runner struct {
	cfg  config.Config
	file constraints.File // nil means unconstrained defaults
	log  zerolog.Logger
}

// NewRunner builds a runner. file may be nil when no constraints file is
// configured; bounds then default to {0, cap} for every hour.
func NewRunner(cfg config.Config, file constraints.File, log zerolog.Logger) *Runner {
	return &Runner{cfg: cfg, file: file, log: log}
}

// Trials returns the number of grid-search trials a single run performs.
func (r *Runner) Trials() int {
	n := r.cfg.Search.Samples
	return n * n * n * n
}

// Run optimizes one scenario. onTrial may be nil.
func (r *Runner) Run(ctx context.Context, sc model.Scenario, onTrial Progress) (model.OptimizationRun, error) {
	dayType, ok := r.cfg.DayTypes[sc.DayType]
	if !ok {
		return model.OptimizationRun{}, fmt.Errorf("%w: %q", constraints.ErrUnknownDayType, sc.DayType)
	}
	profile, ok := solar.ByPeriod(sc.Season)
	if !ok {
		return model.OptimizationRun{}, fmt.Errorf("unknown season %q", sc.Season)
	}
	rates, ok := tariff.ByPeriod(sc.Season)
	if !ok {
		return model.OptimizationRun{}, fmt.Errorf("no tariff rates for season %q", sc.Season)
	}

	bounds, err := r.bounds(sc.DayType, dayType.EV)
	if err != nil {
		return model.OptimizationRun{}, err
	}

	planner := schedule.NewPlanner(profile, rates)
	sim := simulator.New(profile, rates)
	started := time.Now()

	r.log.Info().
		Str("scenario", sc.Label()).
		Float64("total_energy_kwh", dayType.TotalEnergyKWh).
		Int("trials", r.Trials()).
		Msg("optimizing scenario")

	baseline, err := planner.Plan(sc.Weekday, dayType.TotalEnergyKWh, bounds, schedule.DefaultHyperparameters(), r.cfg.CapKW)
	if err != nil {
		return model.OptimizationRun{}, fmt.Errorf("baseline plan: %w", err)
	}
	baselineResult := sim.Run(sc.Weekday, baseline, r.cfg.PanelCount, r.cfg.Seed)

	best, err := search.Grid(ctx, planner, sim, search.Params{
		Weekday:     sc.Weekday,
		TotalEnergy: dayType.TotalEnergyKWh,
		PanelCount:  r.cfg.PanelCount,
		Bounds:      bounds,
		Range:       [2]float64{r.cfg.Search.RangeMin, r.cfg.Search.RangeMax},
		Samples:     r.cfg.Search.Samples,
		CapKW:       r.cfg.CapKW,
		Seed:        r.cfg.Seed,
		Workers:     r.cfg.Search.Workers,
		OnTrial:     onTrial,
	})
	if err != nil {
		return model.OptimizationRun{}, fmt.Errorf("grid search: %w", err)
	}

	optimized, err := planner.Plan(sc.Weekday, dayType.TotalEnergyKWh, bounds, best, r.cfg.CapKW)
	if err != nil {
		return model.OptimizationRun{}, fmt.Errorf("optimized plan: %w", err)
	}
	optimizedResult := sim.Run(sc.Weekday, optimized, r.cfg.PanelCount, r.cfg.Seed)

	run := model.OptimizationRun{
		Scenario:        sc,
		Baseline:        baseline,
		BaselineResult:  baselineResult,
		Best:            best,
		Optimized:       optimized,
		OptimizedResult: optimizedResult,
		Trials:          r.Trials(),
		StartedAt:       started,
		FinishedAt:      time.Now(),
	}

	r.log.Info().
		Str("scenario", sc.Label()).
		Float64("baseline_eur", baselineResult.TotalExpense).
		Float64("optimized_eur", optimizedResult.TotalExpense).
		Float64("savings_eur", run.SavingsEUR()).
		Msg("scenario done")

	return run, nil
}

// RunAll optimizes every given scenario in order. onTrial is invoked with
// the scenario before its search starts so callers can scope progress.
func (r *Runner) RunAll(ctx context.Context, scenarios []model.Scenario, onTrial func(sc model.Scenario) Progress) ([]model.OptimizationRun, error) {
	runs := make([]model.OptimizationRun, 0, len(scenarios))
	for _, sc := range scenarios {
		var progress Progress
		if onTrial != nil {
			progress = onTrial(sc)
		}
		run, err := r.Run(ctx, sc, progress)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", sc.Label(), err)
		}
		runs = append(runs, run)
	}
	return runs, nil
}

// Plan produces a single schedule for explicit hyperparameters without
// running the search.
func (r *Runner) Plan(sc model.Scenario, hp schedule.Hyperparameters) (schedule.Schedule, simulator.Result, constraints.Bounds, error) {
	dayType, ok := r.cfg.DayTypes[sc.DayType]
	if !ok {
		return schedule.Schedule{}, simulator.Result{}, constraints.Bounds{}, fmt.Errorf("%w: %q", constraints.ErrUnknownDayType, sc.DayType)
	}
	profile, ok := solar.ByPeriod(sc.Season)
	if !ok {
		return schedule.Schedule{}, simulator.Result{}, constraints.Bounds{}, fmt.Errorf("unknown season %q", sc.Season)
	}
	rates, ok := tariff.ByPeriod(sc.Season)
	if !ok {
		return schedule.Schedule{}, simulator.Result{}, constraints.Bounds{}, fmt.Errorf("no tariff rates for season %q", sc.Season)
	}

	bounds, err := r.bounds(sc.DayType, dayType.EV)
	if err != nil {
		return schedule.Schedule{}, simulator.Result{}, constraints.Bounds{}, err
	}

	planner := schedule.NewPlanner(profile, rates)
	sched, err := planner.Plan(sc.Weekday, dayType.TotalEnergyKWh, bounds, hp, r.cfg.CapKW)
	if err != nil {
		return schedule.Schedule{}, simulator.Result{}, constraints.Bounds{}, err
	}
	res := simulator.New(profile, rates).Run(sc.Weekday, sched, r.cfg.PanelCount, r.cfg.Seed)
	return sched, res, bounds, nil
}

// bounds resolves the bound tables for a day type and merges the EV
// requirement.
func (r *Runner) bounds(dayType string, ev constraints.EV) (constraints.Bounds, error) {
	bounds := constraints.DefaultBounds(r.cfg.CapKW)
	if r.file != nil {
		var err error
		bounds, err = r.file.Bounds(dayType, r.cfg.CapKW)
		if err != nil {
			return constraints.Bounds{}, err
		}
	}
	bounds, err := bounds.WithEV(ev, r.cfg.CapKW)
	if err != nil {
		return constraints.Bounds{}, fmt.Errorf("merging ev constraints: %w", err)
	}
	return bounds, nil
}
