package search

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"energy_scheduler/internal/constraints"
	"energy_scheduler/internal/schedule"
	"energy_scheduler/internal/simulator"
)

// Params configures one grid search.
type Params struct {
	Weekday     int
	TotalEnergy float64
	PanelCount  int
	Bounds      constraints.Bounds
	// Range spans the hyperparameter values to test, endpoints inclusive.
	Range [2]float64
	// Samples is the number of evenly spaced values per dimension; the
	// search evaluates Samples^4 combinations.
	Samples int
	CapKW   float64
	Seed    uint64
	// Workers bounds parallelism; 0 means GOMAXPROCS.
	Workers int
	// OnTrial, when set, is called after each completed trial with the
	// running completion count. It may be called from multiple
	// goroutines.
	OnTrial func(done, total int)
}

// Grid exhaustively evaluates every hyperparameter combination, planning a
// schedule and simulating its cost for each, and returns the combination
// with the lowest total expense. Trials run concurrently; the reduction
// keeps the strictly lowest expense and breaks ties by the lowest trial
// index, so the result matches a sequential first-found scan exactly.
func Grid(ctx context.Context, planner *schedule.Planner, sim *simulator.Simulator, p Params) (schedule.Hyperparameters, error) {
	if p.Samples < 1 {
		return schedule.Hyperparameters{}, fmt.Errorf("samples must be >= 1, got %d", p.Samples)
	}

	values := linspace(p.Range[0], p.Range[1], p.Samples)
	total := p.Samples * p.Samples * p.Samples * p.Samples

	workers := p.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > total {
		workers = total
	}

	type best struct {
		expense float64
		idx     int
		hp      schedule.Hyperparameters
		valid   bool
	}

	var (
		mu      sync.Mutex
		overall best
		done    atomic.Int64
	)

	indexes := make(chan int)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(indexes)
		for i := 0; i < total; i++ {
			select {
			case indexes <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			local := best{}
			for idx := range indexes {
				hp := hyperparametersAt(values, idx)
				sched, err := planner.Plan(p.Weekday, p.TotalEnergy, p.Bounds, hp, p.CapKW)
				if err != nil {
					// The bounds are shared by every trial, so
					// one infeasible plan fails them all.
					return fmt.Errorf("trial %d: %w", idx, err)
				}
				res := sim.Run(p.Weekday, sched, p.PanelCount, p.Seed)

				if !local.valid || res.TotalExpense < local.expense ||
					(res.TotalExpense == local.expense && idx < local.idx) {
					local = best{expense: res.TotalExpense, idx: idx, hp: hp, valid: true}
				}
				if p.OnTrial != nil {
					p.OnTrial(int(done.Add(1)), total)
				}
			}
			if local.valid {
				mu.Lock()
				if !overall.valid || local.expense < overall.expense ||
					(local.expense == overall.expense && local.idx < overall.idx) {
					overall = local
				}
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return schedule.Hyperparameters{}, err
	}
	return overall.hp, nil
}

// hyperparametersAt decodes a trial index into its combination, matching the
// lexicographic order of four nested loops (morning outermost).
func hyperparametersAt(values []float64, idx int) schedule.Hyperparameters {
	n := len(values)
	return schedule.Hyperparameters{
		Morning:   values[idx/(n*n*n)],
		Afternoon: values[(idx/(n*n))%n],
		Evening:   values[(idx/n)%n],
		Night:     values[idx%n],
	}
}

// linspace returns n evenly spaced values spanning [lo, hi] inclusive.
func linspace(lo, hi float64, n int) []float64 {
	if n == 1 {
		return []float64{lo}
	}
	values := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range values {
		values[i] = lo + float64(i)*step
	}
	values[n-1] = hi
	return values
}
