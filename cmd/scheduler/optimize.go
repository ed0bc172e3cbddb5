package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/cheggaaa/pb.v1"

	"energy_scheduler/internal/model"
	"energy_scheduler/internal/scenario"
)

func optimizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "optimize",
		Short: "Optimize all four canonical scenarios and compare expenses",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, file, err := loadSetup()
			if err != nil {
				return err
			}

			runner := scenario.NewRunner(cfg, file, log.Logger)
			trials := runner.Trials()

			var bar *pb.ProgressBar
			runs, err := runner.RunAll(cmd.Context(), scenario.DefaultScenarios(), func(sc model.Scenario) scenario.Progress {
				if bar != nil {
					bar.Finish()
				}
				bar = pb.StartNew(trials).Prefix(sc.Label())
				return func(done, total int) {
					bar.Set(done)
				}
			})
			if bar != nil {
				bar.Finish()
			}
			if err != nil {
				return err
			}

			printComparison(runs)
			return nil
		},
	}
}

func printComparison(runs []model.OptimizationRun) {
	if len(runs) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Scenario Expense Comparison")
	fmt.Println()
	fmt.Printf(" %-18s │ %10s │ %10s │ %9s │ %-28s\n",
		"Scenario", "Baseline €", "Optimized €", "Savings", "Best weights (M/A/E/N)")
	fmt.Printf("────────────────────┼────────────┼─────────────┼───────────┼─────────────────────────────\n")

	for _, r := range runs {
		base := r.BaselineResult.TotalExpense
		opt := r.OptimizedResult.TotalExpense
		savingsPct := 0.0
		if base > 0 {
			savingsPct = r.SavingsEUR() / base * 100
		}
		fmt.Printf(" %-18s │ %10.4f │ %11.4f │ %8.1f%% │ %5.2f / %5.2f / %5.2f / %5.2f\n",
			r.Scenario.Label(),
			base,
			opt,
			savingsPct,
			r.Best.Morning, r.Best.Afternoon, r.Best.Evening, r.Best.Night,
		)
	}
	fmt.Println()
}
