package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"energy_scheduler/internal/model"
	"energy_scheduler/internal/schedule"
	"energy_scheduler/internal/scenario"

	"github.com/rs/zerolog/log"
)

func planCmd() *cobra.Command {
	var (
		dayType string
		season  string
		weekday int
		weights []float64
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Produce a single schedule for explicit time-of-day weights",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, file, err := loadSetup()
			if err != nil {
				return err
			}
			if len(weights) != 4 {
				return fmt.Errorf("expected 4 weights (morning,afternoon,evening,night), got %d", len(weights))
			}

			hp := schedule.Hyperparameters{
				Morning:   weights[0],
				Afternoon: weights[1],
				Evening:   weights[2],
				Night:     weights[3],
			}
			sc := model.Scenario{DayType: dayType, Season: season, Weekday: weekday}

			runner := scenario.NewRunner(cfg, file, log.Logger)
			sched, res, bounds, err := runner.Plan(sc, hp)
			if err != nil {
				return err
			}

			fmt.Printf("\nSchedule for %s, weekday %d\n\n", sc.Label(), weekday)
			fmt.Printf(" %4s │ %9s │ %7s │ %7s │ %9s\n", "Hour", "Energy", "Min", "Max", "Cost €")
			fmt.Printf("──────┼───────────┼─────────┼─────────┼──────────\n")
			for h := 0; h < 24; h++ {
				fmt.Printf(" %4d │ %6.3f kWh│ %7.2f │ %7.2f │ %9.5f\n",
					h, sched[h], bounds.Min[h], bounds.Max[h], res.HourlyExpense[h])
			}
			fmt.Printf("\nTotal energy: %.3f kWh   Expense: %.4f €   Solar sold: %.3f kWh\n\n",
				sched.Total(), res.TotalExpense, res.EnergySoldKWh)
			return nil
		},
	}

	cmd.Flags().StringVar(&dayType, "day-type", "workdays", "day type from the constraints source")
	cmd.Flags().StringVar(&season, "season", "warm", "planning period (warm or cold)")
	cmd.Flags().IntVar(&weekday, "weekday", 4, "weekday, 0=Monday .. 6=Sunday")
	cmd.Flags().Float64SliceVar(&weights, "weights", []float64{1, 1, 1, 1}, "morning,afternoon,evening,night weights")
	return cmd
}
