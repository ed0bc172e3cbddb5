package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"energy_scheduler/internal/config"
	"energy_scheduler/internal/constraints"
)

var (
	flagConfig      string
	flagConstraints string
	flagSeed        uint64
	flagPanels      int
	flagVerbose     bool
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	root := &cobra.Command{
		Use:   "scheduler",
		Short: "Plans and optimizes a household's daily energy schedule",
		Long: "scheduler allocates a fixed daily energy budget across 24 hourly slots\n" +
			"for a household with solar generation, time-of-use pricing and EV\n" +
			"charging, and searches for the time-of-day weights that minimize the\n" +
			"simulated electricity cost.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagVerbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
		},
	}

	root.PersistentFlags().StringVar(&flagConfig, "config", "", "YAML config file (defaults built in)")
	root.PersistentFlags().StringVar(&flagConstraints, "constraints", "", "JSON user-preference constraints file")
	root.PersistentFlags().Uint64Var(&flagSeed, "seed", 0, "override the simulation seed")
	root.PersistentFlags().IntVar(&flagPanels, "panels", 0, "override the solar panel count")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")

	root.AddCommand(optimizeCmd())
	root.AddCommand(planCmd())
	root.AddCommand(serveCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadSetup resolves config and constraints from flags.
func loadSetup() (config.Config, constraints.File, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, nil, err
	}
	if flagSeed != 0 {
		cfg.Seed = flagSeed
	}
	if flagPanels != 0 {
		cfg.PanelCount = flagPanels
	}
	if flagConstraints != "" {
		cfg.ConstraintsFile = flagConstraints
	}

	var file constraints.File
	if cfg.ConstraintsFile != "" {
		file, err = constraints.Load(cfg.ConstraintsFile)
		if err != nil {
			return config.Config{}, nil, err
		}
	}
	return cfg, file, nil
}
