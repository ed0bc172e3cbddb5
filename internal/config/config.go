package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"energy_scheduler/internal/constraints"
)

// SearchConfig holds the hyperparameter grid-search settings.
type SearchConfig struct {
	RangeMin float64 `yaml:"range_min"`
	RangeMax float64 `yaml:"range_max"`
	Samples  int     `yaml:"samples"`
	Workers  int     `yaml:"workers"`
}

// DayTypeConfig holds the per-day-type planning inputs.
type DayTypeConfig struct {
	TotalEnergyKWh float64        `yaml:"total_energy_kwh"`
	EV             constraints.EV `yaml:"ev"`
}

// Config is the application configuration, loaded once at startup and
// treated as read-only afterwards.
type Config struct {
	// ConstraintsFile points at the JSON user-preference constraints;
	// empty means unconstrained bounds.
	ConstraintsFile string                   `yaml:"constraints_file"`
	CapKW           float64                  `yaml:"cap_kw"`
	PanelCount      int                      `yaml:"panel_count"`
	Seed            uint64                   `yaml:"seed"`
	Search          SearchConfig             `yaml:"search"`
	DayTypes        map[string]DayTypeConfig `yaml:"day_types"`
}

// Default returns the built-in household configuration.
func Default() Config {
	return Config{
		CapKW:      6,
		PanelCount: 5,
		Seed:       42,
		Search: SearchConfig{
			RangeMin: 0.1,
			RangeMax: 10,
			Samples:  5,
		},
		DayTypes: map[string]DayTypeConfig{
			"workdays": {
				TotalEnergyKWh: 35,
				EV: constraints.EV{
					TotalEnergyKWh: 10,
					ChargingHours:  hourRange(22, 6),
					PowerLimitKW:   3.6,
				},
			},
			"weekend": {
				TotalEnergyKWh: 40,
				EV: constraints.EV{
					TotalEnergyKWh: 15,
					ChargingHours:  hourRange(20, 8),
					PowerLimitKW:   3.6,
				},
			},
		},
	}
}

// Load reads a YAML config file over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the settings for internal consistency.
func (c Config) Validate() error {
	if c.CapKW <= 0 {
		return fmt.Errorf("cap_kw must be positive, got %v", c.CapKW)
	}
	if c.PanelCount < 0 {
		return fmt.Errorf("panel_count must not be negative, got %d", c.PanelCount)
	}
	if c.Search.Samples < 1 {
		return fmt.Errorf("search.samples must be >= 1, got %d", c.Search.Samples)
	}
	if c.Search.RangeMin < 0 || c.Search.RangeMax < c.Search.RangeMin {
		return fmt.Errorf("invalid search range [%v, %v]", c.Search.RangeMin, c.Search.RangeMax)
	}
	if len(c.DayTypes) == 0 {
		return fmt.Errorf("no day types configured")
	}
	for name, dt := range c.DayTypes {
		if dt.TotalEnergyKWh <= 0 {
			return fmt.Errorf("day type %q: total_energy_kwh must be positive", name)
		}
	}
	return nil
}

// hourRange expands [start, end) with wraparound past midnight.
func hourRange(start, end int) []int {
	var hours []int
	for h := start; h != end; h = (h + 1) % 24 {
		hours = append(hours, h)
	}
	return hours
}
