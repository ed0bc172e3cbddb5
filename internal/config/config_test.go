package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.InDelta(t, 6, cfg.CapKW, 1e-9)
	assert.Equal(t, 5, cfg.PanelCount)
	assert.Equal(t, 5, cfg.Search.Samples)

	workdays := cfg.DayTypes["workdays"]
	assert.InDelta(t, 35, workdays.TotalEnergyKWh, 1e-9)
	assert.Equal(t, []int{22, 23, 0, 1, 2, 3, 4, 5}, workdays.EV.ChargingHours)

	weekend := cfg.DayTypes["weekend"]
	assert.InDelta(t, 40, weekend.TotalEnergyKWh, 1e-9)
	assert.Len(t, weekend.EV.ChargingHours, 12)
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
cap_kw: 4.5
panel_count: 8
seed: 7
search:
  range_min: 0.5
  range_max: 2
  samples: 3
  workers: 2
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.InDelta(t, 4.5, cfg.CapKW, 1e-9)
	assert.Equal(t, 8, cfg.PanelCount)
	assert.Equal(t, uint64(7), cfg.Seed)
	assert.Equal(t, 3, cfg.Search.Samples)
	assert.Equal(t, 2, cfg.Search.Workers)
	// Untouched sections keep their defaults
	assert.Contains(t, cfg.DayTypes, "workdays")
}

func TestLoad_RejectsInvalidSettings(t *testing.T) {
	cases := map[string]string{
		"zero cap":       "cap_kw: 0\n",
		"bad samples":    "search: {samples: 0}\n",
		"inverted range": "search: {range_min: 5, range_max: 1}\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, doc))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_MalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "cap_kw: [not a number\n"))
	assert.Error(t, err)
}

func writeConfig(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}
