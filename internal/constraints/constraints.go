package constraints

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// ErrUnknownDayType is returned when a requested day type is not present in
// the loaded constraints.
var ErrUnknownDayType = errors.New("unknown day type")

// Bounds holds per-hour minimum and maximum consumption limits in kWh.
type Bounds struct {
	Min [24]float64
	Max [24]float64
}

// DefaultBounds returns unconstrained bounds: no minimum anywhere and the
// global cap as the maximum for every hour.
func DefaultBounds(capKW float64) Bounds {
	var b Bounds
	for h := range b.Max {
		b.Max[h] = capKW
	}
	return b
}

// Range is the min/max pair attached to one time period in the source file.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// period is one "H-H" entry, kept in file order so that later periods
// overwrite overlapping hours from earlier ones.
type period struct {
	label string
	hours []int
	rng   Range
}

// File holds parsed user preference constraints keyed by day type.
type File map[string][]period

// Load reads and parses a constraints file from disk.
func Load(path string) (File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening constraints file: %w", err)
	}
	defer f.Close()

	file, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return file, nil
}

// Parse decodes the constraints JSON document: an object keyed by day type,
// each value an object keyed by "H-H" period mapping to {"min", "max"}.
// Period order within a day type is preserved.
func Parse(r io.Reader) (File, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, err
	}

	file := make(File, len(raw))
	for dayType, msg := range raw {
		periods, err := parsePeriods(msg)
		if err != nil {
			return nil, fmt.Errorf("day type %q: %w", dayType, err)
		}
		file[dayType] = periods
	}
	return file, nil
}

// parsePeriods walks the object token by token; a plain map decode would
// lose the key order that the overwrite rule depends on.
func parsePeriods(raw json.RawMessage) ([]period, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	var periods []period
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		label := keyTok.(string)

		var rng Range
		if err := dec.Decode(&rng); err != nil {
			return nil, fmt.Errorf("period %q: %w", label, err)
		}
		if rng.Min < 0 || rng.Max < rng.Min {
			return nil, fmt.Errorf("period %q: invalid range min=%v max=%v", label, rng.Min, rng.Max)
		}

		hours, err := periodHours(label)
		if err != nil {
			return nil, err
		}
		periods = append(periods, period{label: label, hours: hours, rng: rng})
	}
	return periods, nil
}

// periodHours expands an "H-H" label into the hours it covers. The end hour
// is exclusive, fractional hours truncate to the containing hour, and an end
// of 24 means wraparound to 0. Periods where start >= end wrap past midnight.
func periodHours(label string) ([]int, error) {
	parts := strings.SplitN(label, "-", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("period %q: expected \"start-end\"", label)
	}
	start, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return nil, fmt.Errorf("period %q: %w", label, err)
	}
	end, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return nil, fmt.Errorf("period %q: %w", label, err)
	}
	if start < 0 || start >= 24 || end < 0 || end > 24 {
		return nil, fmt.Errorf("period %q: hours out of range", label)
	}

	startHour := int(start)
	endHour := int(end)
	if end == 24 {
		endHour = 0
	}

	var hours []int
	if start < end && endHour != 0 {
		for h := startHour; h < endHour; h++ {
			hours = append(hours, h)
		}
	} else {
		for h := startHour; h < 24; h++ {
			hours = append(hours, h)
		}
		for h := 0; h < endHour; h++ {
			hours = append(hours, h)
		}
	}
	return hours, nil
}

// DayTypes lists the day types present in the file, sorted.
func (f File) DayTypes() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Bounds builds the complete 24-hour bound tables for a day type. Hours not
// covered by any period default to {0, capKW}.
func (f File) Bounds(dayType string, capKW float64) (Bounds, error) {
	periods, ok := f[dayType]
	if !ok {
		return Bounds{}, fmt.Errorf("%w: %q", ErrUnknownDayType, dayType)
	}

	b := DefaultBounds(capKW)
	for _, p := range periods {
		for _, h := range p.hours {
			b.Min[h] = p.rng.Min
			b.Max[h] = p.rng.Max
		}
	}
	return b, nil
}
