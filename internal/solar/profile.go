package solar

// Profile holds average hourly PV output in kWh per kW of installed panels.
type Profile [24]float64

// Hourly averages for Turin, by season.
var (
	summer = Profile{
		0.001, 0.001, 0.001, 0.001, 0.001, 0.03,
		0.125, 0.27, 0.42, 0.575, 0.69, 0.74,
		0.75, 0.71, 0.64, 0.55, 0.41, 0.27,
		0.15, 0.05, 0.005, 0.001, 0.001, 0.001,
	}
	spring = Profile{
		0.001, 0.001, 0.001, 0.001, 0.001, 0.01,
		0.07, 0.17, 0.32, 0.45, 0.565, 0.63,
		0.65, 0.6, 0.54, 0.44, 0.31, 0.18,
		0.07, 0.02, 0.001, 0.001, 0.001, 0.001,
	}
	autumn = Profile{
		0.001, 0.001, 0.001, 0.001, 0.001, 0.001,
		0.01, 0.07, 0.19, 0.32, 0.415, 0.47,
		0.49, 0.44, 0.365, 0.275, 0.15, 0.05,
		0.02, 0.001, 0.001, 0.001, 0.001, 0.001,
	}
	winter = Profile{
		0.001, 0.001, 0.001, 0.001, 0.001, 0.001,
		0.001, 0.001, 0.04, 0.14, 0.25, 0.315,
		0.34, 0.31, 0.26, 0.17, 0.08, 0.025,
		0.001, 0.001, 0.001, 0.001, 0.001, 0.001,
	}
)

// Seasons maps season names to their generation profiles.
var Seasons = map[string]Profile{
	"summer": summer,
	"spring": spring,
	"autumn": autumn,
	"winter": winter,
}

// Periods holds the two planning periods used by tariffs and constraints.
// "warm" averages spring and summer, "cold" averages autumn and winter.
var Periods = map[string]Profile{
	"warm": average(spring, summer),
	"cold": average(autumn, winter),
}

// ByPeriod returns the generation profile for a planning period.
func ByPeriod(period string) (Profile, bool) {
	p, ok := Periods[period]
	return p, ok
}

func average(a, b Profile) Profile {
	var out Profile
	for h := range out {
		out[h] = (a[h] + b[h]) / 2
	}
	return out
}

// flatFactor is returned for every hour when a profile has no spread and
// min-max normalization would divide by zero.
const flatFactor = 0.5

// Factors min-max normalizes the profile to [0, 1]: the peak hour maps to 1,
// the lowest hour to 0. A flat profile yields flatFactor for every hour.
func (p Profile) Factors() [24]float64 {
	lo, hi := p[0], p[0]
	for _, v := range p[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	var factors [24]float64
	if hi == lo {
		for h := range factors {
			factors[h] = flatFactor
		}
		return factors
	}
	for h, v := range p {
		factors[h] = (v - lo) / (hi - lo)
	}
	return factors
}
