package schedule

// Hyperparameters are the four tunable time-of-day weights biasing
// allocation. They are non-negative and passed by value.
type Hyperparameters struct {
	Morning   float64 `json:"morning"`
	Afternoon float64 `json:"afternoon"`
	Evening   float64 `json:"evening"`
	Night     float64 `json:"night"`
}

// DefaultHyperparameters weights all four day segments equally.
func DefaultHyperparameters() Hyperparameters {
	return Hyperparameters{Morning: 1, Afternoon: 1, Evening: 1, Night: 1}
}

// BuildHourFactors expands the four weights into a full hourly table:
// morning covers 07-12, afternoon 13-18, evening 19-22 and night 23-06
// (wrapping past midnight). Together the segments cover all 24 hours.
func BuildHourFactors(hp Hyperparameters) [24]float64 {
	var factors [24]float64
	for h := 7; h <= 12; h++ {
		factors[h] = hp.Morning
	}
	for h := 13; h <= 18; h++ {
		factors[h] = hp.Afternoon
	}
	for h := 19; h <= 22; h++ {
		factors[h] = hp.Evening
	}
	for h := 23; h <= 30; h++ {
		factors[h%24] = hp.Night
	}
	return factors
}
