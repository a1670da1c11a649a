package cost

import "github.com/sells-group/adphone/internal/model"

// DefaultSuccessCost is charged for every extraction that finds a phone.
const DefaultSuccessCost = 15

// Rates holds per-outcome pricing configuration.
type Rates struct {
	SuccessCost int `yaml:"success_cost" mapstructure:"success_cost"`
}

// Calculator computes the billing signal recorded with each extraction.
type Calculator struct {
	rates Rates
}

// NewCalculator creates a Calculator with the given rates. A non-positive
// success cost falls back to DefaultSuccessCost.
func NewCalculator(rates Rates) *Calculator {
	if rates.SuccessCost <= 0 {
		rates.SuccessCost = DefaultSuccessCost
	}
	return &Calculator{rates: rates}
}

// ForStatus returns the cost of an attempt with the given outcome. Only
// successful extractions are charged.
func (c *Calculator) ForStatus(status model.ParseStatus) int {
	if status == model.ParseStatusSuccess {
		return c.rates.SuccessCost
	}
	return 0
}
