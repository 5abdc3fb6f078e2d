package booking

import "fmt"

// PricingStrategy defines the interface for calculating booking prices.
type PricingStrategy interface {
	// Calculate returns the total price in cents for the given parameters.
	Calculate(params PricingParams) (int64, error)
}

// PricingParams holds the inputs for price calculation.
type PricingParams struct {
	Nights           int
	NightlyRateCents int64
	Guests           int
	Breakfast        bool
}

// NightlyPricingStrategy charges the room type's nightly rate for every night.
type NightlyPricingStrategy struct{}

// NewNightlyPricingStrategy creates a new NightlyPricingStrategy.
func NewNightlyPricingStrategy() *NightlyPricingStrategy {
	return &NightlyPricingStrategy{}
}

// Calculate computes totalDays x nightly rate. Guests and breakfast are carried
// for strategies that price them; the nightly strategy ignores both.
func (s *NightlyPricingStrategy) Calculate(params PricingParams) (int64, error) {
	if params.Nights < 1 {
		return 0, fmt.Errorf("stay must be at least one night")
	}
	if params.NightlyRateCents <= 0 {
		return 0, fmt.Errorf("nightly rate must be positive")
	}
	return int64(params.Nights) * params.NightlyRateCents, nil
}
