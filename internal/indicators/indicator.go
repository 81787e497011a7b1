package indicators

// Indicator represents a technical indicator computed over a close-price series.
type Indicator interface {
	// Series computes one value per input close. A nil entry means the
	// indicator is undefined at that position (not enough history).
	Series(closes []float64) ([]*float64, error)

	// RequiredDataPoints returns the number of closes needed before the first defined value
	RequiredDataPoints() int

	// Name returns the name of the indicator
	Name() string
}

// IndicatorConfig holds common configuration for indicators
type IndicatorConfig struct {
	Period int
}

// BaseIndicator provides common functionality for indicators
type BaseIndicator struct {
	Config IndicatorConfig
}

// RequiredDataPoints returns the minimum number of closes needed for calculation
func (b *BaseIndicator) RequiredDataPoints() int {
	return b.Config.Period
}
