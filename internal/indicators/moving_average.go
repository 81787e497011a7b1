package indicators

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// MovingAverageType defines the type of moving average
type MovingAverageType string

const (
	// SimpleMovingAverage represents a simple moving average
	SimpleMovingAverage MovingAverageType = "SMA"
	// ExponentialMovingAverage represents an exponential moving average
	ExponentialMovingAverage MovingAverageType = "EMA"
)

// MovingAverageConfig holds configuration for moving average indicators
type MovingAverageConfig struct {
	IndicatorConfig
	Type MovingAverageType
}

// MovingAverage implements both SMA and EMA indicators
type MovingAverage struct {
	BaseIndicator
	config MovingAverageConfig
}

// NewMovingAverage creates a new moving average indicator instance
func NewMovingAverage(config MovingAverageConfig) *MovingAverage {
	return &MovingAverage{
		BaseIndicator: BaseIndicator{Config: config.IndicatorConfig},
		config:        config,
	}
}

// NewSMA is shorthand for a simple moving average over period closes.
func NewSMA(period int) *MovingAverage {
	return NewMovingAverage(MovingAverageConfig{IndicatorConfig: IndicatorConfig{Period: period}, Type: SimpleMovingAverage})
}

// NewEMA is shorthand for an exponential moving average with the given span.
func NewEMA(period int) *MovingAverage {
	return NewMovingAverage(MovingAverageConfig{IndicatorConfig: IndicatorConfig{Period: period}, Type: ExponentialMovingAverage})
}

// Name returns the output column name of the indicator, e.g. "sma_10".
func (m *MovingAverage) Name() string {
	return fmt.Sprintf("%s_%d", strings.ToLower(string(m.config.Type)), m.Config.Period)
}

// RequiredDataPoints returns how many closes are needed before the first value.
// The EMA is seeded with the first close, so it is defined from the start.
func (m *MovingAverage) RequiredDataPoints() int {
	if m.config.Type == ExponentialMovingAverage {
		return 1
	}
	return m.BaseIndicator.RequiredDataPoints()
}

// Series computes the moving average for every position of closes.
func (m *MovingAverage) Series(closes []float64) ([]*float64, error) {
	if m.Config.Period <= 0 {
		return nil, fmt.Errorf("moving average period must be positive, got %d", m.Config.Period)
	}
	switch m.config.Type {
	case SimpleMovingAverage:
		return m.smaSeries(closes), nil
	case ExponentialMovingAverage:
		return m.emaSeries(closes), nil
	default:
		return nil, fmt.Errorf("unsupported moving average type: %s", m.config.Type)
	}
}

// smaSeries is the mean of the trailing Period closes, nil while the window is partial.
func (m *MovingAverage) smaSeries(closes []float64) []*float64 {
	period := m.Config.Period
	out := make([]*float64, len(closes))
	for i := period - 1; i < len(closes); i++ {
		mean := stat.Mean(closes[i-period+1:i+1], nil)
		out[i] = &mean
	}
	return out
}

// emaSeries applies EMA_t = α·close_t + (1−α)·EMA_{t−1} with α = 2/(Period+1),
// starting from EMA_0 = close_0.
func (m *MovingAverage) emaSeries(closes []float64) []*float64 {
	out := make([]*float64, len(closes))
	if len(closes) == 0 {
		return out
	}

	alpha := 2.0 / float64(m.Config.Period+1)
	ema := closes[0]
	for i, price := range closes {
		if i > 0 {
			ema = alpha*price + (1-alpha)*ema
		}
		v := ema
		out[i] = &v
	}
	return out
}
