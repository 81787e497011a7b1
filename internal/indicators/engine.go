package indicators

import (
	"fmt"

	"monthlyBars/internal/domain"
	"monthlyBars/internal/ports"
)

type binding struct {
	indicator Indicator
	assign    func(r *domain.MonthlyRecord, v *float64)
}

// Engine attaches SMA(10), SMA(20), EMA(10) and EMA(20) of the close to a monthly series.
type Engine struct {
	bindings []binding
}

// NewEngine creates the engine with the standard 10 and 20 period averages.
func NewEngine() *Engine {
	return &Engine{bindings: []binding{
		{NewSMA(10), func(r *domain.MonthlyRecord, v *float64) { r.SMA10 = v }},
		{NewSMA(20), func(r *domain.MonthlyRecord, v *float64) { r.SMA20 = v }},
		{NewEMA(10), func(r *domain.MonthlyRecord, v *float64) { r.EMA10 = v }},
		{NewEMA(20), func(r *domain.MonthlyRecord, v *float64) { r.EMA20 = v }},
	}}
}

// Columns returns the indicator names in output order.
func (e *Engine) Columns() []string {
	names := make([]string, len(e.bindings))
	for i, b := range e.bindings {
		names[i] = b.indicator.Name()
	}
	return names
}

// Apply fills the indicator fields of series in place.
// The series must be strictly ascending by period.
func (e *Engine) Apply(series []domain.MonthlyRecord) error {
	for i := 1; i < len(series); i++ {
		if !series[i].Period.After(series[i-1].Period) {
			return fmt.Errorf("period %s at index %d does not follow %s: %w",
				series[i].Period.Format("2006-01"), i, series[i-1].Period.Format("2006-01"), ports.ErrUnsortedInput)
		}
	}

	closes := domain.Closes(series)
	for _, b := range e.bindings {
		values, err := b.indicator.Series(closes)
		if err != nil {
			return fmt.Errorf("failed to compute %s: %w", b.indicator.Name(), err)
		}
		for i := range series {
			b.assign(&series[i], values[i])
		}
	}
	return nil
}
