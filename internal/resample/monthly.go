// Package resample reduces daily price records to calendar-month OHLC bars.
package resample

import (
	"fmt"
	"math"

	"monthlyBars/internal/domain"
	"monthlyBars/internal/ports"
)

// MonthlyOHLC buckets one ticker's daily records by Gregorian calendar month
// and reduces every bucket to a single bar: first open, max high, min low,
// last close. Months without records produce no bar.
//
// The input must be sorted by date ascending (equal dates keep input order);
// otherwise ports.ErrUnsortedInput is returned because "first" and "last"
// would be meaningless.
func MonthlyOHLC(daily []domain.DailyRecord) ([]domain.MonthlyRecord, error) {
	if len(daily) == 0 {
		return []domain.MonthlyRecord{}, nil
	}

	ticker := daily[0].Ticker
	series := make([]domain.MonthlyRecord, 0, len(daily)/15+1)
	var current *domain.MonthlyRecord

	for i, d := range daily {
		if d.Ticker != ticker {
			return nil, fmt.Errorf("record %d has ticker %q, expected %q: %w", i, d.Ticker, ticker, ports.ErrMixedTickers)
		}
		if i > 0 && d.Date.Before(daily[i-1].Date) {
			return nil, fmt.Errorf("record %d dated %s precedes %s: %w",
				i, d.Date.Format("2006-01-02"), daily[i-1].Date.Format("2006-01-02"), ports.ErrUnsortedInput)
		}

		if current == nil || !domain.SameMonth(current.Period, d.Date) {
			series = append(series, domain.MonthlyRecord{
				Period: domain.MonthEnd(d.Date),
				Open:   d.Open,
				High:   d.High,
				Low:    d.Low,
				Close:  d.Close,
			})
			current = &series[len(series)-1]
			continue
		}

		current.High = math.Max(current.High, d.High)
		current.Low = math.Min(current.Low, d.Low)
		current.Close = d.Close
	}

	return series, nil
}
