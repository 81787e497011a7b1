package domain

import "time"

// MonthlyRecord is the OHLC summary of one calendar month for a ticker,
// together with the moving averages of the monthly close.
// Indicator fields are nil until enough history exists.
type MonthlyRecord struct {
	Period time.Time // Last calendar day of the month, UTC midnight
	Open   float64   // Open of the first trading day in the month
	High   float64   // Highest high in the month
	Low    float64   // Lowest low in the month
	Close  float64   // Close of the last trading day in the month

	SMA10 *float64
	SMA20 *float64
	EMA10 *float64
	EMA20 *float64
}

// MonthEnd returns the last calendar day of t's month at UTC midnight.
func MonthEnd(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC)
}

// SameMonth reports whether a and b fall in the same calendar month.
func SameMonth(a, b time.Time) bool {
	ay, am, _ := a.Date()
	by, bm, _ := b.Date()
	return ay == by && am == bm
}

// Closes extracts the close prices of a monthly series.
func Closes(series []MonthlyRecord) []float64 {
	closes := make([]float64, len(series))
	for i, r := range series {
		closes[i] = r.Close
	}
	return closes
}
