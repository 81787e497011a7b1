package domain

import "time"

// DailyRecord represents one trading day of prices for a ticker.
type DailyRecord struct {
	Ticker string    // Instrument identifier (e.g., "ABC")
	Date   time.Time // Trading day, UTC midnight
	Open   float64   // Opening price
	High   float64   // Highest price of the day
	Low    float64   // Lowest price of the day
	Close  float64   // Closing price
}
