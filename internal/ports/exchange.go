package ports

import (
	"context"
	"time"

	"monthlyBars/internal/domain"
)

// KlineFetcher retrieves historical daily candles from an exchange.
// It is used to build input files for the batch run, never by the run itself.
type KlineFetcher interface {
	// GetDailyRecords fetches all daily candles for symbol with open time in [start, end).
	GetDailyRecords(ctx context.Context, symbol string, start, end time.Time) ([]domain.DailyRecord, error)

	// Ping checks the connectivity to the exchange API.
	Ping(ctx context.Context) error
}
