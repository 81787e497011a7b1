package ports

import (
	"context"

	"monthlyBars/internal/domain"
)

// DailySource loads the daily price table and groups it by ticker.
type DailySource interface {
	// Load returns every ticker's daily records, each slice sorted by date ascending.
	Load(ctx context.Context) (map[string][]domain.DailyRecord, error)
}

// MonthlyWriter persists the finished monthly series of a single ticker.
type MonthlyWriter interface {
	// Write stores the series, replacing anything previously stored for the ticker.
	Write(ctx context.Context, ticker string, series []domain.MonthlyRecord) error
	// Name identifies the sink in logs (e.g., "csv", "sqlite").
	Name() string
}
