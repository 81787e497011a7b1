// Package csvsink writes one result CSV per ticker.
package csvsink

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"monthlyBars/internal/domain"
	"monthlyBars/internal/ports"
)

// Header is the column layout of every result file.
var Header = []string{"date", "open", "high", "low", "close", "sma_10", "sma_20", "ema_10", "ema_20"}

// Sink implements ports.MonthlyWriter with files named result_<ticker>.csv.
type Sink struct {
	dir    string
	logger ports.Logger
}

// Config holds configuration for the CSV sink.
type Config struct {
	Dir    string
	Logger ports.Logger
}

// New creates a CSV sink. The output directory is created on first write.
func New(cfg Config) (*Sink, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for CSV sink")
	}
	dir := cfg.Dir
	if dir == "" {
		dir = "output"
	}
	return &Sink{dir: dir, logger: cfg.Logger}, nil
}

// Name identifies the sink in logs.
func (s *Sink) Name() string { return "csv" }

// Path returns the result file location for ticker.
func (s *Sink) Path(ticker string) string {
	return filepath.Join(s.dir, fmt.Sprintf("result_%s.csv", ticker))
}

// Write creates or overwrites the ticker's result file.
func (s *Sink) Write(ctx context.Context, ticker string, series []domain.MonthlyRecord) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory '%s': %w", s.dir, err)
	}

	path := s.Path(ticker)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create '%s': %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("failed to write header to '%s': %w", path, err)
	}
	for _, r := range series {
		if err := writer.Write(row(r)); err != nil {
			return fmt.Errorf("failed to write row %s to '%s': %w", r.Period.Format("2006-01-02"), path, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush '%s': %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close '%s': %w", path, err)
	}

	s.logger.Debug(ctx, "Result file written", map[string]interface{}{"path": path, "rows": len(series)})
	return nil
}

func row(r domain.MonthlyRecord) []string {
	return []string{
		r.Period.Format("2006-01-02"),
		formatFloat(r.Open),
		formatFloat(r.High),
		formatFloat(r.Low),
		formatFloat(r.Close),
		formatNullable(r.SMA10),
		formatNullable(r.SMA20),
		formatNullable(r.EMA10),
		formatNullable(r.EMA20),
	}
}

// formatFloat prints the shortest round-trip form, always with a fractional part.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func formatNullable(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}
