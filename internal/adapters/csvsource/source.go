// Package csvsource loads the daily price table from a CSV file.
package csvsource

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"monthlyBars/internal/domain"
	"monthlyBars/internal/ports"
)

// RequiredColumns are the header names the input file must contain.
var RequiredColumns = []string{"ticker", "date", "open", "high", "low", "close"}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// Source implements ports.DailySource over a CSV file.
type Source struct {
	path   string
	logger ports.Logger
}

// Config holds configuration for the CSV source.
type Config struct {
	Path   string
	Logger ports.Logger
}

// New creates a CSV source.
func New(cfg Config) (*Source, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for CSV source")
	}
	if cfg.Path == "" {
		return nil, fmt.Errorf("input path is required: %w", ports.ErrConfigurationError)
	}
	return &Source{path: cfg.Path, logger: cfg.Logger}, nil
}

// Load reads the whole file and groups rows by ticker, each group sorted by date.
func (s *Source) Load(ctx context.Context) (map[string][]domain.DailyRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input '%s': %w", s.path, err)
	}
	defer f.Close()

	grouped, rows, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load '%s': %w", s.path, err)
	}
	s.logger.Info(ctx, "Daily records loaded", map[string]interface{}{
		"path":    s.path,
		"rows":    rows,
		"tickers": len(grouped),
	})
	return grouped, nil
}

// Parse reads CSV data with a header row and returns the records grouped by
// ticker along with the number of data rows read.
func Parse(r io.Reader) (map[string][]domain.DailyRecord, int, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, 0, fmt.Errorf("empty input, expected header: %w", ports.ErrMissingColumn)
		}
		return nil, 0, fmt.Errorf("failed to read header: %w", err)
	}
	idx, err := columnIndex(header)
	if err != nil {
		return nil, 0, err
	}

	grouped := make(map[string][]domain.DailyRecord)
	rows := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to read row: %w", err)
		}
		line, _ := reader.FieldPos(0)

		d, err := parseRow(record, idx)
		if err != nil {
			return nil, 0, fmt.Errorf("line %d: %w", line, err)
		}
		grouped[d.Ticker] = append(grouped[d.Ticker], d)
		rows++
	}

	for ticker := range grouped {
		records := grouped[ticker]
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Date.Before(records[j].Date)
		})
	}
	return grouped, rows, nil
}

func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		// A UTF-8 BOM sometimes prefixes the first header cell
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, seen := idx[name]; !seen {
			idx[name] = i
		}
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%s: %w", strings.Join(missing, ", "), ports.ErrMissingColumn)
	}
	return idx, nil
}

func parseRow(record []string, idx map[string]int) (domain.DailyRecord, error) {
	field := func(col string) string {
		i := idx[col]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	ticker := field("ticker")
	if ticker == "" {
		return domain.DailyRecord{}, fmt.Errorf("empty ticker: %w", ports.ErrInvalidRequest)
	}

	date, err := ParseDate(field("date"))
	if err != nil {
		return domain.DailyRecord{}, err
	}

	var prices [4]float64
	for i, col := range []string{"open", "high", "low", "close"} {
		raw := field(col)
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return domain.DailyRecord{}, fmt.Errorf("%s %q: %w", col, raw, ports.ErrInvalidPrice)
		}
		prices[i] = v
	}

	return domain.DailyRecord{
		Ticker: ticker,
		Date:   date,
		Open:   prices[0],
		High:   prices[1],
		Low:    prices[2],
		Close:  prices[3],
	}, nil
}

// ParseDate accepts a plain date, a date with time, or RFC3339 and returns
// the calendar date at UTC midnight.
func ParseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("%q: %w", raw, ports.ErrInvalidDate)
}
