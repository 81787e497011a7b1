package utils

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"monthlyBars/internal/domain"
)

// WriteDailyRecordsToCSV writes records in the layout the batch run loads:
// ticker,date,open,high,low,close.
func WriteDailyRecordsToCSV(records []domain.DailyRecord, filename string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("failed to create directory for '%s': %w", filename, err)
	}
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	// Write header
	if err := writer.Write([]string{"ticker", "date", "open", "high", "low", "close"}); err != nil {
		return err
	}

	for _, r := range records {
		err := writer.Write([]string{
			r.Ticker,
			r.Date.Format("2006-01-02"),
			strconv.FormatFloat(r.Open, 'f', -1, 64),
			strconv.FormatFloat(r.High, 'f', -1, 64),
			strconv.FormatFloat(r.Low, 'f', -1, 64),
			strconv.FormatFloat(r.Close, 'f', -1, 64),
		})
		if err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
