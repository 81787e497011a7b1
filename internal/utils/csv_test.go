package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"monthlyBars/internal/adapters/csvsource"
	"monthlyBars/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDailyRecordsToCSV_ReadableByLoader(t *testing.T) {
	records := []domain.DailyRecord{
		{Ticker: "ETHUSDT", Date: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), Open: 1200.5, High: 1210, Low: 1190.25, Close: 1205},
		{Ticker: "ETHUSDT", Date: time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC), Open: 1205, High: 1230, Low: 1201, Close: 1225.75},
	}
	path := filepath.Join(t.TempDir(), "data", "daily.csv")

	require.NoError(t, WriteDailyRecordsToCSV(records, path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	grouped, rows, err := csvsource.Parse(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 2, rows)
	assert.Equal(t, records, grouped["ETHUSDT"])
}
