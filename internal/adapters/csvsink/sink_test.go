package csvsink

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"monthlyBars/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLogger implements ports.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {}
func (m *mockLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
}

func ptr(v float64) *float64 { return &v }

func TestSink_Write(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "output")
	sink, err := New(Config{Dir: dir, Logger: &mockLogger{}})
	require.NoError(t, err)

	series := []domain.MonthlyRecord{
		{Period: time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC), Open: 10, High: 15.25, Low: 8, Close: 13, EMA10: ptr(13), EMA20: ptr(13)},
		{Period: time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC), Open: 13, High: 14, Low: 12.5, Close: 12, SMA10: ptr(12.5), SMA20: ptr(0.1), EMA10: ptr(12.818181818181818), EMA20: ptr(12.904761904761905)},
	}
	require.NoError(t, sink.Write(context.Background(), "ABC", series))

	path := filepath.Join(dir, "result_ABC.csv")
	assert.Equal(t, path, sink.Path("ABC"))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, []string{"2023-01-31", "10.0", "15.25", "8.0", "13.0", "", "", "13.0", "13.0"}, rows[1])
	assert.Equal(t, []string{"2023-02-28", "13.0", "14.0", "12.5", "12.0", "12.5", "0.1", "12.818181818181818", "12.904761904761905"}, rows[2])
}

func TestSink_WriteIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	sink, err := New(Config{Dir: dir, Logger: &mockLogger{}})
	require.NoError(t, err)

	series := []domain.MonthlyRecord{
		{Period: time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC), Open: 1, High: 2, Low: 0.5, Close: 1.5, EMA10: ptr(1.5), EMA20: ptr(1.5)},
	}
	ctx := context.Background()

	require.NoError(t, sink.Write(ctx, "ABC", series))
	first, err := os.ReadFile(sink.Path("ABC"))
	require.NoError(t, err)

	require.NoError(t, sink.Write(ctx, "ABC", series))
	second, err := os.ReadFile(sink.Path("ABC"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSink_Defaults(t *testing.T) {
	sink, err := New(Config{Logger: &mockLogger{}})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("output", "result_X.csv"), sink.Path("X"))
	assert.Equal(t, "csv", sink.Name())

	_, err = New(Config{Dir: "out"})
	assert.Error(t, err)
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "100.0", formatFloat(100))
	assert.Equal(t, "-3.0", formatFloat(-3))
	assert.Equal(t, "0.25", formatFloat(0.25))
	assert.Equal(t, "", formatNullable(nil))
}
