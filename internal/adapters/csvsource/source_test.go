package csvsource

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"monthlyBars/internal/ports"

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

func TestParse_GroupsAndSorts(t *testing.T) {
	input := `date,ticker,open,high,low,close,volume
2023-01-04,ABC,11,15,10,14,100
2023-01-03,ABC,10,12,9,11,200
2023-01-03,XYZ,1,2,0.5,1.5,300
`
	grouped, rows, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 3, rows)
	require.Len(t, grouped, 2)

	abc := grouped["ABC"]
	require.Len(t, abc, 2)
	assert.Equal(t, time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC), abc[0].Date)
	assert.Equal(t, 10.0, abc[0].Open)
	assert.Equal(t, 14.0, abc[1].Close)

	xyz := grouped["XYZ"]
	require.Len(t, xyz, 1)
	assert.Equal(t, "XYZ", xyz[0].Ticker)
	assert.Equal(t, 0.5, xyz[0].Low)
}

func TestParse_HeaderIsCaseInsensitive(t *testing.T) {
	input := "\ufeffTicker, Date ,OPEN,High,Low,Close\nABC,2023-02-01,1,2,0.5,1.5\n"
	grouped, _, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, grouped["ABC"], 1)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:    "empty file",
			input:   "",
			wantErr: ports.ErrMissingColumn,
		},
		{
			name:    "missing close column",
			input:   "ticker,date,open,high,low\nABC,2023-01-03,1,2,0.5\n",
			wantErr: ports.ErrMissingColumn,
		},
		{
			name:    "unparseable date",
			input:   "ticker,date,open,high,low,close\nABC,03/01/2023,1,2,0.5,1.5\n",
			wantErr: ports.ErrInvalidDate,
		},
		{
			name:    "unparseable price",
			input:   "ticker,date,open,high,low,close\nABC,2023-01-03,1,abc,0.5,1.5\n",
			wantErr: ports.ErrInvalidPrice,
		},
		{
			name:    "NaN price",
			input:   "ticker,date,open,high,low,close\nABC,2023-01-03,1,2,NaN,1.5\n",
			wantErr: ports.ErrInvalidPrice,
		},
		{
			name:    "empty ticker",
			input:   "ticker,date,open,high,low,close\n,2023-01-03,1,2,0.5,1.5\n",
			wantErr: ports.ErrInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Parse(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2023, 5, 17, 0, 0, 0, 0, time.UTC)
	for _, raw := range []string{"2023-05-17", "2023-05-17 16:00:00", "2023-05-17T09:30:00Z"} {
		got, err := ParseDate(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	_, err := ParseDate("17.05.2023")
	assert.ErrorIs(t, err, ports.ErrInvalidDate)
}

func TestSource_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daily.csv")
	require.NoError(t, os.WriteFile(path, []byte("ticker,date,open,high,low,close\nABC,2023-01-03,1,2,0.5,1.5\n"), 0644))

	src, err := New(Config{Path: path, Logger: &mockLogger{}})
	require.NoError(t, err)

	grouped, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, grouped["ABC"], 1)
}

func TestSource_LoadMissingFile(t *testing.T) {
	src, err := New(Config{Path: filepath.Join(t.TempDir(), "absent.csv"), Logger: &mockLogger{}})
	require.NoError(t, err)

	_, err = src.Load(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Config{Path: "x.csv"})
	assert.Error(t, err)

	_, err = New(Config{Logger: &mockLogger{}})
	assert.ErrorIs(t, err, ports.ErrConfigurationError)
}
