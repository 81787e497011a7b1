package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthEnd(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"mid month", time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC), time.Date(2023, 3, 31, 0, 0, 0, 0, time.UTC)},
		{"leap february", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
		{"plain february", time.Date(2023, 2, 10, 0, 0, 0, 0, time.UTC), time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC)},
		{"december rolls year", time.Date(2023, 12, 5, 13, 30, 0, 0, time.UTC), time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)},
		{"already month end", time.Date(2023, 4, 30, 0, 0, 0, 0, time.UTC), time.Date(2023, 4, 30, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MonthEnd(tt.in))
		})
	}
}

func TestSameMonth(t *testing.T) {
	jan1 := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.True(t, SameMonth(jan1, time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC)))
	assert.False(t, SameMonth(jan1, time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, SameMonth(jan1, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestCloses(t *testing.T) {
	series := []MonthlyRecord{{Close: 1}, {Close: 2.5}, {Close: 3}}
	assert.Equal(t, []float64{1, 2.5, 3}, Closes(series))
	assert.Empty(t, Closes(nil))
}
