package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hkbk-garden/plant-catalog/pkg/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 30, 0, 0, time.UTC)
}

func TestFormatAge(t *testing.T) {
	today := day(2024, time.June, 15)

	tests := []struct {
		name  string
		date  *string
		want  int
		known bool
	}{
		{"anniversary not yet reached", models.StringPtr("2023-06-16"), 0, true},
		{"anniversary today", models.StringPtr("2020-06-15"), 4, true},
		{"anniversary passed", models.StringPtr("2020-06-14"), 4, true},
		{"earlier month", models.StringPtr("2019-01-31"), 5, true},
		{"later month", models.StringPtr("2019-12-01"), 4, true},
		{"planted today", models.StringPtr("2024-06-15"), 0, true},
		{"future date is negative", models.StringPtr("2026-07-01"), -3, true},
		{"timestamp layout", models.StringPtr("2021-03-04T08:00:00Z"), 3, true},
		{"absent", nil, 0, false},
		{"blank", models.StringPtr("  "), 0, false},
		{"unreadable", models.StringPtr("last spring"), 0, false},
		{"day-first dates are ambiguous", models.StringPtr("02/10/2015"), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatAge(tt.date, today)
			assert.Equal(t, tt.known, got.Known)
			assert.Equal(t, tt.want, got.Years)
		})
	}
}

func TestFormatAge_OneYearMinusOneDay(t *testing.T) {
	today := day(2025, time.March, 10)
	planted := today.AddDate(-1, 0, 1).Format(time.DateOnly)

	got := FormatAge(&planted, today)

	naive := today.Year() - (today.Year() - 1)
	assert.Equal(t, naive-1, got.Years)
}

func TestFormatAge_LeapDay(t *testing.T) {
	planted := models.StringPtr("2020-02-29")

	assert.Equal(t, 0, FormatAge(planted, day(2021, time.February, 28)).Years)
	assert.Equal(t, 1, FormatAge(planted, day(2021, time.March, 1)).Years)
}

func TestAge_String(t *testing.T) {
	assert.Equal(t, Placeholder, Age{}.String())
	assert.Equal(t, "0", Age{Known: true}.String())
	assert.Equal(t, "-2", Age{Years: -2, Known: true}.String())
	assert.True(t, Age{Years: -2, Known: true}.NotYetPlanted())
	assert.False(t, Age{}.NotYetPlanted())
}
