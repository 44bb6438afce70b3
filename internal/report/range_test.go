package report_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/ledgerd/internal/report"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewRange(t *testing.T) {
	_, err := report.NewRange(date(2024, 2, 1), date(2024, 1, 1))
	assert.ErrorIs(t, err, report.ErrInvalidRange)

	rng, err := report.NewRange(date(2024, 1, 1), date(2024, 1, 1))
	require.NoError(t, err)
	assert.True(t, rng.Contains(date(2024, 1, 1)))
}

func TestMonthRange(t *testing.T) {
	rng := report.MonthRange(2024, time.February)

	assert.Equal(t, date(2024, 2, 1), rng.Start)
	assert.Equal(t, date(2024, 2, 29), rng.End) // leap year
}

func TestQuarterRange(t *testing.T) {
	rng, err := report.QuarterRange(2024, 2)
	require.NoError(t, err)
	assert.Equal(t, date(2024, 4, 1), rng.Start)
	assert.Equal(t, date(2024, 6, 30), rng.End)

	_, err = report.QuarterRange(2024, 0)
	assert.ErrorIs(t, err, report.ErrInvalidRange)

	_, err = report.QuarterRange(2024, 5)
	assert.ErrorIs(t, err, report.ErrInvalidRange)
}

func TestYearRange(t *testing.T) {
	rng := report.YearRange(2023)

	assert.Equal(t, date(2023, 1, 1), rng.Start)
	assert.Equal(t, date(2023, 12, 31), rng.End)
}

func TestYearToDate(t *testing.T) {
	rng := report.YearToDate(2024, date(2024, 3, 15))
	assert.Equal(t, date(2024, 1, 1), rng.Start)
	assert.Equal(t, date(2024, 3, 15), rng.End)

	// asOf past year end stays capped
	rng = report.YearToDate(2024, date(2025, 6, 1))
	assert.Equal(t, date(2024, 12, 31), rng.End)
}

func TestRange_Contains(t *testing.T) {
	rng := report.MonthRange(2024, time.January)

	assert.True(t, rng.Contains(date(2024, 1, 1)))
	assert.True(t, rng.Contains(date(2024, 1, 31)))
	assert.False(t, rng.Contains(date(2023, 12, 31)))
	assert.False(t, rng.Contains(date(2024, 2, 1)))
}
