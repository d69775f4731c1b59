package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthOfBoundaries(t *testing.T) {
	ref := time.Date(2024, time.January, 15, 10, 30, 0, 0, time.UTC)
	w := MonthOf(ref)

	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2024, time.January, 31, 23, 59, 59, 999000000, time.UTC), w.End)
}

func TestMonthOfLeapFebruary(t *testing.T) {
	w := MonthOf(time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2024, time.February, 29, 23, 59, 59, 999000000, time.UTC), w.End)
}

func TestResolvePeriodsYearRollover(t *testing.T) {
	ref := time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)
	p := ResolvePeriods(ref)

	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), p.Current.Start)
	assert.Equal(t, time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC), p.Previous.Start)
	assert.Equal(t, time.Date(2023, time.December, 31, 23, 59, 59, 999000000, time.UTC), p.Previous.End)
}

func TestResolvePeriodsMidYear(t *testing.T) {
	ref := time.Date(2024, time.July, 4, 0, 0, 0, 0, time.UTC)
	p := ResolvePeriods(ref)

	assert.Equal(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), p.Previous.Start)
	assert.Equal(t, time.Date(2024, time.June, 30, 23, 59, 59, 999000000, time.UTC), p.Previous.End)
}

func TestTrailingMonthsCountAndOrder(t *testing.T) {
	ref := time.Date(2024, time.March, 20, 8, 0, 0, 0, time.UTC)
	months := TrailingMonths(ref, 6)

	assert.Len(t, months, 6)

	// Oldest first, spanning the year boundary.
	assert.Equal(t, "Oct", months[0].Label)
	assert.Equal(t, 2023, months[0].Year)
	assert.Equal(t, "Nov", months[1].Label)
	assert.Equal(t, "Dec", months[2].Label)
	assert.Equal(t, 2023, months[2].Year)
	assert.Equal(t, "Jan", months[3].Label)
	assert.Equal(t, 2024, months[3].Year)
	assert.Equal(t, "Feb", months[4].Label)
	assert.Equal(t, "Mar", months[5].Label)
	assert.Equal(t, 2024, months[5].Year)

	for i := 1; i < len(months); i++ {
		assert.True(t, months[i].Start.After(months[i-1].End), "windows must be consecutive and ordered")
	}

	// Last window is the month containing the reference instant.
	assert.Equal(t, MonthOf(ref), months[5].Window)
}
