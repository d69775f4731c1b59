package services

import "time"

// Window is a calendar-month query range, inclusive at both ends to
// millisecond precision (day 1 00:00:00.000 through last day 23:59:59.999).
type Window struct {
	Start time.Time
	End   time.Time
}

// Periods holds the current calendar month and the month immediately before
// it, both derived from the same reference instant.
type Periods struct {
	Current  Window
	Previous Window
}

// MonthWindow is a Window carrying display labels for the trend series.
type MonthWindow struct {
	Window
	Label string
	Year  int
}

// MonthOf returns the calendar-month window containing the given instant.
func MonthOf(ref time.Time) Window {
	start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	return Window{
		Start: start,
		End:   start.AddDate(0, 1, 0).Add(-time.Millisecond),
	}
}

// ResolvePeriods computes the current and previous month windows for a
// reference instant. time.Date normalizes out-of-range months, so January
// correctly rolls back to December of the prior year.
func ResolvePeriods(ref time.Time) Periods {
	return Periods{
		Current:  MonthOf(ref),
		Previous: MonthOf(time.Date(ref.Year(), ref.Month()-1, 1, 0, 0, 0, 0, ref.Location())),
	}
}

// TrailingMonths returns count consecutive month windows ending at the month
// containing ref, oldest first.
func TrailingMonths(ref time.Time, count int) []MonthWindow {
	months := make([]MonthWindow, 0, count)
	for i := count - 1; i >= 0; i-- {
		start := time.Date(ref.Year(), ref.Month()-time.Month(i), 1, 0, 0, 0, 0, ref.Location())
		months = append(months, MonthWindow{
			Window: MonthOf(start),
			Label:  start.Format("Jan"),
			Year:   start.Year(),
		})
	}
	return months
}
