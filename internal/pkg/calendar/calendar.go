package calendar

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDate is returned for a (year, month) pair outside the supported range.
var ErrInvalidDate = errors.New("invalid calendar date")

// WeeklyOff is the designated weekly off day.
const WeeklyOff = time.Sunday

// ValidateMonth checks that year is in 1..9999 and month in 1..12.
func ValidateMonth(year, month int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month %d out of range", ErrInvalidDate, month)
	}
	if year < 1 || year > 9999 {
		return fmt.Errorf("%w: year %d out of range", ErrInvalidDate, year)
	}
	return nil
}

// DaysInMonth returns the number of calendar days in the month.
func DaysInMonth(year, month int) (int, error) {
	if err := ValidateMonth(year, month); err != nil {
		return 0, err
	}
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day(), nil
}

// WorkingDays counts the days of the month that do not fall on the weekly off.
// Holidays are not taken into account.
func WorkingDays(year, month int) (int, error) {
	days, err := DaysInMonth(year, month)
	if err != nil {
		return 0, err
	}

	working := 0
	for day := 1; day <= days; day++ {
		if time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Weekday() != WeeklyOff {
			working++
		}
	}
	return working, nil
}

// MonthName returns the English month name, e.g. "February".
func MonthName(month int) string {
	return time.Month(month).String()
}

// Label returns the "<Month> <Year>" label printed on payroll documents.
func Label(year, month int) string {
	return fmt.Sprintf("%s %d", MonthName(month), year)
}

// PreviousMonth returns the month before the one containing t.
func PreviousMonth(t time.Time) (year, month int) {
	prev := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, -1, 0)
	return prev.Year(), int(prev.Month())
}
