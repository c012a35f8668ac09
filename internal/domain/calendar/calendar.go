// Package calendar implements day-grained civil-calendar arithmetic used by
// the deposit emulator to compute capitalization dates. There is no
// time-of-day component anywhere in this package; every Date is truncated to
// UTC midnight on construction.
package calendar

import (
	"fmt"
	"time"
)

// Date is a day-grained calendar date.
type Date struct {
	t time.Time
}

// NewDate constructs a Date, truncating any time-of-day component.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime truncates t to a Date at UTC midnight.
func FromTime(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return NewDate(y, m, d)
}

// Year, Month, Day return the civil components.
func (d Date) Year() int         { return d.t.Year() }
func (d Date) Month() time.Month { return d.t.Month() }
func (d Date) Day() int          { return d.t.Day() }

// Time returns the underlying UTC-midnight time.Time.
func (d Date) Time() time.Time { return d.t }

// Before, After, Equal compare two dates.
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) After(o Date) bool  { return d.t.After(o.t) }
func (d Date) Equal(o Date) bool  { return d.t.Equal(o.t) }

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

// DaysUntil returns the number of days from d to o (may be negative).
func (d Date) DaysUntil(o Date) int {
	return int(o.t.Sub(d.t).Hours() / 24)
}

// IsLastDayOfMonth reports whether d is the final calendar day of its month.
func (d Date) IsLastDayOfMonth() bool {
	return d.AddDays(1).Month() != d.Month()
}

func (d Date) String() string { return d.t.Format("2006-01-02") }

// Min, Max return the earlier/later of two dates.
func Min(a, b Date) Date {
	if a.Before(b) {
		return a
	}
	return b
}

func Max(a, b Date) Date {
	if a.After(b) {
		return a
	}
	return b
}

// ErrInvalidCapitalizationDate is returned when NextCapitalizationDate's
// precondition on current.Day() is violated.
type ErrInvalidCapitalizationDate struct {
	Current           Date
	CapitalizationDay int
}

func (e *ErrInvalidCapitalizationDate) Error() string {
	return fmt.Sprintf("invalid capitalization date: day %d does not satisfy capitalization day %d for %s",
		e.Current.Day(), e.CapitalizationDay, e.Current)
}

// NextYearMonth returns (year, month) advanced by one month, wrapping
// December into January of the following year.
func NextYearMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}

// lastDayOfMonth returns the last calendar day of the given year/month.
func lastDayOfMonth(year int, month time.Month) int {
	firstOfNext := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC)
	lastOfThis := firstOfNext.AddDate(0, 0, -1)
	return lastOfThis.Day()
}

// NextCapitalizationDate computes the next capitalization date after
// current, given a day-of-month on which capitalization falls.
//
// Precondition: current.Day() == capitalizationDay, OR current.Day() <
// capitalizationDay and current is the last day of its month (the
// end-of-month fallback for short months). Any other input is rejected with
// ErrInvalidCapitalizationDate.
//
// The result is capitalizationDay of the next month; if that day does not
// exist in the next month (e.g. February 30), the result clamps to the last
// day of the next month.
func NextCapitalizationDate(current Date, capitalizationDay int) (Date, error) {
	if capitalizationDay < 1 || capitalizationDay > 31 {
		return Date{}, &ErrInvalidCapitalizationDate{Current: current, CapitalizationDay: capitalizationDay}
	}

	validExact := current.Day() == capitalizationDay
	validEndOfMonth := current.Day() < capitalizationDay && current.IsLastDayOfMonth()
	if !validExact && !validEndOfMonth {
		return Date{}, &ErrInvalidCapitalizationDate{Current: current, CapitalizationDay: capitalizationDay}
	}

	nextYear, nextMonth := NextYearMonth(current.Year(), current.Month())
	day := capitalizationDay
	if last := lastDayOfMonth(nextYear, nextMonth); day > last {
		day = last
	}
	return NewDate(nextYear, nextMonth, day), nil
}
