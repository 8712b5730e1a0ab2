package core

import (
	"fmt"
	"regexp"
	"time"
)

// AddMonths returns the date n months after d, preserving the day of month
// where possible. When the target month is shorter, the day clamps to the
// last valid day of that month (Jan 31 + 1 month = Feb 28, or Feb 29 in a
// leap year). n may be negative.
func AddMonths(d Date, n int) Date {
	year := d.Year()
	month := d.Month() - 1 + n
	year += month / 12
	month = month % 12
	if month < 0 {
		month += 12
		year--
	}
	month++ // back to 1-12

	day := d.Day()
	if last := daysInMonth(year, month); day > last {
		day = last
	}
	return NewDate(year, month, day)
}

// MonthKey returns the canonical "YYYY-MM" key for the month containing d.
// Budgets and monthly aggregates are keyed by this value.
func MonthKey(d Date) string {
	return fmt.Sprintf("%04d-%02d", d.Year(), d.Month())
}

var monthKeyRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// ValidMonthKey reports whether s has the "YYYY-MM" shape.
func ValidMonthKey(s string) bool {
	return monthKeyRe.MatchString(s)
}

// MonthBounds returns the first and last calendar day of the month named by
// a "YYYY-MM" key.
func MonthBounds(key string) (Date, Date, error) {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return Date{}, Date{}, ErrInvalidMonth
	}
	first := NewDate(t.Year(), int(t.Month()), 1)
	last := NewDate(t.Year(), int(t.Month()), daysInMonth(t.Year(), int(t.Month())))
	return first, last, nil
}

func daysInMonth(year, month int) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
