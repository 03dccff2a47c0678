package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// DateLayout is the persisted and accepted text form of a due date.
const DateLayout = "2006-01-02"

// now is a variable that can be replaced in tests
var now = time.Now

var datePattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

// Date is a calendar date without a time component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// IsLeapYear reports whether year is a Gregorian leap year.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysIn returns the number of days in the given month, counting February 29 in leap years.
func DaysIn(year int, month time.Month) int {
	switch month {
	case time.February:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

// NewDate builds a Date, rejecting months and days that do not exist.
func NewDate(year int, month time.Month, day int) (Date, error) {
	if month < time.January || month > time.December {
		return Date{}, fmt.Errorf("month %d out of range (1-12)", int(month))
	}
	if maxDay := DaysIn(year, month); day < 1 || day > maxDay {
		return Date{}, fmt.Errorf("day %d out of range for %s %d (1-%d)", day, month, year, maxDay)
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

// ParseDate parses a strict YYYY-MM-DD string into a valid calendar date.
func ParseDate(s string) (Date, error) {
	matches := datePattern.FindStringSubmatch(s)
	if matches == nil {
		return Date{}, fmt.Errorf("%q is not in YYYY-MM-DD form", s)
	}

	year, _ := strconv.Atoi(matches[1])
	month, _ := strconv.Atoi(matches[2])
	day, _ := strconv.Atoi(matches[3])

	return NewDate(year, time.Month(month), day)
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	year, month, day := t.Date()
	return Date{Year: year, Month: month, Day: day}
}

// Today returns the current local date.
func Today() Date {
	return DateOf(now())
}

// String returns the date in YYYY-MM-DD form.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Time returns local midnight of the date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.Local)
}

// Format formats the date using a Go time layout.
func (d Date) Format(layout string) string {
	return d.Time().Format(layout)
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return DateOf(time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC))
}

// DaysUntil returns the number of days from d to other; negative when other is earlier.
func (d Date) DaysUntil(other Date) int {
	from := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
	to := time.Date(other.Year, other.Month, other.Day, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}
