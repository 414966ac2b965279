// Package calendar models the in-game date: a year and a day of year that
// wraps from 365 back to 1.
package calendar

import (
	"fmt"
	"strconv"
	"strings"
)

// DaysPerYear is the length of a game year.
const DaysPerYear = 365

// Date is a game date.
type Date struct {
	Year int `json:"year"`
	Day  int `json:"day"` // 1..365
}

// New returns the first day of year.
func New(year int) Date {
	return Date{Year: year, Day: 1}
}

// Next returns the following day.
func (d Date) Next() Date {
	d.Day++
	if d.Day > DaysPerYear {
		d.Day = 1
		d.Year++
	}
	return d
}

// AddDays advances n days. Negative n is ignored.
func (d Date) AddDays(n int) Date {
	for i := 0; i < n; i++ {
		d = d.Next()
	}
	return d
}

// Ordinal counts days from year 0, used for ordering and comparisons.
func (d Date) Ordinal() int {
	return d.Year*DaysPerYear + d.Day - 1
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return d.Ordinal() < other.Ordinal()
}

// Valid reports whether the day lies inside 1..365.
func (d Date) Valid() bool {
	return d.Day >= 1 && d.Day <= DaysPerYear
}

// String formats the date as YYYY-DDD.
func (d Date) String() string {
	return fmt.Sprintf("%d-%03d", d.Year, d.Day)
}

// Parse reads a date written as YYYY-DDD.
func Parse(s string) (Date, error) {
	year, day, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return Date{}, fmt.Errorf("invalid date %q: want YYYY-DDD", s)
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return Date{}, fmt.Errorf("invalid year in %q: %w", s, err)
	}
	d, err := strconv.Atoi(day)
	if err != nil {
		return Date{}, fmt.Errorf("invalid day in %q: %w", s, err)
	}
	date := Date{Year: y, Day: d}
	if !date.Valid() {
		return Date{}, fmt.Errorf("day %d of %q outside 1..%d", d, s, DaysPerYear)
	}
	return date, nil
}
