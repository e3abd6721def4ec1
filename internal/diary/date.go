// Package diary maps calendar dates to entry files under a diary root.
package diary

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DateLayout is the only accepted textual form of a date argument.
const DateLayout = "2006-01-02"

// MaxYear keeps dates well inside the range time.Time can represent.
const MaxYear = 999_999_999

// Date is a calendar day that exists in the proleptic Gregorian calendar.
type Date struct {
	Year  int
	Month int
	Day   int
}

// InvalidDateError reports a date argument that is malformed or names a day
// that does not exist.
type InvalidDateError struct {
	Input  string
	Reason string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %q (expected YYYY-MM-DD): %s", e.Input, e.Reason)
}

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}

// Today returns the current UTC date, sampling clock exactly once.
func Today(clock Clock) Date {
	if clock == nil {
		clock = SystemClock{}
	}
	now := clock.Now().UTC()
	return Date{Year: now.Year(), Month: int(now.Month()), Day: now.Day()}
}

// ParseDate parses raw as YYYY-MM-DD and rejects days that do not exist.
func ParseDate(raw string) (Date, error) {
	fields := strings.Split(raw, "-")
	if len(fields) != 3 {
		return Date{}, &InvalidDateError{Input: raw, Reason: fmt.Sprintf("expected 3 fields, got %d", len(fields))}
	}

	var nums [3]int
	for i, field := range fields {
		if !allDigits(field) || !validWidth(i, field) {
			return Date{}, &InvalidDateError{Input: raw, Reason: fmt.Sprintf("field %q has the wrong width or is not a number", field)}
		}
		n, err := strconv.Atoi(field)
		if err != nil {
			return Date{}, &InvalidDateError{Input: raw, Reason: err.Error()}
		}
		nums[i] = n
	}

	d := Date{Year: nums[0], Month: nums[1], Day: nums[2]}
	if err := d.Validate(); err != nil {
		return Date{}, &InvalidDateError{Input: raw, Reason: err.Error()}
	}

	return d, nil
}

// Validate checks that d names a real day.
func (d Date) Validate() error {
	rules := []*validation.FieldRules{
		validation.Field(&d.Year, validation.Min(0), validation.Max(MaxYear)),
		validation.Field(&d.Month, validation.Required, validation.Min(1), validation.Max(12)),
	}
	if d.Month >= 1 && d.Month <= 12 {
		rules = append(rules, validation.Field(&d.Day, validation.Required, validation.Min(1), validation.Max(DaysIn(d.Year, d.Month))))
	} else {
		rules = append(rules, validation.Field(&d.Day, validation.Required, validation.Min(1)))
	}
	return validation.ValidateStruct(&d, rules...)
}

// DaysIn returns the number of days in month of year, accounting for leap years.
func DaysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Time returns midnight UTC at the start of d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// validWidth checks field i of a date: the year has at least 4 digits, month and day exactly 2.
func validWidth(i int, field string) bool {
	if i == 0 {
		return len(field) >= 4
	}
	return len(field) == 2
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
