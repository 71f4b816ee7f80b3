// Package timeutil provides wall-clock time and calendar-date helpers used by
// both the calendar client and the booking backend. Times of day are always
// compared within a single reference date; timezone handling is limited to
// formatting in whatever location the caller supplies.
package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateKey identifies a calendar date in canonical "YYYY-MM-DD" form. It is
// used as the request and cache key for per-date availability data.
type DateKey string

// TimeOfDay is a wall-clock time without a date or timezone attached.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseError reports a malformed time or date string.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q: %s", e.Input, e.Reason)
}

// ParseTimeOfDay parses a string in "HH:MM" form.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return TimeOfDay{}, &ParseError{Input: s, Reason: "expected HH:MM"}
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return TimeOfDay{}, &ParseError{Input: s, Reason: "hour is not numeric"}
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return TimeOfDay{}, &ParseError{Input: s, Reason: "minute is not numeric"}
	}
	if hour < 0 || hour > 23 {
		return TimeOfDay{}, &ParseError{Input: s, Reason: "hour out of range"}
	}
	if minute < 0 || minute > 59 {
		return TimeOfDay{}, &ParseError{Input: s, Reason: "minute out of range"}
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// String formats the time as zero-padded "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Compare orders two times of day lexicographically on (hour, minute).
// It returns -1 when t is before other, 0 when equal, and 1 when after.
func (t TimeOfDay) Compare(other TimeOfDay) int {
	switch {
	case t.Hour < other.Hour:
		return -1
	case t.Hour > other.Hour:
		return 1
	case t.Minute < other.Minute:
		return -1
	case t.Minute > other.Minute:
		return 1
	}
	return 0
}

// Before reports whether t is strictly earlier than other.
func (t TimeOfDay) Before(other TimeOfDay) bool { return t.Compare(other) < 0 }

// After reports whether t is strictly later than other.
func (t TimeOfDay) After(other TimeOfDay) bool { return t.Compare(other) > 0 }

// Minutes returns the time as minutes from midnight.
func (t TimeOfDay) Minutes() int { return t.Hour*60 + t.Minute }

// On combines the time of day with the given date in loc.
func (t TimeOfDay) On(date DateKey, loc *time.Location) (time.Time, error) {
	d, err := ParseDateKey(date)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour, t.Minute, 0, 0, loc), nil
}

// ParseDateKey parses a canonical "YYYY-MM-DD" date key.
func ParseDateKey(key DateKey) (time.Time, error) {
	d, err := time.Parse("2006-01-02", string(key))
	if err != nil {
		return time.Time{}, &ParseError{Input: string(key), Reason: "expected YYYY-MM-DD"}
	}
	return d, nil
}

// FormatDate renders the calendar date of t as zero-padded
// "YYYY{sep}MM{sep}DD".
func FormatDate(t time.Time, sep string) string {
	return fmt.Sprintf("%04d%s%02d%s%02d", t.Year(), sep, int(t.Month()), sep, t.Day())
}

// DateKeyOf returns the canonical date key for t.
func DateKeyOf(t time.Time) DateKey {
	return DateKey(FormatDate(t, "-"))
}

// IsPast reports whether the instant (t on date, in now's location) is
// strictly before now. For a future date this is always false and for a past
// date always true; only on now's own date does the time of day decide.
func IsPast(t TimeOfDay, date DateKey, now time.Time) bool {
	instant, err := t.On(date, now.Location())
	if err != nil {
		return false
	}
	return now.After(instant)
}
