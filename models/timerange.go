package models

import (
	"encoding/json"
	"fmt"

	"meetcal/timeutil"
)

// TimeRange is an ordered pair of wall-clock times with Start <= End. It
// represents either an unavailable block or the span of a booked session.
type TimeRange struct {
	Start timeutil.TimeOfDay
	End   timeutil.TimeOfDay
}

// NewTimeRange builds a range from "HH:MM" strings, enforcing start <= end.
func NewTimeRange(start, end string) (TimeRange, error) {
	s, err := timeutil.ParseTimeOfDay(start)
	if err != nil {
		return TimeRange{}, err
	}
	e, err := timeutil.ParseTimeOfDay(end)
	if err != nil {
		return TimeRange{}, err
	}
	if s.After(e) {
		return TimeRange{}, fmt.Errorf("time range %s-%s: start is after end", start, end)
	}
	return TimeRange{Start: s, End: e}, nil
}

// Contains reports whether t falls within the range, boundaries included.
func (r TimeRange) Contains(t timeutil.TimeOfDay) bool {
	return t.Compare(r.Start) >= 0 && t.Compare(r.End) <= 0
}

func (r TimeRange) String() string {
	return r.Start.String() + "-" + r.End.String()
}

// MarshalJSON encodes the range in its wire form: a two-element
// ["HH:MM","HH:MM"] array.
func (r TimeRange) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{r.Start.String(), r.End.String()})
}

// UnmarshalJSON decodes the ["HH:MM","HH:MM"] wire form.
func (r *TimeRange) UnmarshalJSON(data []byte) error {
	var pair [2]string
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("time range: %w", err)
	}
	parsed, err := NewTimeRange(pair[0], pair[1])
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
