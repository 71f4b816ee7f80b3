// File: models/unavailable_period.go
package models

import (
	"fmt"
	"time"

	"meetcal/timeutil"
)

// UnavailablePeriod represents a datetime period that is closed for booking.
type UnavailablePeriod struct {
	ID        string    `bson:"id" json:"id"`
	Start     time.Time `bson:"start" json:"start"`
	End       time.Time `bson:"end" json:"end"`
	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updated_at"`
}

// Validate enforces start strictly before end on the same calendar day.
func (p *UnavailablePeriod) Validate() error {
	if !p.Start.Before(p.End) {
		return fmt.Errorf("unavailable period: end must be after start")
	}
	if p.Start.Format("2006-01-02") != p.End.Format("2006-01-02") {
		return fmt.Errorf("unavailable period: start and end must be on the same day")
	}
	return nil
}

// DateKey returns the period's calendar date in tz.
func (p *UnavailablePeriod) DateKey(tz *time.Location) timeutil.DateKey {
	return timeutil.DateKeyOf(p.Start.In(tz))
}

// TimePeriod returns the period's start and end as wall-clock times in tz.
func (p *UnavailablePeriod) TimePeriod(tz *time.Location) TimeRange {
	start := p.Start.In(tz)
	end := p.End.In(tz)
	return TimeRange{
		Start: timeutil.TimeOfDay{Hour: start.Hour(), Minute: start.Minute()},
		End:   timeutil.TimeOfDay{Hour: end.Hour(), Minute: end.Minute()},
	}
}
