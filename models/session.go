// File: models/session.go
package models

import (
	"fmt"
	"time"

	"meetcal/timeutil"
)

// Session represents a booked meeting session.
type Session struct {
	ID        string    `bson:"id" json:"id"`
	Title     string    `bson:"title" json:"title"`
	Start     time.Time `bson:"start" json:"start"`
	End       time.Time `bson:"end" json:"end"`
	BookedBy  string    `bson:"bookedBy" json:"booked_by"`
	Link      string    `bson:"link,omitempty" json:"link,omitempty"`
	Pending   bool      `bson:"pending" json:"pending"`
	Cancelled bool      `bson:"cancelled" json:"cancelled"`
	Held      bool      `bson:"held" json:"held"`
	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updated_at"`
}

// Validate enforces the session invariants: start strictly before end, both
// on the same calendar day.
func (s *Session) Validate() error {
	if !s.Start.Before(s.End) {
		return fmt.Errorf("session %q: end must be after start", s.Title)
	}
	if s.Start.Format("2006-01-02") != s.End.Format("2006-01-02") {
		return fmt.Errorf("session %q: start and end must be on the same day", s.Title)
	}
	return nil
}

// DateKey returns the session's calendar date in tz.
func (s *Session) DateKey(tz *time.Location) timeutil.DateKey {
	return timeutil.DateKeyOf(s.Start.In(tz))
}

// TimePeriod returns the session's start and end as wall-clock times in tz.
func (s *Session) TimePeriod(tz *time.Location) TimeRange {
	start := s.Start.In(tz)
	end := s.End.In(tz)
	return TimeRange{
		Start: timeutil.TimeOfDay{Hour: start.Hour(), Minute: start.Minute()},
		End:   timeutil.TimeOfDay{Hour: end.Hour(), Minute: end.Minute()},
	}
}

// WasMissed reports whether the session is still pending although its end has
// already passed.
func (s *Session) WasMissed(now time.Time) bool {
	return s.Pending && !s.Cancelled && !s.Held && now.After(s.End)
}

// Category classifies the session for calendar display.
func (s *Session) Category(now time.Time) BookingCategory {
	switch {
	case s.Cancelled:
		return CategoryCancelled
	case s.Held:
		return CategoryHeld
	case s.WasMissed(now):
		return CategoryMissed
	default:
		return CategoryPending
	}
}

// LinkWindow is the grace period around a session during which its link
// resolves: from LinkGrace before start until LinkGrace after end.
const LinkGrace = 5 * time.Minute

// LinkActiveAt reports whether the session link is accessible at now.
func (s *Session) LinkActiveAt(now time.Time) bool {
	return !now.Before(s.Start.Add(-LinkGrace)) && !now.After(s.End.Add(LinkGrace))
}
