package models

import "meetcal/timeutil"

// BookingEntry is one booked session as it appears in calendar data: enough
// to draw it on the calendar and link back to the stored session.
type BookingEntry struct {
	ID         string           `json:"id"`
	Title      string           `json:"title,omitempty"`
	Date       timeutil.DateKey `json:"date"`
	TimePeriod TimeRange        `json:"time_period"`
	Link       string           `json:"link,omitempty"`
}

// BookingCategory classifies a booked session on the calendar.
type BookingCategory string

const (
	CategoryPending   BookingCategory = "pending"
	CategoryMissed    BookingCategory = "missed"
	CategoryCancelled BookingCategory = "cancelled"
	CategoryHeld      BookingCategory = "held"
)

// Immutable reports whether sessions in this category may no longer be
// rescheduled.
func (c BookingCategory) Immutable() bool {
	return c == CategoryHeld || c == CategoryCancelled
}

// AvailabilitySnapshot is the result of one calendar-data fetch for a single
// date: the unavailable time blocks plus the user's bookings grouped by
// category. A snapshot is valid only for the date it was fetched for and is
// replaced wholesale (last fetch wins) whenever a newer fetch for that date
// completes.
type AvailabilitySnapshot struct {
	Date             timeutil.DateKey
	UnavailableTimes []TimeRange
	Bookings         map[BookingCategory]map[string]BookingEntry
}

// BookingProposal is a user-drawn or user-dragged time range pending either
// creation or modification. It exists only between a gesture and its
// submission or cancellation.
type BookingProposal struct {
	Date      timeutil.DateKey
	Period    TimeRange
	SessionID string // set when the proposal moves an existing booking
}
