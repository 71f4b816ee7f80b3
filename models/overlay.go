package models

import "meetcal/timeutil"

// OverlayCategory tags a calendar overlay so a whole group can be cleared
// independently of the other.
type OverlayCategory string

const (
	OverlayUnavailable OverlayCategory = "unavailable-time-slot"
	OverlayBooking     OverlayCategory = "booking"
)

// CalendarOverlay is a visual projection of an unavailable block or a booked
// session onto the calendar widget. Overlays are created in bulk from the
// latest snapshot and destroyed in bulk before the next redraw of the same
// category; they are never patched in place.
type CalendarOverlay struct {
	Category OverlayCategory
	Date     timeutil.DateKey
	Period   TimeRange

	// Booking overlays only.
	SessionID       string
	Title           string
	BookingCategory BookingCategory
	Link            string
}
