// File: models/wire.go
//
// Wire shapes shared by the calendar client and the HTTP handlers. Form
// payloads are flat maps keyed by the submitted field names (hyphenated, as
// they appear in the page forms); validation errors come back keyed the same
// way so the client can route each message to its field.
package models

import "meetcal/timeutil"

// CalendarDataRequest asks for availability data for one date.
type CalendarDataRequest struct {
	Date timeutil.DateKey `json:"date"`
}

// CalendarPayload is the data portion of a successful calendar-data response.
// Older deployments emitted the bookings map under "booked_times"; both keys
// are populated on write and accepted on read.
type CalendarPayload struct {
	UnavailableTimes []TimeRange                                 `json:"unavailable_times"`
	Bookings         map[BookingCategory]map[string]BookingEntry `json:"bookings,omitempty"`
	BookedTimes      map[BookingCategory]map[string]BookingEntry `json:"booked_times,omitempty"`
}

// BookingsByCategory returns whichever bookings map the payload carries.
func (p *CalendarPayload) BookingsByCategory() map[BookingCategory]map[string]BookingEntry {
	if p.Bookings != nil {
		return p.Bookings
	}
	return p.BookedTimes
}

// CalendarDataResponse is the full calendar-data response envelope.
type CalendarDataResponse struct {
	Status string           `json:"status"`
	Detail string           `json:"detail,omitempty"`
	Data   *CalendarPayload `json:"data,omitempty"`
}

// APIResponse is the envelope for mutation responses. Errors maps submitted
// field names to messages; Detail carries the human-readable outcome.
type APIResponse struct {
	Status      string            `json:"status"`
	Detail      string            `json:"detail,omitempty"`
	Errors      map[string]string `json:"errors,omitempty"`
	RedirectURL string            `json:"redirect_url,omitempty"`
	Data        map[string]any    `json:"data,omitempty"`
}

// Form field names as they appear in the page forms and in validation errors.
const (
	FieldTitle     = "title"
	FieldDate      = "date"
	FieldStartTime = "start-time"
	FieldEndTime   = "end-time"
	FieldTimezone  = "timezone"
	FieldLink      = "link"
	FieldSessionID = "session-id"
	FieldEmail     = "email"
	FieldName      = "name"
)
