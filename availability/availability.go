// Package availability implements the conflict rules that gate booking
// proposals against fetched calendar data. It is pure logic shared by the
// calendar client and the booking backend.
package availability

import (
	"time"

	"meetcal/models"
	"meetcal/timeutil"
)

// RejectionReason explains why a proposal was refused.
type RejectionReason string

const (
	ReasonInPast              RejectionReason = "in_past"
	ReasonOverlapsUnavailable RejectionReason = "overlaps_unavailable"

	// ReasonImmutable is raised by the reconciler for held or cancelled
	// bookings, before any conflict check runs.
	ReasonImmutable RejectionReason = "immutable"
)

// Result is the outcome of validating a booking proposal.
type Result struct {
	OK     bool
	Reason RejectionReason
}

func ok() Result                        { return Result{OK: true} }
func rejected(r RejectionReason) Result { return Result{Reason: r} }

// IsWithinUnavailable reports whether t falls inside any of the given ranges,
// boundaries included: a time touching the exact edge of a blocked range
// counts as unavailable.
func IsWithinUnavailable(t timeutil.TimeOfDay, ranges []models.TimeRange) bool {
	for _, r := range ranges {
		if r.Contains(t) {
			return true
		}
	}
	return false
}

// ValidateProposal checks a proposal against the snapshot fetched for its
// date. The proposal's start and end are tested independently: each endpoint
// must lie outside every unavailable range. A proposal that fully contains a
// short blocked range without either endpoint landing inside it passes; the
// server re-checks the full interval on submission.
//
// The past check uses now's calendar date, so proposals on future dates are
// never "in the past".
func ValidateProposal(p models.BookingProposal, snapshot models.AvailabilitySnapshot, now time.Time) Result {
	if timeutil.IsPast(p.Period.Start, p.Date, now) {
		return rejected(ReasonInPast)
	}
	if IsWithinUnavailable(p.Period.Start, snapshot.UnavailableTimes) ||
		IsWithinUnavailable(p.Period.End, snapshot.UnavailableTimes) {
		return rejected(ReasonOverlapsUnavailable)
	}
	return ok()
}
