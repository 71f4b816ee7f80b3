package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"meetcal/availability"
	"meetcal/models"
	"meetcal/timeutil"
)

// OverlaySink is the calendar widget surface the reconciler draws on.
type OverlaySink interface {
	// Add places one overlay on the calendar.
	Add(models.CalendarOverlay) error
	// RemoveCategory removes every overlay tagged with the category.
	RemoveCategory(models.OverlayCategory)
}

// ViewMode is the reconciler's top-level calendar view.
type ViewMode int

const (
	// MonthView is the browsing view; no time selection is possible.
	MonthView ViewMode = iota
	// DayView is the time-grid view where ranges can be selected.
	DayView
)

// Reconciler drives the calendar widget from fetched availability data. It
// owns the two overlay categories (unavailable blocks and bookings), each
// independently toggleable, and always redraws a category by removing all of
// its overlays before adding fresh ones from the latest snapshot.
type Reconciler struct {
	api      *Client
	fetcher  *Fetcher
	sink     OverlaySink
	endpoint string

	mode            ViewMode
	activeDate      timeutil.DateKey
	showUnavailable bool
	showBookings    bool
	snapshot        *models.AvailabilitySnapshot
}

// NewReconciler wires the reconciler to the widget sink. Calendar data is
// fetched from endpoint via the shared client.
func NewReconciler(api *Client, sink OverlaySink, endpoint string) *Reconciler {
	return &Reconciler{
		api:      api,
		fetcher:  NewFetcher(api),
		sink:     sink,
		endpoint: endpoint,
	}
}

// Mode returns the current view mode.
func (r *Reconciler) Mode() ViewMode { return r.mode }

// ActiveDate returns the date shown in day view; empty in month view.
func (r *Reconciler) ActiveDate() timeutil.DateKey {
	if r.mode != DayView {
		return ""
	}
	return r.activeDate
}

// Snapshot returns the latest snapshot delivered for the active date.
func (r *Reconciler) Snapshot() *models.AvailabilitySnapshot { return r.snapshot }

// OpenDay transitions month view to the day view for date: availability is
// fetched and unavailable-block overlays are rendered. Booking overlays stay
// hidden until toggled on.
func (r *Reconciler) OpenDay(ctx context.Context, date timeutil.DateKey) error {
	if _, err := timeutil.ParseDateKey(date); err != nil {
		return err
	}
	r.mode = DayView
	r.activeDate = date
	r.showUnavailable = true
	r.showBookings = false

	snapshot, err := r.fetcher.FetchAvailability(ctx, r.endpoint, date)
	if err != nil {
		if errors.Is(err, ErrStaleSnapshot) {
			return nil
		}
		return err
	}
	r.snapshot = snapshot
	return r.redraw(models.OverlayUnavailable)
}

// BackToMonth leaves day view, clearing every overlay.
func (r *Reconciler) BackToMonth() {
	r.sink.RemoveCategory(models.OverlayUnavailable)
	r.sink.RemoveCategory(models.OverlayBooking)
	r.mode = MonthView
	r.activeDate = ""
	r.snapshot = nil
	r.showUnavailable = false
	r.showBookings = false
}

// SetBookingsVisible toggles the booking overlay category. Enabling it
// re-fetches and redraws bookings; disabling just clears them.
func (r *Reconciler) SetBookingsVisible(ctx context.Context, visible bool) error {
	if r.mode != DayView {
		return fmt.Errorf("bookings view requires day view")
	}
	r.showBookings = visible
	if !visible {
		r.sink.RemoveCategory(models.OverlayBooking)
		return nil
	}
	return r.refetch(ctx, models.OverlayBooking)
}

// SetUnavailableVisible toggles the unavailable-block overlay category.
func (r *Reconciler) SetUnavailableVisible(ctx context.Context, visible bool) error {
	if r.mode != DayView {
		return fmt.Errorf("availability view requires day view")
	}
	r.showUnavailable = visible
	if !visible {
		r.sink.RemoveCategory(models.OverlayUnavailable)
		return nil
	}
	return r.refetch(ctx, models.OverlayUnavailable)
}

// Refresh re-fetches the active date and redraws every visible category.
// Mutation flows call it after a successful submit.
func (r *Reconciler) Refresh(ctx context.Context) error {
	if r.mode != DayView {
		return nil
	}
	snapshot, err := r.fetcher.FetchAvailability(ctx, r.endpoint, r.activeDate)
	if err != nil {
		if errors.Is(err, ErrStaleSnapshot) {
			return nil
		}
		return err
	}
	r.snapshot = snapshot

	var errs []error
	if r.showUnavailable {
		errs = append(errs, r.redraw(models.OverlayUnavailable))
	}
	if r.showBookings {
		errs = append(errs, r.redraw(models.OverlayBooking))
	}
	return errors.Join(errs...)
}

// refetch fetches the active date and redraws one category.
func (r *Reconciler) refetch(ctx context.Context, category models.OverlayCategory) error {
	snapshot, err := r.fetcher.FetchAvailability(ctx, r.endpoint, r.activeDate)
	if err != nil {
		if errors.Is(err, ErrStaleSnapshot) {
			return nil
		}
		return err
	}
	r.snapshot = snapshot
	return r.redraw(category)
}

// redraw replaces a category's overlays with fresh ones from the latest
// snapshot: hide-before-show, never an incremental patch. If an add fails
// midway the remaining overlays are still attempted so the calendar is left
// as complete as possible, and the failures are reported joined.
func (r *Reconciler) redraw(category models.OverlayCategory) error {
	if r.snapshot == nil {
		return nil
	}
	overlays := r.overlaysFor(category)
	r.sink.RemoveCategory(category)

	var errs []error
	for _, overlay := range overlays {
		if err := r.sink.Add(overlay); err != nil {
			errs = append(errs, fmt.Errorf("add %s overlay: %w", category, err))
		}
	}
	return errors.Join(errs...)
}

// overlaysFor projects the latest snapshot into overlay values for category.
func (r *Reconciler) overlaysFor(category models.OverlayCategory) []models.CalendarOverlay {
	var overlays []models.CalendarOverlay
	switch category {
	case models.OverlayUnavailable:
		for _, period := range r.snapshot.UnavailableTimes {
			overlays = append(overlays, models.CalendarOverlay{
				Category: models.OverlayUnavailable,
				Date:     r.snapshot.Date,
				Period:   period,
			})
		}
	case models.OverlayBooking:
		for bookingCategory, entries := range r.snapshot.Bookings {
			for title, entry := range entries {
				if entry.Title == "" {
					entry.Title = title
				}
				overlays = append(overlays, models.CalendarOverlay{
					Category:        models.OverlayBooking,
					Date:            entry.Date,
					Period:          entry.TimePeriod,
					SessionID:       entry.ID,
					Title:           entry.Title,
					BookingCategory: bookingCategory,
					Link:            entry.Link,
				})
			}
		}
	}
	return overlays
}

// ProposeSelection validates a fresh user-drawn range against the latest
// snapshot. On rejection a warning notification is shown and the widget
// should drop the selection; on success the caller opens the booking form.
func (r *Reconciler) ProposeSelection(proposal models.BookingProposal) availability.Result {
	result := r.validate(proposal)
	if !result.OK {
		r.api.notify(NotifyWarning, rejectionMessage(result.Reason))
	}
	return result
}

// ProposeMove validates a drag or resize of an existing booking overlay.
// A booking whose category is held or cancelled is immutable: the move is
// rejected before any conflict check and without any network activity, and
// the widget must revert the overlay to its pre-drag position. Other
// rejections likewise leave server state untouched.
func (r *Reconciler) ProposeMove(overlay models.CalendarOverlay, proposal models.BookingProposal) availability.Result {
	if overlay.BookingCategory.Immutable() {
		r.api.notify(NotifyWarning, immutableMessage(overlay.BookingCategory))
		return availability.Result{Reason: availability.ReasonImmutable}
	}
	result := r.validate(proposal)
	if !result.OK {
		r.api.notify(NotifyWarning, rejectionMessage(result.Reason))
	}
	return result
}

func (r *Reconciler) validate(proposal models.BookingProposal) availability.Result {
	snapshot := models.AvailabilitySnapshot{Date: proposal.Date}
	if r.snapshot != nil && r.snapshot.Date == proposal.Date {
		snapshot = *r.snapshot
	}
	return availability.ValidateProposal(proposal, snapshot, r.api.now())
}

// OpenFromQuery deep-links into a day (and optionally its bookings view)
// from page-load query parameters: "date" selects the day, a non-empty
// "event" additionally switches the bookings overlay on.
func (r *Reconciler) OpenFromQuery(ctx context.Context, query url.Values) error {
	date := query.Get("date")
	if date == "" {
		return nil
	}
	if err := r.OpenDay(ctx, timeutil.DateKey(date)); err != nil {
		return err
	}
	if query.Get("event") != "" {
		return r.SetBookingsVisible(ctx, true)
	}
	return nil
}

func rejectionMessage(reason availability.RejectionReason) string {
	switch reason {
	case availability.ReasonInPast:
		return "You cannot book a session in the past"
	case availability.ReasonOverlapsUnavailable:
		return "You cannot book a session during an unavailable time"
	}
	return GenericErrorMessage
}

func immutableMessage(category models.BookingCategory) string {
	switch category {
	case models.CategoryHeld:
		return "You cannot edit a session that has already been held"
	case models.CategoryCancelled:
		return "You cannot edit a session that has already been cancelled"
	}
	return "This session can no longer be edited"
}
