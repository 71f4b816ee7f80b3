package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"meetcal/models"
	"meetcal/timeutil"
)

// Fetcher retrieves availability data for single dates. Every call issues
// exactly one network request; there is no caching or deduplication across
// calls. Rapid repeated fetches for the same date may complete out of order,
// so each request carries a per-date sequence number and a completion that
// has been superseded by a newer request for the same date is discarded with
// ErrStaleSnapshot instead of being delivered.
type Fetcher struct {
	api *Client

	mu  sync.Mutex
	seq map[timeutil.DateKey]uint64
}

// NewFetcher builds a fetcher on top of the shared client. Calendar data is
// requested from endpoint (the calendar page URL).
func NewFetcher(api *Client) *Fetcher {
	return &Fetcher{api: api, seq: make(map[timeutil.DateKey]uint64)}
}

// begin registers a new request for date and returns its sequence number.
func (f *Fetcher) begin(date timeutil.DateKey) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq[date]++
	return f.seq[date]
}

// current reports the newest sequence number issued for date.
func (f *Fetcher) current(date timeutil.DateKey) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seq[date]
}

// FetchAvailability requests the availability snapshot for date from the
// calendar endpoint. Transport failures and non-success responses surface a
// user-visible error notification (server detail first, generic fallback)
// and return the corresponding error; there is no automatic retry.
func (f *Fetcher) FetchAvailability(ctx context.Context, endpoint string, date timeutil.DateKey) (*models.AvailabilitySnapshot, error) {
	seq := f.begin(date)

	resp, err := f.api.postJSON(ctx, endpoint, models.CalendarDataRequest{Date: date})
	if err != nil {
		f.api.notify(NotifyError, GenericErrorMessage)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		serverErr := &ServerError{Status: resp.StatusCode}
		var envelope models.CalendarDataResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&envelope); decodeErr == nil {
			serverErr.Detail = envelope.Detail
		}
		f.api.notify(NotifyError, serverErr.Message())
		return nil, serverErr
	}

	var envelope models.CalendarDataResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode calendar data: %w", err)
	}
	if envelope.Data == nil {
		return nil, fmt.Errorf("calendar data response missing data")
	}

	// A newer fetch for this date was issued while this one was in flight;
	// its snapshot wins.
	if f.current(date) != seq {
		return nil, ErrStaleSnapshot
	}

	return &models.AvailabilitySnapshot{
		Date:             date,
		UnavailableTimes: envelope.Data.UnavailableTimes,
		Bookings:         envelope.Data.BookingsByCategory(),
	}, nil
}

// statusOK reports whether status counts as success for mutation endpoints
// that accept any 2xx.
func statusOK(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}
