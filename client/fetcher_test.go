package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetcal/models"
	"meetcal/timeutil"
)

// recordingNotifier captures notifications for assertions.
type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) Notify(level NotifyLevel, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, string(level)+": "+message)
}

func (n *recordingNotifier) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.events...)
}

func calendarEnvelope(t *testing.T, payload models.CalendarPayload) []byte {
	t.Helper()
	b, err := json.Marshal(models.CalendarDataResponse{Status: "success", Data: &payload})
	require.NoError(t, err)
	return b
}

func TestFetchAvailabilitySuccess(t *testing.T) {
	unavailable, err := models.NewTimeRange("12:00", "13:00")
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.CalendarDataRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, timeutil.DateKey("2024-06-01"), req.Date)

		w.Write(calendarEnvelope(t, models.CalendarPayload{
			UnavailableTimes: []models.TimeRange{unavailable},
			BookedTimes: map[models.BookingCategory]map[string]models.BookingEntry{
				models.CategoryPending: {
					"standup": {ID: "s1", Date: "2024-06-01"},
				},
			},
		}))
	}))
	defer server.Close()

	api := New(server.URL, nil)
	fetcher := NewFetcher(api)

	snapshot, err := fetcher.FetchAvailability(context.Background(), "/api/booking/calendar-data", "2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, timeutil.DateKey("2024-06-01"), snapshot.Date)
	assert.Equal(t, []models.TimeRange{unavailable}, snapshot.UnavailableTimes)
	// The legacy booked_times key is accepted.
	require.Contains(t, snapshot.Bookings, models.CategoryPending)
	assert.Equal(t, "s1", snapshot.Bookings[models.CategoryPending]["standup"].ID)
}

func TestFetchAvailabilityServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"status": "error", "detail": "Failed to load calendar data."})
	}))
	defer server.Close()

	notifier := &recordingNotifier{}
	api := New(server.URL, notifier)
	fetcher := NewFetcher(api)

	_, err := fetcher.FetchAvailability(context.Background(), "/api/booking/calendar-data", "2024-06-01")
	require.Error(t, err)

	var serverErr *ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, http.StatusInternalServerError, serverErr.Status)
	assert.Equal(t, []string{"error: Failed to load calendar data."}, notifier.all())
}

func TestFetchAvailabilityServerErrorWithoutDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	notifier := &recordingNotifier{}
	api := New(server.URL, notifier)
	fetcher := NewFetcher(api)

	_, err := fetcher.FetchAvailability(context.Background(), "/api/booking/calendar-data", "2024-06-01")
	require.Error(t, err)
	assert.Equal(t, []string{"error: " + GenericErrorMessage}, notifier.all())
}

func TestFetchAvailabilityNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse all connections

	notifier := &recordingNotifier{}
	api := New(server.URL, notifier)
	fetcher := NewFetcher(api)

	_, err := fetcher.FetchAvailability(context.Background(), "/api/booking/calendar-data", "2024-06-01")
	require.Error(t, err)

	var netErr *NetworkError
	assert.ErrorAs(t, err, &netErr)
	assert.Equal(t, []string{"error: " + GenericErrorMessage}, notifier.all())
}

// TestFetchAvailabilityStaleDiscard issues a second fetch for the same date
// while the first is still in flight. The slower first completion must be
// discarded; the newer snapshot wins.
func TestFetchAvailabilityStaleDiscard(t *testing.T) {
	firstArrived := make(chan struct{})
	releaseFirst := make(chan struct{})

	var mu sync.Mutex
	requestN := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requestN++
		n := requestN
		mu.Unlock()

		if n == 1 {
			close(firstArrived)
			<-releaseFirst
		}
		w.Write(calendarEnvelope(t, models.CalendarPayload{}))
	}))
	defer server.Close()

	api := New(server.URL, nil)
	fetcher := NewFetcher(api)

	firstErr := make(chan error, 1)
	go func() {
		_, err := fetcher.FetchAvailability(context.Background(), "/data", "2024-06-01")
		firstErr <- err
	}()

	<-firstArrived

	// The newer fetch completes while the first is still blocked.
	snapshot, err := fetcher.FetchAvailability(context.Background(), "/data", "2024-06-01")
	require.NoError(t, err)
	require.NotNil(t, snapshot)

	close(releaseFirst)
	assert.ErrorIs(t, <-firstErr, ErrStaleSnapshot)
}

func TestStatusOK(t *testing.T) {
	assert.True(t, statusOK(http.StatusOK))
	assert.True(t, statusOK(http.StatusCreated))
	assert.False(t, statusOK(http.StatusBadRequest))
	assert.False(t, statusOK(http.StatusMultipleChoices))
}
