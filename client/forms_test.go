package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetcal/models"
)

// recordingModal tracks close calls.
type recordingModal struct {
	closed bool
}

func (m *recordingModal) Close() { m.closed = true }

func newBookingFlowServer(t *testing.T, bookStatus int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/booking/sessions":
			w.WriteHeader(bookStatus)
			json.NewEncoder(w).Encode(models.APIResponse{Status: "success", Detail: "Session booked."})
		default: // calendar data
			w.Write(calendarEnvelope(t, models.CalendarPayload{
				Bookings: map[models.BookingCategory]map[string]models.BookingEntry{
					models.CategoryPending: {"Standup": {ID: "s1", Date: "2024-06-01"}},
				},
			}))
		}
	}))
}

func TestBookSessionFlow(t *testing.T) {
	server := newBookingFlowServer(t, http.StatusCreated)
	defer server.Close()

	notifier := &recordingNotifier{}
	api := New(server.URL, notifier)
	sink := &recordingSink{}
	rec := NewReconciler(api, sink, "/data")
	flows := NewFlows(api, rec)

	require.NoError(t, rec.OpenDay(context.Background(), "2024-06-01"))

	confirmed := false
	modal := &recordingModal{}
	form := NewBasicForm("/api/booking/sessions", map[string]string{
		models.FieldTitle:     "Standup",
		models.FieldDate:      "2024-06-01",
		models.FieldStartTime: "09:00",
		models.FieldEndTime:   "10:00",
	})

	resp, err := flows.BookSession(context.Background(), form, func() bool { confirmed = true; return true }, modal)
	require.NoError(t, err)
	assert.Equal(t, "success", resp.Status)

	assert.True(t, confirmed, "confirmation gate must run")
	assert.True(t, modal.closed)
	// The fresh booking was fetched and drawn.
	assert.Equal(t, 1, sink.count(models.OverlayBooking))
	assert.Contains(t, notifier.all(), "success: Session booked.")
}

func TestBookSessionDeclined(t *testing.T) {
	server := newBookingFlowServer(t, http.StatusCreated)
	defer server.Close()

	api := New(server.URL, nil)
	flows := NewFlows(api, nil)

	modal := &recordingModal{}
	form := NewBasicForm("/api/booking/sessions", map[string]string{models.FieldTitle: "x"})

	_, err := flows.BookSession(context.Background(), form, func() bool { return false }, modal)
	assert.ErrorIs(t, err, ErrNotConfirmed)
	assert.False(t, modal.closed)
}

// Booking demands a 201; a plain 200 is treated as failure and the modal
// stays open.
func TestBookSessionRequires201(t *testing.T) {
	server := newBookingFlowServer(t, http.StatusOK)
	defer server.Close()

	api := New(server.URL, nil)
	flows := NewFlows(api, nil)

	modal := &recordingModal{}
	form := NewBasicForm("/api/booking/sessions", map[string]string{models.FieldTitle: "x"})

	_, err := flows.BookSession(context.Background(), form, func() bool { return true }, modal)
	require.Error(t, err)
	assert.False(t, modal.closed)
}

func TestUpdateAccountDelaysRedirect(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.APIResponse{
			Status:      "success",
			Detail:      "Your account has been updated.",
			RedirectURL: "/accounts/profile/",
		})
	}))
	defer server.Close()

	nav := &recordingNavigator{}
	api := New(server.URL, nil)
	api.Nav = nav
	flows := NewFlows(api, nil)

	control := &recordingControl{}
	form := NewBasicForm("/api/accounts/update", map[string]string{models.FieldName: "Ada"})
	form.SubmitControl = control

	_, err := flows.UpdateAccount(context.Background(), form)
	require.NoError(t, err)

	// The redirect is delayed so the success notification can be read, and
	// the control stays disabled to block a resubmission in the meantime.
	assert.Empty(t, nav.targets)
	assert.True(t, control.disabled)
}

func TestResetPasswordLeavesControlDisabled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.APIResponse{Status: "success", Detail: "Your password has been reset. Please sign in."})
	}))
	defer server.Close()

	api := New(server.URL, nil)
	flows := NewFlows(api, nil)

	control := &recordingControl{}
	form := NewBasicForm("/api/accounts/reset-password", map[string]string{"password": "correct-horse"})
	form.SubmitControl = control

	_, err := flows.ResetPassword(context.Background(), form)
	require.NoError(t, err)
	assert.True(t, control.disabled)
}
