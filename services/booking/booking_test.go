package booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetcal/models"
)

// fakeSessionRepo is an in-memory SessionRepository.
type fakeSessionRepo struct {
	sessions map[string]*models.Session
	nextID   int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*models.Session)}
}

func (r *fakeSessionRepo) Create(ctx context.Context, session *models.Session) error {
	if session.ID == "" {
		r.nextID++
		session.ID = fmt.Sprintf("session-%d", r.nextID)
	}
	copied := *session
	r.sessions[session.ID] = &copied
	return nil
}

func (r *fakeSessionRepo) GetByID(ctx context.Context, id string) (*models.Session, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

func (r *fakeSessionRepo) Update(ctx context.Context, session *models.Session) error {
	if _, ok := r.sessions[session.ID]; !ok {
		return errors.New("not found")
	}
	copied := *session
	r.sessions[session.ID] = &copied
	return nil
}

func (r *fakeSessionRepo) GetByUserInRange(ctx context.Context, userID string, from, to time.Time) ([]models.Session, error) {
	var out []models.Session
	for _, s := range r.sessions {
		if s.BookedBy == userID && !s.Start.Before(from) && s.Start.Before(to) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) GetActiveInRange(ctx context.Context, from, to time.Time) ([]models.Session, error) {
	var out []models.Session
	for _, s := range r.sessions {
		if !s.Cancelled && !s.Start.Before(from) && s.Start.Before(to) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) GetOverlapping(ctx context.Context, start, end time.Time, excludeID string) ([]models.Session, error) {
	strictlyInside := func(t time.Time) bool { return t.After(start) && t.Before(end) }
	var out []models.Session
	for _, s := range r.sessions {
		if s.Cancelled || s.ID == excludeID {
			continue
		}
		if strictlyInside(s.Start) || strictlyInside(s.End) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) UnsetExpiredLinks(ctx context.Context, now time.Time) (int64, error) {
	var cleared int64
	for _, s := range r.sessions {
		if s.Link != "" && s.End.Add(models.LinkGrace).Before(now) {
			s.Link = ""
			cleared++
		}
	}
	return cleared, nil
}

// fakeUnavailabilityRepo is an in-memory UnavailabilityRepository.
type fakeUnavailabilityRepo struct {
	periods []models.UnavailablePeriod
}

func (r *fakeUnavailabilityRepo) Create(ctx context.Context, p *models.UnavailablePeriod) error {
	r.periods = append(r.periods, *p)
	return nil
}

func (r *fakeUnavailabilityRepo) Delete(ctx context.Context, id string) error { return nil }

func (r *fakeUnavailabilityRepo) GetInRange(ctx context.Context, from, to time.Time) ([]models.UnavailablePeriod, error) {
	var out []models.UnavailablePeriod
	for _, p := range r.periods {
		if !p.Start.Before(from) && p.Start.Before(to) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeUnavailabilityRepo) GetOverlapping(ctx context.Context, start, end time.Time) ([]models.UnavailablePeriod, error) {
	strictlyInside := func(t time.Time) bool { return t.After(start) && t.Before(end) }
	var out []models.UnavailablePeriod
	for _, p := range r.periods {
		if strictlyInside(p.Start) || strictlyInside(p.End) {
			out = append(out, p)
		}
	}
	return out, nil
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	users map[string]*models.User
}

func (r *fakeUserRepo) GetByID(id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Create(u *models.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) Update(u *models.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) Delete(id string) error {
	delete(r.users, id)
	return nil
}

func newTestService(now time.Time) (*DefaultBookingService, *fakeSessionRepo, *fakeUnavailabilityRepo) {
	sessions := newFakeSessionRepo()
	unavailability := &fakeUnavailabilityRepo{}
	users := &fakeUserRepo{users: map[string]*models.User{
		"u1": {ID: "u1", Email: "a@example.com", Name: "Ada", Timezone: "UTC", Active: true},
		"u2": {ID: "u2", Email: "b@example.com", Name: "Ben", Timezone: "UTC", Active: true},
	}}
	svc := &DefaultBookingService{
		Sessions:       sessions,
		Unavailability: unavailability,
		Users:          users,
		Now:            func() time.Time { return now },
	}
	return svc, sessions, unavailability
}

func bookingForm(title, date, start, end string) map[string]string {
	return map[string]string{
		models.FieldTitle:     title,
		models.FieldDate:      date,
		models.FieldStartTime: start,
		models.FieldEndTime:   end,
	}
}

func TestCreateSessionFormValidation(t *testing.T) {
	now := time.Date(2024, time.June, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		form      map[string]string
		wantField string
	}{
		{
			name:      "missing title",
			form:      bookingForm("", "2024-06-10", "09:00", "10:00"),
			wantField: models.FieldTitle,
		},
		{
			name:      "missing date",
			form:      bookingForm("Standup", "", "09:00", "10:00"),
			wantField: models.FieldDate,
		},
		{
			name:      "malformed date",
			form:      bookingForm("Standup", "06/10/2024", "09:00", "10:00"),
			wantField: models.FieldDate,
		},
		{
			name:      "malformed start time",
			form:      bookingForm("Standup", "2024-06-10", "9am", "10:00"),
			wantField: models.FieldStartTime,
		},
		{
			name:      "missing end time",
			form:      bookingForm("Standup", "2024-06-10", "09:00", ""),
			wantField: models.FieldEndTime,
		},
		{
			name:      "end before start",
			form:      bookingForm("Standup", "2024-06-10", "10:00", "09:00"),
			wantField: models.FieldEndTime,
		},
		{
			name:      "in the past",
			form:      bookingForm("Standup", "2024-05-01", "09:00", "10:00"),
			wantField: models.FieldStartTime,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestService(now)
			_, err := svc.CreateSession(context.Background(), "u1", tt.form)
			require.Error(t, err)

			var valErr *ValidationError
			require.ErrorAs(t, err, &valErr)
			assert.Contains(t, valErr.Fields, tt.wantField)
		})
	}
}

func TestCreateSessionReportsAllMissingFields(t *testing.T) {
	now := time.Date(2024, time.June, 1, 8, 0, 0, 0, time.UTC)
	svc, _, _ := newTestService(now)

	_, err := svc.CreateSession(context.Background(), "u1", map[string]string{})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Len(t, valErr.Fields, 4)
}

func TestCreateSessionSuccess(t *testing.T) {
	now := time.Date(2024, time.June, 1, 8, 0, 0, 0, time.UTC)
	svc, sessions, _ := newTestService(now)

	created, err := svc.CreateSession(context.Background(), "u1", bookingForm("Standup", "2024-06-10", "09:00", "10:00"))
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "u1", created.BookedBy)
	assert.True(t, created.Pending)
	assert.Equal(t, time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC), created.Start.UTC())
	assert.Equal(t, time.Date(2024, time.June, 10, 10, 0, 0, 0, time.UTC), created.End.UTC())

	stored, err := sessions.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
}

func TestCreateSessionConflicts(t *testing.T) {
	now := time.Date(2024, time.June, 1, 8, 0, 0, 0, time.UTC)
	svc, sessions, unavailability := newTestService(now)

	unavailability.periods = []models.UnavailablePeriod{{
		ID:    "p1",
		Start: time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.June, 10, 13, 0, 0, 0, time.UTC),
	}}
	require.NoError(t, sessions.Create(context.Background(), &models.Session{
		Title:    "Taken",
		Start:    time.Date(2024, time.June, 10, 15, 0, 0, 0, time.UTC),
		End:      time.Date(2024, time.June, 10, 16, 0, 0, 0, time.UTC),
		BookedBy: "u2",
		Pending:  true,
	}))

	tests := []struct {
		name       string
		start, end string
		wantOK     bool
	}{
		{name: "overlaps unavailable period", start: "11:30", end: "12:30"},
		{name: "overlaps existing session", start: "15:30", end: "16:30"},
		{name: "back to back with session", start: "16:00", end: "17:00", wantOK: true},
		{name: "back to back with period", start: "13:00", end: "14:00", wantOK: true},
		{name: "clear slot", start: "09:00", end: "10:00", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateSession(context.Background(), "u1", bookingForm(tt.name, "2024-06-10", tt.start, tt.end))
			if tt.wantOK {
				assert.NoError(t, err)
				return
			}
			var valErr *ValidationError
			require.ErrorAs(t, err, &valErr)
			assert.Contains(t, valErr.Fields, models.FieldStartTime)
		})
	}
}

func TestUpdateSession(t *testing.T) {
	now := time.Date(2024, time.June, 1, 8, 0, 0, 0, time.UTC)
	svc, sessions, _ := newTestService(now)

	seed := func(t *testing.T, mutate func(*models.Session)) string {
		t.Helper()
		s := &models.Session{
			Title:    "Standup",
			Start:    time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC),
			End:      time.Date(2024, time.June, 10, 10, 0, 0, 0, time.UTC),
			BookedBy: "u1",
			Pending:  true,
		}
		if mutate != nil {
			mutate(s)
		}
		require.NoError(t, sessions.Create(context.Background(), s))
		return s.ID
	}

	t.Run("not found", func(t *testing.T) {
		_, err := svc.UpdateSession(context.Background(), "u1", "nope", bookingForm("x", "2024-06-10", "11:00", "12:00"))
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("owned by someone else", func(t *testing.T) {
		id := seed(t, func(s *models.Session) { s.BookedBy = "u2" })
		_, err := svc.UpdateSession(context.Background(), "u1", id, bookingForm("x", "2024-06-10", "11:00", "12:00"))
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("held is immutable", func(t *testing.T) {
		id := seed(t, func(s *models.Session) { s.Held = true })
		_, err := svc.UpdateSession(context.Background(), "u1", id, bookingForm("x", "2024-06-10", "11:00", "12:00"))
		var valErr *ValidationError
		require.ErrorAs(t, err, &valErr)
	})

	t.Run("cancelled is immutable", func(t *testing.T) {
		id := seed(t, func(s *models.Session) { s.Cancelled = true; s.Pending = false })
		_, err := svc.UpdateSession(context.Background(), "u1", id, bookingForm("x", "2024-06-10", "11:00", "12:00"))
		var valErr *ValidationError
		require.ErrorAs(t, err, &valErr)
	})

	t.Run("reschedule", func(t *testing.T) {
		id := seed(t, nil)
		updated, err := svc.UpdateSession(context.Background(), "u1", id, bookingForm("Planning", "2024-06-10", "11:00", "12:00"))
		require.NoError(t, err)
		assert.Equal(t, "Planning", updated.Title)
		assert.Equal(t, time.Date(2024, time.June, 10, 11, 0, 0, 0, time.UTC), updated.Start.UTC())
	})
}

func TestCancelSession(t *testing.T) {
	now := time.Date(2024, time.June, 1, 8, 0, 0, 0, time.UTC)
	svc, sessions, _ := newTestService(now)

	s := &models.Session{
		Title:    "Standup",
		Start:    time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC),
		End:      time.Date(2024, time.June, 10, 10, 0, 0, 0, time.UTC),
		BookedBy: "u1",
		Pending:  true,
	}
	require.NoError(t, sessions.Create(context.Background(), s))

	require.NoError(t, svc.CancelSession(context.Background(), "u1", s.ID))
	stored, _ := sessions.GetByID(context.Background(), s.ID)
	assert.True(t, stored.Cancelled)
	assert.False(t, stored.Pending)

	// Cancelling twice is a no-op.
	assert.NoError(t, svc.CancelSession(context.Background(), "u1", s.ID))

	assert.ErrorIs(t, svc.CancelSession(context.Background(), "u2", s.ID), ErrForbidden)
	assert.ErrorIs(t, svc.CancelSession(context.Background(), "u1", "nope"), ErrNotFound)
}

func TestResolveSessionLink(t *testing.T) {
	start := time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	seedWith := func(now time.Time, mutate func(*models.Session)) (*DefaultBookingService, string) {
		svc, sessions, _ := newTestService(now)
		s := &models.Session{
			Title:    "Standup",
			Start:    start,
			End:      end,
			BookedBy: "u1",
			Pending:  true,
			Link:     "https://meet.example/abc",
		}
		if mutate != nil {
			mutate(s)
		}
		if err := sessions.Create(context.Background(), s); err != nil {
			t.Fatal(err)
		}
		return svc, s.ID
	}

	t.Run("inside the window", func(t *testing.T) {
		svc, id := seedWith(start.Add(-5*time.Minute), nil)
		link, err := svc.ResolveSessionLink(context.Background(), "u1", id)
		require.NoError(t, err)
		assert.Equal(t, "https://meet.example/abc", link)
	})

	t.Run("too early", func(t *testing.T) {
		svc, id := seedWith(start.Add(-6*time.Minute), nil)
		_, err := svc.ResolveSessionLink(context.Background(), "u1", id)
		assert.ErrorIs(t, err, ErrLinkNotAvailable)
	})

	t.Run("too late", func(t *testing.T) {
		svc, id := seedWith(end.Add(6*time.Minute), nil)
		_, err := svc.ResolveSessionLink(context.Background(), "u1", id)
		assert.ErrorIs(t, err, ErrLinkNotAvailable)
	})

	t.Run("cancelled never resolves", func(t *testing.T) {
		svc, id := seedWith(start, func(s *models.Session) { s.Cancelled = true; s.Pending = false })
		_, err := svc.ResolveSessionLink(context.Background(), "u1", id)
		assert.ErrorIs(t, err, ErrLinkNotAvailable)
	})

	t.Run("other user forbidden", func(t *testing.T) {
		svc, id := seedWith(start, nil)
		_, err := svc.ResolveSessionLink(context.Background(), "u2", id)
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestCalendarData(t *testing.T) {
	now := time.Date(2024, time.June, 1, 8, 0, 0, 0, time.UTC)
	svc, sessions, unavailability := newTestService(now)

	unavailability.periods = []models.UnavailablePeriod{{
		ID:    "p1",
		Start: time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.June, 10, 13, 0, 0, 0, time.UTC),
	}}

	// Another user's session becomes an unavailable block.
	require.NoError(t, sessions.Create(context.Background(), &models.Session{
		Title: "Theirs", BookedBy: "u2", Pending: true,
		Start: time.Date(2024, time.June, 10, 15, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.June, 10, 16, 0, 0, 0, time.UTC),
	}))
	// The requesting user's own session shows up as a booking instead.
	require.NoError(t, sessions.Create(context.Background(), &models.Session{
		Title: "Mine", BookedBy: "u1", Pending: true,
		Start: time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.June, 10, 10, 0, 0, 0, time.UTC),
	}))

	payload, err := svc.CalendarData(context.Background(), "u1", "2024-06-10")
	require.NoError(t, err)

	var unavailableStrs []string
	for _, r := range payload.UnavailableTimes {
		unavailableStrs = append(unavailableStrs, r.String())
	}
	assert.Equal(t, []string{"12:00-13:00", "15:00-16:00"}, unavailableStrs)

	require.Contains(t, payload.Bookings, models.CategoryPending)
	entry := payload.Bookings[models.CategoryPending]["Mine"]
	assert.Equal(t, "09:00-10:00", entry.TimePeriod.String())
	assert.Empty(t, entry.Link)

	// Both bookings keys carry the same data.
	assert.Equal(t, payload.Bookings, payload.BookedTimes)
}

func TestCalendarDataCategorizesOwnSessions(t *testing.T) {
	now := time.Date(2024, time.June, 10, 18, 0, 0, 0, time.UTC)
	svc, sessions, _ := newTestService(now)

	mk := func(title string, hour int, mutate func(*models.Session)) {
		s := &models.Session{
			Title: title, BookedBy: "u1", Pending: true,
			Start: time.Date(2024, time.June, 10, hour, 0, 0, 0, time.UTC),
			End:   time.Date(2024, time.June, 10, hour+1, 0, 0, 0, time.UTC),
		}
		if mutate != nil {
			mutate(s)
		}
		require.NoError(t, sessions.Create(context.Background(), s))
	}
	mk("Gone", 9, nil) // pending but already over: missed
	mk("Later", 20, nil)
	mk("Done", 10, func(s *models.Session) { s.Held = true; s.Pending = false })
	mk("Dropped", 11, func(s *models.Session) { s.Cancelled = true; s.Pending = false })

	payload, err := svc.CalendarData(context.Background(), "u1", "2024-06-10")
	require.NoError(t, err)

	assert.Contains(t, payload.Bookings[models.CategoryMissed], "Gone")
	assert.Contains(t, payload.Bookings[models.CategoryPending], "Later")
	assert.Contains(t, payload.Bookings[models.CategoryHeld], "Done")
	assert.Contains(t, payload.Bookings[models.CategoryCancelled], "Dropped")
}
