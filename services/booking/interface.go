package booking

import (
	"context"
	"time"

	"github.com/hibiken/asynq"

	sessionRepo "meetcal/database/repository/session"
	unavailabilityRepo "meetcal/database/repository/unavailability"
	userRepo "meetcal/database/repository/user"
	"meetcal/models"
	"meetcal/timeutil"
)

// BookingService manages sessions and the calendar data they are drawn from.
type BookingService interface {
	// CalendarData assembles the availability payload for one calendar date,
	// as seen by the given user.
	CalendarData(ctx context.Context, userID string, date timeutil.DateKey) (*models.CalendarPayload, error)
	// CreateSession validates the submitted form fields and books a new
	// session for the user.
	CreateSession(ctx context.Context, userID string, form map[string]string) (*models.Session, error)
	// UpdateSession reschedules or retitles an existing session owned by the
	// user. Held and cancelled sessions are rejected before any availability
	// check runs.
	UpdateSession(ctx context.Context, userID, sessionID string, form map[string]string) (*models.Session, error)
	// CancelSession marks the user's session cancelled.
	CancelSession(ctx context.Context, userID, sessionID string) error
	// ResolveSessionLink returns the session link when the request falls
	// inside the link's access window.
	ResolveSessionLink(ctx context.Context, userID, sessionID string) (string, error)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Sessions       sessionRepo.SessionRepository
	Unavailability unavailabilityRepo.UnavailabilityRepository
	Users          userRepo.UserRepository
	Reminders      *asynq.Client // nil disables reminder scheduling
	Now            func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
