package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"meetcal/config"
	"meetcal/models"
	"meetcal/services/tasks"
	"meetcal/timeutil"
	"meetcal/utils"
)

// ReminderLead is how far before a session's start its reminder fires.
const ReminderLead = 30 * time.Minute

// sessionForm is a parsed and validated booking form.
type sessionForm struct {
	Title string
	Start time.Time
	End   time.Time
}

// parseSessionForm validates the submitted fields and resolves them to
// concrete instants in loc. Field errors are accumulated so the client can
// annotate every offending input at once.
func (s *DefaultBookingService) parseSessionForm(form map[string]string, loc *time.Location) (*sessionForm, error) {
	fieldErrs := make(map[string]string)

	title := strings.TrimSpace(form[models.FieldTitle])
	if title == "" {
		fieldErrs[models.FieldTitle] = "This field is required."
	}

	dateStr := strings.TrimSpace(form[models.FieldDate])
	var date timeutil.DateKey
	if dateStr == "" {
		fieldErrs[models.FieldDate] = "This field is required."
	} else {
		date = timeutil.DateKey(dateStr)
		if _, err := timeutil.ParseDateKey(date); err != nil {
			fieldErrs[models.FieldDate] = "Enter a valid date."
		}
	}

	parseTime := func(field string) (timeutil.TimeOfDay, bool) {
		raw := strings.TrimSpace(form[field])
		if raw == "" {
			fieldErrs[field] = "This field is required."
			return timeutil.TimeOfDay{}, false
		}
		t, err := timeutil.ParseTimeOfDay(raw)
		if err != nil {
			fieldErrs[field] = "Enter a valid time."
			return timeutil.TimeOfDay{}, false
		}
		return t, true
	}
	startTime, _ := parseTime(models.FieldStartTime)
	endTime, _ := parseTime(models.FieldEndTime)

	if len(fieldErrs) > 0 {
		return nil, &ValidationError{Fields: fieldErrs}
	}

	if !startTime.Before(endTime) {
		return nil, NewValidationError(models.FieldEndTime, "End time must be after start time.")
	}

	start, err := startTime.On(date, loc)
	if err != nil {
		return nil, NewValidationError(models.FieldDate, "Enter a valid date.")
	}
	end, _ := endTime.On(date, loc)

	if start.Before(s.now()) {
		return nil, NewValidationError(models.FieldStartTime, "Sessions cannot be booked in the past.")
	}

	return &sessionForm{Title: title, Start: start, End: end}, nil
}

// checkConflicts rejects the candidate period when an unavailable period or
// another session overlaps it. Boundary contact is allowed: back-to-back
// sessions are legal.
func (s *DefaultBookingService) checkConflicts(ctx context.Context, start, end time.Time, excludeID string) error {
	periods, err := s.Unavailability.GetOverlapping(ctx, start, end)
	if err != nil {
		return fmt.Errorf("failed to check unavailable periods: %w", err)
	}
	if len(periods) > 0 {
		return NewValidationError(models.FieldStartTime, "The selected time overlaps an unavailable period.")
	}
	sessions, err := s.Sessions.GetOverlapping(ctx, start, end, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check session conflicts: %w", err)
	}
	if len(sessions) > 0 {
		return NewValidationError(models.FieldStartTime, "The selected time overlaps another booking.")
	}
	return nil
}

// CreateSession validates the submitted form fields and books a new session.
func (s *DefaultBookingService) CreateSession(ctx context.Context, userID string, form map[string]string) (*models.Session, error) {
	user, err := s.Users.GetByID(userID)
	if err != nil {
		utils.GetLogger().Error("CreateSession: failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("failed to book session, please try again")
	}
	if user == nil {
		return nil, fmt.Errorf("unknown user %s", userID)
	}

	parsed, err := s.parseSessionForm(form, user.Location())
	if err != nil {
		return nil, err
	}
	if err := s.checkConflicts(ctx, parsed.Start, parsed.End, ""); err != nil {
		return nil, err
	}

	session := &models.Session{
		Title:    parsed.Title,
		Start:    parsed.Start,
		End:      parsed.End,
		BookedBy: userID,
		Pending:  true,
	}
	if err := session.Validate(); err != nil {
		return nil, NewValidationError(models.FieldEndTime, "End time must be after start time.")
	}
	if err := s.Sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.scheduleReminder(session, user)
	return session, nil
}

// UpdateSession reschedules or retitles an existing session. Ownership and
// mutability are checked before any availability query runs.
func (s *DefaultBookingService) UpdateSession(ctx context.Context, userID, sessionID string, form map[string]string) (*models.Session, error) {
	session, err := s.Sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch session: %w", err)
	}
	if session == nil {
		return nil, ErrNotFound
	}
	if session.BookedBy != userID {
		return nil, ErrForbidden
	}
	if session.Category(s.now()).Immutable() {
		return nil, NewValidationError(models.FieldStartTime, "This session can no longer be changed.")
	}

	user, err := s.Users.GetByID(userID)
	if err != nil || user == nil {
		return nil, fmt.Errorf("failed to fetch user for session update")
	}

	parsed, err := s.parseSessionForm(form, user.Location())
	if err != nil {
		return nil, err
	}
	if err := s.checkConflicts(ctx, parsed.Start, parsed.End, session.ID); err != nil {
		return nil, err
	}

	session.Title = parsed.Title
	session.Start = parsed.Start
	session.End = parsed.End
	if err := s.Sessions.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	s.scheduleReminder(session, user)
	return session, nil
}

// CancelSession marks the user's session cancelled. Cancellation is terminal;
// a cancelled session never becomes bookable or reschedulable again.
func (s *DefaultBookingService) CancelSession(ctx context.Context, userID, sessionID string) error {
	session, err := s.Sessions.GetByID(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to fetch session: %w", err)
	}
	if session == nil {
		return ErrNotFound
	}
	if session.BookedBy != userID {
		return ErrForbidden
	}
	if session.Cancelled {
		return nil
	}
	session.Cancelled = true
	session.Pending = false
	if err := s.Sessions.Update(ctx, session); err != nil {
		return fmt.Errorf("failed to cancel session: %w", err)
	}
	return nil
}

// scheduleReminder enqueues a reminder to fire before the session starts.
// Scheduling failures are logged, never surfaced: the booking itself stands.
func (s *DefaultBookingService) scheduleReminder(session *models.Session, user *models.User) {
	if s.Reminders == nil {
		return
	}
	lead := ReminderLead
	if config.AppConfig.ReminderLeadMinutes > 0 {
		lead = time.Duration(config.AppConfig.ReminderLeadMinutes) * time.Minute
	}
	fireAt := session.Start.Add(-lead)
	if fireAt.Before(s.now()) {
		return
	}
	payload := models.ReminderPayload{
		SessionID: session.ID,
		UserID:    user.ID,
		Title:     session.Title,
		Body:      fmt.Sprintf("Your session %q starts at %s.", session.Title, session.Start.In(user.Location()).Format("15:04")),
		FireDate:  fireAt.Format(time.RFC3339),
	}
	task, opts, err := tasks.NewReminderTask(payload, fireAt)
	if err != nil {
		utils.GetLogger().Error("scheduleReminder: failed to build task", zap.Error(err))
		return
	}
	if _, err := s.Reminders.Enqueue(task, opts...); err != nil {
		utils.GetLogger().Error("scheduleReminder: failed to enqueue task", zap.Error(err))
	}
}
