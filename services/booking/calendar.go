package booking

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"meetcal/availability"
	"meetcal/models"
	"meetcal/timeutil"
	"meetcal/utils"
)

// CalendarData assembles the availability payload for one calendar date, as
// seen by the given user. Unavailable times are the admin-declared blocked
// periods plus every other user's active session; the user's own booked
// periods are stripped back out so their sessions stay reschedulable.
func (s *DefaultBookingService) CalendarData(ctx context.Context, userID string, date timeutil.DateKey) (*models.CalendarPayload, error) {
	user, err := s.Users.GetByID(userID)
	if err != nil {
		utils.GetLogger().Error("CalendarData: failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("failed to load calendar data, please try again")
	}
	if user == nil {
		return nil, fmt.Errorf("unknown user %s", userID)
	}
	loc := user.Location()

	day, err := timeutil.ParseDateKey(date)
	if err != nil {
		return nil, err
	}
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	periods, err := s.Unavailability.GetInRange(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load unavailable periods: %w", err)
	}
	sessions, err := s.Sessions.GetActiveInRange(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}
	ownSessions, err := s.Sessions.GetByUserInRange(ctx, userID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load user sessions: %w", err)
	}

	var unavailable []models.TimeRange
	for _, p := range periods {
		unavailable = append(unavailable, p.TimePeriod(loc))
	}
	for _, sess := range sessions {
		if sess.BookedBy == userID {
			continue
		}
		unavailable = append(unavailable, sess.TimePeriod(loc))
	}

	var ownRanges []models.TimeRange
	for _, sess := range ownSessions {
		if sess.Cancelled {
			continue
		}
		ownRanges = append(ownRanges, sess.TimePeriod(loc))
	}
	unavailable = availability.RemoveRanges(unavailable, ownRanges)
	if unavailable == nil {
		unavailable = []models.TimeRange{}
	}
	sort.Slice(unavailable, func(i, j int) bool {
		return unavailable[i].Start.Before(unavailable[j].Start)
	})

	now := s.now()
	bookings := make(map[models.BookingCategory]map[string]models.BookingEntry)
	for _, sess := range ownSessions {
		category := sess.Category(now)
		if bookings[category] == nil {
			bookings[category] = make(map[string]models.BookingEntry)
		}
		entry := models.BookingEntry{
			ID:         sess.ID,
			Title:      sess.Title,
			Date:       sess.DateKey(loc),
			TimePeriod: sess.TimePeriod(loc),
		}
		if sess.Link != "" && sess.LinkActiveAt(now) {
			entry.Link = sess.Link
		}
		bookings[category][sess.Title] = entry
	}

	payload := &models.CalendarPayload{
		UnavailableTimes: unavailable,
		Bookings:         bookings,
		BookedTimes:      bookings,
	}
	return payload, nil
}
