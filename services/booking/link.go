package booking

import (
	"context"
	"fmt"
)

// ResolveSessionLink returns the session link when the request falls inside
// the access window: from the grace period before start until the grace
// period after end. Cancelled and missed sessions never resolve.
func (s *DefaultBookingService) ResolveSessionLink(ctx context.Context, userID, sessionID string) (string, error) {
	session, err := s.Sessions.GetByID(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch session: %w", err)
	}
	if session == nil {
		return "", ErrNotFound
	}
	if session.BookedBy != userID {
		return "", ErrForbidden
	}

	now := s.now()
	if session.Cancelled || session.WasMissed(now) {
		return "", ErrLinkNotAvailable
	}
	if session.Link == "" || !session.LinkActiveAt(now) {
		return "", ErrLinkNotAvailable
	}
	return session.Link, nil
}
