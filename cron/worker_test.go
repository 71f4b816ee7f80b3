package cron

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"meetcal/models"
)

// sweepRepo is an in-memory SessionRepository that signals every link sweep.
type sweepRepo struct {
	mu       sync.Mutex
	sessions []models.Session
	sweeps   chan struct{}
}

func (r *sweepRepo) Create(ctx context.Context, s *models.Session) error { return nil }

func (r *sweepRepo) GetByID(ctx context.Context, id string) (*models.Session, error) {
	return nil, nil
}

func (r *sweepRepo) Update(ctx context.Context, s *models.Session) error { return nil }

func (r *sweepRepo) GetByUserInRange(ctx context.Context, userID string, from, to time.Time) ([]models.Session, error) {
	return nil, nil
}

func (r *sweepRepo) GetActiveInRange(ctx context.Context, from, to time.Time) ([]models.Session, error) {
	return nil, nil
}

func (r *sweepRepo) GetOverlapping(ctx context.Context, start, end time.Time, excludeID string) ([]models.Session, error) {
	return nil, nil
}

func (r *sweepRepo) UnsetExpiredLinks(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	var cleared int64
	for i := range r.sessions {
		s := &r.sessions[i]
		if s.Link != "" && now.After(s.End.Add(models.LinkGrace)) {
			s.Link = ""
			cleared++
		}
	}
	r.mu.Unlock()
	select {
	case r.sweeps <- struct{}{}:
	default:
	}
	return cleared, nil
}

func (r *sweepRepo) link(id string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if s.ID == id {
			return s.Link
		}
	}
	return ""
}

func (r *sweepRepo) waitForSweep(t *testing.T) {
	t.Helper()
	select {
	case <-r.sweeps:
	case <-time.After(time.Second):
		t.Fatal("sweeper never ran")
	}
}

func TestLinkSweeperClearsExpiredLinks(t *testing.T) {
	now := time.Now()
	repo := &sweepRepo{
		sessions: []models.Session{
			{
				ID:    "s1",
				Title: "Design review",
				Start: now.Add(-2 * time.Hour),
				End:   now.Add(-time.Hour),
				Link:  "https://meet.example.com/s1",
			},
			{
				ID:    "s2",
				Title: "Planning",
				Start: now.Add(time.Hour),
				End:   now.Add(2 * time.Hour),
				Link:  "https://meet.example.com/s2",
			},
		},
		sweeps: make(chan struct{}, 1),
	}

	stop := InitLinkSweeper(repo, 5*time.Millisecond)
	defer stop()

	repo.waitForSweep(t)

	assert.Empty(t, repo.link("s1"), "link past its window should be cleared")
	assert.Equal(t, "https://meet.example.com/s2", repo.link("s2"), "upcoming session keeps its link")
}

func TestLinkSweeperStops(t *testing.T) {
	repo := &sweepRepo{sweeps: make(chan struct{}, 1)}

	stop := InitLinkSweeper(repo, 5*time.Millisecond)
	repo.waitForSweep(t)
	stop()

	// Let any in-flight sweep finish, then require silence.
	time.Sleep(25 * time.Millisecond)
	for drained := false; !drained; {
		select {
		case <-repo.sweeps:
		default:
			drained = true
		}
	}
	select {
	case <-repo.sweeps:
		t.Fatal("sweeper kept running after stop")
	case <-time.After(100 * time.Millisecond):
	}
}
