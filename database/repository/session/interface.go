// File: database/repository/session/interface.go
package sessionRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"meetcal/database"
	"meetcal/models"
)

type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByID(ctx context.Context, id string) (*models.Session, error)
	Update(ctx context.Context, session *models.Session) error
	// GetByUserInRange returns the user's sessions starting within [from, to).
	GetByUserInRange(ctx context.Context, userID string, from, to time.Time) ([]models.Session, error)
	// GetActiveInRange returns all non-cancelled sessions starting within
	// [from, to), regardless of owner.
	GetActiveInRange(ctx context.Context, from, to time.Time) ([]models.Session, error)
	// GetOverlapping returns non-cancelled sessions whose start or end falls
	// strictly inside (start, end), excluding excludeID when non-empty.
	GetOverlapping(ctx context.Context, start, end time.Time, excludeID string) ([]models.Session, error)
	// UnsetExpiredLinks clears the link of every session whose access window
	// closed before now and returns how many were cleared.
	UnsetExpiredLinks(ctx context.Context, now time.Time) (int64, error)
}

type mongoSessionRepo struct {
	coll *mongo.Collection
}

// NewMongoSessionRepo constructs a new MongoDB SessionRepository.
func NewMongoSessionRepo() SessionRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	repo := &mongoSessionRepo{
		coll: db.Collection("sessions"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create session indexes: %v\n", err)
	}
	return repo
}
