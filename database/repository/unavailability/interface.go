// File: database/repository/unavailability/interface.go
package unavailabilityRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"meetcal/database"
	"meetcal/models"
)

type UnavailabilityRepository interface {
	Create(ctx context.Context, period *models.UnavailablePeriod) error
	// GetInRange returns all periods starting within [from, to).
	GetInRange(ctx context.Context, from, to time.Time) ([]models.UnavailablePeriod, error)
	// GetOverlapping returns periods whose start or end falls strictly inside
	// (start, end).
	GetOverlapping(ctx context.Context, start, end time.Time) ([]models.UnavailablePeriod, error)
	Delete(ctx context.Context, id string) error
}

type mongoUnavailabilityRepo struct {
	coll *mongo.Collection
}

// NewMongoUnavailabilityRepo constructs a new MongoDB UnavailabilityRepository.
func NewMongoUnavailabilityRepo() UnavailabilityRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	repo := &mongoUnavailabilityRepo{
		coll: db.Collection("unavailable_periods"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create unavailability indexes: %v\n", err)
	}
	return repo
}
