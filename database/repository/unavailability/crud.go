// File: database/repository/unavailability/crud.go
package unavailabilityRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"meetcal/models"
)

func (r *mongoUnavailabilityRepo) Create(ctx context.Context, period *models.UnavailablePeriod) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if period.ID == "" {
		period.ID = uuid.New().String()
	}
	now := time.Now()
	period.CreatedAt = now
	period.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, period)
	if err != nil {
		return fmt.Errorf("failed to insert unavailable period: %w", err)
	}
	return nil
}

func (r *mongoUnavailabilityRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete unavailable period %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("unavailable period %s not found", id)
	}
	return nil
}

func (r *mongoUnavailabilityRepo) GetInRange(ctx context.Context, from, to time.Time) ([]models.UnavailablePeriod, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"start": bson.M{"$gte": from, "$lt": to},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query unavailable periods: %w", err)
	}
	defer cursor.Close(ctx)

	var periods []models.UnavailablePeriod
	if err := cursor.All(ctx, &periods); err != nil {
		return nil, fmt.Errorf("failed to decode unavailable periods: %w", err)
	}
	return periods, nil
}

func (r *mongoUnavailabilityRepo) GetOverlapping(ctx context.Context, start, end time.Time) ([]models.UnavailablePeriod, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"$or": []bson.M{
			{"start": bson.M{"$gt": start, "$lt": end}},
			{"end": bson.M{"$gt": start, "$lt": end}},
		},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query overlapping periods: %w", err)
	}
	defer cursor.Close(ctx)

	var periods []models.UnavailablePeriod
	if err := cursor.All(ctx, &periods); err != nil {
		return nil, fmt.Errorf("failed to decode overlapping periods: %w", err)
	}
	return periods, nil
}
