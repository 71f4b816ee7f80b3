// File: database/repository/session/queries.go
package sessionRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"meetcal/models"
)

func (r *mongoSessionRepo) GetByUserInRange(ctx context.Context, userID string, from, to time.Time) ([]models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"bookedBy": userID,
		"start":    bson.M{"$gte": from, "$lt": to},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sessions: %w", err)
	}
	defer cursor.Close(ctx)

	var sessions []models.Session
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("error decoding sessions: %w", err)
	}
	return sessions, nil
}

func (r *mongoSessionRepo) GetActiveInRange(ctx context.Context, from, to time.Time) ([]models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"cancelled": false,
		"start":     bson.M{"$gte": from, "$lt": to},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sessions: %w", err)
	}
	defer cursor.Close(ctx)

	var sessions []models.Session
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("error decoding sessions: %w", err)
	}
	return sessions, nil
}

// GetOverlapping mirrors the booking-time availability check: a session
// conflicts when its start or end lies strictly inside the candidate period.
func (r *mongoSessionRepo) GetOverlapping(ctx context.Context, start, end time.Time, excludeID string) ([]models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"cancelled": false,
		"$or": []bson.M{
			{"start": bson.M{"$gt": start, "$lt": end}},
			{"end": bson.M{"$gt": start, "$lt": end}},
		},
	}
	if excludeID != "" {
		filter["id"] = bson.M{"$ne": excludeID}
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch overlapping sessions: %w", err)
	}
	defer cursor.Close(ctx)

	var sessions []models.Session
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("error decoding sessions: %w", err)
	}
	return sessions, nil
}

func (r *mongoSessionRepo) UnsetExpiredLinks(ctx context.Context, now time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"link": bson.M{"$ne": ""},
		"end":  bson.M{"$lt": now.Add(-models.LinkGrace)},
	}
	update := bson.M{
		"$set": bson.M{"link": "", "updatedAt": now},
	}
	res, err := r.coll.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to unset expired links: %w", err)
	}
	return res.ModifiedCount, nil
}
