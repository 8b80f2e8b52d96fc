// File: database/repository/availability/indexes.go
package availabilityRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes on the therapist_availability collection.
func (r *mongoAvailabilityRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "availability_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_availability_id"),
		},
		// Primary query pattern: one therapist's windows for a weekday.
		{
			Keys:    bson.D{{Key: "therapist_id", Value: 1}, {Key: "day_of_week", Value: 1}},
			Options: options.Index().SetName("therapist_day_idx"),
		},
		// Override lookups by exact date.
		{
			Keys:    bson.D{{Key: "therapist_id", Value: 1}, {Key: "override_date", Value: 1}},
			Options: options.Index().SetName("therapist_override_date_idx"),
		},
		// Booking match: (therapist, date/day, start label).
		{
			Keys:    bson.D{{Key: "therapist_id", Value: 1}, {Key: "start_time", Value: 1}},
			Options: options.Index().SetName("therapist_start_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create availability indexes: %w", err)
	}
	return nil
}
