// File: database/repository/session/indexes.go
package sessionRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mindhaven/models"
)

// EnsureIndexes creates the indexes on the therapy_sessions collection. The
// partial unique index on (therapist_id, scheduled_at) for scheduled sessions
// is what makes double booking impossible: concurrent inserts race to it and
// the loser gets a duplicate key error.
func (r *mongoSessionRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "session_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_session_id"),
		},
		{
			Keys: bson.D{{Key: "therapist_id", Value: 1}, {Key: "scheduled_at", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("unique_scheduled_slot").
				SetPartialFilterExpression(bson.M{"status": string(models.StatusScheduled)}),
		},
		// Day-range scans per therapist.
		{
			Keys:    bson.D{{Key: "therapist_id", Value: 1}, {Key: "scheduled_at", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("therapist_day_status_idx"),
		},
		// Client history and pending-rating lookups.
		{
			Keys:    bson.D{{Key: "client_id", Value: 1}, {Key: "status", Value: 1}, {Key: "scheduled_at", Value: 1}},
			Options: options.Index().SetName("client_status_idx"),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create session indexes: %w", err)
	}
	return nil
}
