// File: database/repository/session/crud.go
package sessionRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"mindhaven/models"
)

func (r *mongoSessionRepo) Insert(ctx context.Context, session models.TherapySession) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, session); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrSlotTaken
		}
		return err
	}
	return nil
}

func (r *mongoSessionRepo) GetForTherapist(ctx context.Context, sessionID, therapistID string) (*models.TherapySession, error) {
	return r.findOne(ctx, bson.M{"session_id": sessionID, "therapist_id": therapistID})
}

func (r *mongoSessionRepo) GetForClient(ctx context.Context, sessionID, clientID string) (*models.TherapySession, error) {
	return r.findOne(ctx, bson.M{
		"session_id": sessionID,
		"$or": bson.A{
			bson.M{"client_id": clientID},
			bson.M{"user_id": clientID},
		},
	})
}

func (r *mongoSessionRepo) FindScheduledAt(ctx context.Context, therapistID string, at time.Time) (*models.TherapySession, error) {
	return r.findOne(ctx, bson.M{
		"therapist_id": therapistID,
		"scheduled_at": at,
		"$and":         bson.A{statusFilter(models.StatusScheduled)},
	})
}

func (r *mongoSessionRepo) UpdateStatus(ctx context.Context, sessionID, therapistID string, status models.SessionStatus, awaitingRating bool, now time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"session_id": sessionID, "therapist_id": therapistID},
		bson.M{"$set": bson.M{
			"status":          string(status),
			"awaiting_rating": awaitingRating,
			"completed_at":    now,
			"updated_at":      now,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoSessionRepo) MarkCancelled(ctx context.Context, sessionID, clientID, reason string, now time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{
			"session_id": sessionID,
			"$or": bson.A{
				bson.M{"client_id": clientID},
				bson.M{"user_id": clientID},
			},
		},
		bson.M{"$set": bson.M{
			"status":              string(models.StatusCancelled),
			"cancellation_reason": reason,
			"slot_released":       false,
			"updated_at":          now,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoSessionRepo) MarkSlotReleased(ctx context.Context, sessionID, therapistID string, now time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"session_id": sessionID, "therapist_id": therapistID},
		bson.M{"$set": bson.M{
			"slot_released": true,
			"updated_at":    now,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoSessionRepo) SetRating(ctx context.Context, sessionID, clientID string, rating float64, feedback string, now time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{
			"session_id": sessionID,
			"$or": bson.A{
				bson.M{"client_id": clientID},
				bson.M{"user_id": clientID},
			},
		},
		bson.M{"$set": bson.M{
			"user_rating":     rating,
			"user_feedback":   feedback,
			"awaiting_rating": false,
			"rated_at":        now,
			"updated_at":      now,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoSessionRepo) findOne(ctx context.Context, filter bson.M) (*models.TherapySession, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc sessionDoc
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	session := doc.toModel()
	return &session, nil
}
