// File: database/repository/session/queries.go
package sessionRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mindhaven/models"
)

// ListBlockingForDay returns the sessions that consume a slot on the given
// day: scheduled ones, plus cancelled ones (any legacy spelling) whose slot
// has not been released. Sessions recorded without an absolute timestamp are
// included so the caller can reconstruct them from their start label.
func (r *mongoSessionRepo) ListBlockingForDay(ctx context.Context, therapistID string, dayStart, dayEnd time.Time) ([]models.TherapySession, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cancelRegex := primitive.Regex{Pattern: "cancel", Options: "i"}
	filter := bson.M{
		"therapist_id": therapistID,
		"$and": bson.A{
			bson.M{"$or": bson.A{
				bson.M{"scheduled_at": bson.M{"$gte": dayStart, "$lte": dayEnd}},
				bson.M{"scheduled_at": bson.M{"$in": bson.A{nil, time.Time{}}}},
			}},
			bson.M{"$or": bson.A{
				bson.M{"status": string(models.StatusScheduled)},
				bson.M{"session_status": string(models.StatusScheduled)},
				bson.M{"status": cancelRegex},
				bson.M{"session_status": cancelRegex},
			}},
		},
	}
	return r.findMany(ctx, filter, nil)
}

func (r *mongoSessionRepo) ListForTherapistDay(ctx context.Context, therapistID string, dayStart, dayEnd time.Time) ([]models.TherapySession, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"therapist_id": therapistID,
		"scheduled_at": bson.M{"$gte": dayStart, "$lte": dayEnd},
	}
	return r.findMany(ctx, filter, options.Find().SetSort(bson.D{{Key: "scheduled_at", Value: 1}}))
}

func (r *mongoSessionRepo) ListByClient(ctx context.Context, clientID string) ([]models.TherapySession, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"$or": bson.A{
		bson.M{"client_id": clientID},
		bson.M{"user_id": clientID},
	}}
	return r.findMany(ctx, filter, options.Find().SetSort(bson.D{{Key: "scheduled_at", Value: -1}}))
}

func (r *mongoSessionRepo) ListByTherapist(ctx context.Context, therapistID string) ([]models.TherapySession, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"therapist_id": therapistID}
	return r.findMany(ctx, filter, options.Find().SetSort(bson.D{{Key: "scheduled_at", Value: -1}}))
}

func (r *mongoSessionRepo) ListBetween(ctx context.Context, therapistID string, from, to time.Time) ([]models.TherapySession, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"therapist_id": therapistID,
		"scheduled_at": bson.M{"$gte": from, "$lt": to},
	}
	return r.findMany(ctx, filter, options.Find().SetSort(bson.D{{Key: "scheduled_at", Value: 1}}))
}

func (r *mongoSessionRepo) FindUpcomingForClient(ctx context.Context, clientID string, after time.Time) (*models.TherapySession, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"$and": bson.A{
			bson.M{"$or": bson.A{
				bson.M{"client_id": clientID},
				bson.M{"user_id": clientID},
			}},
			statusFilter(models.StatusScheduled),
		},
		"scheduled_at": bson.M{"$gte": after},
	}
	return r.findOneSorted(ctx, filter, bson.D{{Key: "scheduled_at", Value: 1}})
}

// FindOldestPendingRating returns the client's oldest completed session that
// has no rating yet and is still awaiting one.
func (r *mongoSessionRepo) FindOldestPendingRating(ctx context.Context, clientID string) (*models.TherapySession, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"$and": bson.A{
			bson.M{"$or": bson.A{
				bson.M{"client_id": clientID},
				bson.M{"user_id": clientID},
			}},
			statusFilter(models.StatusCompleted),
			bson.M{"$or": bson.A{
				bson.M{"user_rating": bson.M{"$exists": false}},
				bson.M{"user_rating": nil},
				bson.M{"user_rating": 0},
			}},
			bson.M{"$or": bson.A{
				bson.M{"awaiting_rating": true},
				bson.M{"awaiting_rating": bson.M{"$exists": false}},
			}},
		},
	}
	return r.findOneSorted(ctx, filter, bson.D{{Key: "scheduled_at", Value: 1}})
}

func (r *mongoSessionRepo) findMany(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.TherapySession, error) {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = r.coll.Find(ctx, filter, opts)
	} else {
		cursor, err = r.coll.Find(ctx, filter)
	}
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []sessionDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	sessions := make([]models.TherapySession, len(docs))
	for i := range docs {
		sessions[i] = docs[i].toModel()
	}
	return sessions, nil
}

func (r *mongoSessionRepo) findOneSorted(ctx context.Context, filter bson.M, sort bson.D) (*models.TherapySession, error) {
	var doc sessionDoc
	err := r.coll.FindOne(ctx, filter, options.FindOne().SetSort(sort)).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	session := doc.toModel()
	return &session, nil
}
