// File: database/repository/session/interface.go
package sessionRepo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"mindhaven/models"
)

// ErrSlotTaken is returned by Insert when another scheduled session already
// holds the same (therapist_id, scheduled_at). It surfaces the partial unique
// index violation, which is the authoritative double-booking signal.
var ErrSlotTaken = errors.New("slot already booked")

// SessionRepository owns the therapy_sessions collection. All writes are
// per-document; the only cross-request guarantee is the scheduled-slot
// uniqueness index.
type SessionRepository interface {
	Insert(ctx context.Context, session models.TherapySession) error
	GetForTherapist(ctx context.Context, sessionID, therapistID string) (*models.TherapySession, error)
	GetForClient(ctx context.Context, sessionID, clientID string) (*models.TherapySession, error)
	FindScheduledAt(ctx context.Context, therapistID string, at time.Time) (*models.TherapySession, error)
	ListBlockingForDay(ctx context.Context, therapistID string, dayStart, dayEnd time.Time) ([]models.TherapySession, error)
	ListForTherapistDay(ctx context.Context, therapistID string, dayStart, dayEnd time.Time) ([]models.TherapySession, error)
	ListByClient(ctx context.Context, clientID string) ([]models.TherapySession, error)
	ListByTherapist(ctx context.Context, therapistID string) ([]models.TherapySession, error)
	ListBetween(ctx context.Context, therapistID string, from, to time.Time) ([]models.TherapySession, error)
	FindUpcomingForClient(ctx context.Context, clientID string, after time.Time) (*models.TherapySession, error)
	FindOldestPendingRating(ctx context.Context, clientID string) (*models.TherapySession, error)
	UpdateStatus(ctx context.Context, sessionID, therapistID string, status models.SessionStatus, awaitingRating bool, now time.Time) error
	MarkCancelled(ctx context.Context, sessionID, clientID, reason string, now time.Time) error
	MarkSlotReleased(ctx context.Context, sessionID, therapistID string, now time.Time) error
	SetRating(ctx context.Context, sessionID, clientID string, rating float64, feedback string, now time.Time) error
	EnsureIndexes(ctx context.Context) error
}

type mongoSessionRepo struct {
	coll *mongo.Collection
}

// NewMongoSessionRepo constructs a MongoDB SessionRepository.
func NewMongoSessionRepo(db *mongo.Database) SessionRepository {
	return &mongoSessionRepo{
		coll: db.Collection("therapy_sessions"),
	}
}
