// File: database/repository/availability/interface.go
package availabilityRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"mindhaven/models"
)

// AvailabilityRepository owns the therapist_availability collection. Recurring
// windows (empty override date) and override windows are independent
// namespaces; ReplaceForDay only ever touches one of them.
type AvailabilityRepository interface {
	ReplaceForDay(ctx context.Context, therapistID, dayOfWeek, overrideDate string, windows []models.AvailabilityWindow) ([]string, error)
	ListByTherapist(ctx context.Context, therapistID, dayOfWeek string) ([]models.AvailabilityWindow, error)
	ListForDate(ctx context.Context, therapistID, date string) ([]models.AvailabilityWindow, error)
	ListRecurring(ctx context.Context, therapistID, dayOfWeek string) ([]models.AvailabilityWindow, error)
	FindBookable(ctx context.Context, therapistID, date, dayOfWeek, startTime string) (*models.AvailabilityWindow, error)
	ListOverrideDatesInRange(ctx context.Context, therapistID, from, to string) ([]string, error)
	ListRecurringDays(ctx context.Context, therapistID string) ([]string, error)
	DeleteByID(ctx context.Context, availabilityID, therapistID string) error
	UpdateTimes(ctx context.Context, availabilityID, therapistID, startTime, endTime string, updatedAt time.Time) error
	EnsureIndexes(ctx context.Context) error
}

type mongoAvailabilityRepo struct {
	coll *mongo.Collection
}

// NewMongoAvailabilityRepo constructs a MongoDB AvailabilityRepository.
func NewMongoAvailabilityRepo(db *mongo.Database) AvailabilityRepository {
	return &mongoAvailabilityRepo{
		coll: db.Collection("therapist_availability"),
	}
}
