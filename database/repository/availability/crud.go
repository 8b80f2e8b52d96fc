// File: database/repository/availability/crud.go
package availabilityRepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"mindhaven/models"
)

// recurringFilter matches windows with no override date, including legacy
// documents that stored an explicit null or empty string.
func recurringFilter() bson.M {
	return bson.M{"override_date": bson.M{"$in": []interface{}{nil, ""}}}
}

func (r *mongoAvailabilityRepo) ReplaceForDay(ctx context.Context, therapistID, dayOfWeek, overrideDate string, windows []models.AvailabilityWindow) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	deleteFilter := bson.M{
		"therapist_id": therapistID,
		"day_of_week":  dayOfWeek,
	}
	if overrideDate != "" {
		deleteFilter["override_date"] = overrideDate
	} else {
		for k, v := range recurringFilter() {
			deleteFilter[k] = v
		}
	}
	if _, err := r.coll.DeleteMany(ctx, deleteFilter); err != nil {
		return nil, err
	}

	if len(windows) == 0 {
		return []string{}, nil
	}

	docs := make([]interface{}, len(windows))
	ids := make([]string, len(windows))
	for i, w := range windows {
		if w.AvailabilityID == "" {
			w.AvailabilityID = uuid.New().String()
		}
		ids[i] = w.AvailabilityID
		docs[i] = w
	}
	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *mongoAvailabilityRepo) ListByTherapist(ctx context.Context, therapistID, dayOfWeek string) ([]models.AvailabilityWindow, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"therapist_id": therapistID}
	if dayOfWeek != "" {
		filter["day_of_week"] = dayOfWeek
	}
	return r.findWindows(ctx, filter)
}

func (r *mongoAvailabilityRepo) ListForDate(ctx context.Context, therapistID, date string) ([]models.AvailabilityWindow, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.findWindows(ctx, bson.M{"therapist_id": therapistID, "override_date": date})
}

func (r *mongoAvailabilityRepo) ListRecurring(ctx context.Context, therapistID, dayOfWeek string) ([]models.AvailabilityWindow, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"therapist_id": therapistID, "day_of_week": dayOfWeek}
	for k, v := range recurringFilter() {
		filter[k] = v
	}
	return r.findWindows(ctx, filter)
}

// FindBookable locates the window whose start label matches. Override windows
// replace the recurring set entirely for their date: once any override
// document exists for (therapist, date), including a closed-day marker, a
// label with no override match is not bookable and the recurring windows are
// never consulted.
func (r *mongoAvailabilityRepo) FindBookable(ctx context.Context, therapistID, date, dayOfWeek, startTime string) (*models.AvailabilityWindow, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var window models.AvailabilityWindow
	err := r.coll.FindOne(ctx, bson.M{
		"therapist_id":  therapistID,
		"override_date": date,
		"start_time":    startTime,
	}).Decode(&window)
	if err == nil {
		return &window, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	overrides, err := r.coll.CountDocuments(ctx, bson.M{
		"therapist_id":  therapistID,
		"override_date": date,
	})
	if err != nil {
		return nil, err
	}
	if overrides > 0 {
		return nil, nil
	}

	filter := bson.M{
		"therapist_id": therapistID,
		"day_of_week":  dayOfWeek,
		"start_time":   startTime,
	}
	for k, v := range recurringFilter() {
		filter[k] = v
	}
	err = r.coll.FindOne(ctx, filter).Decode(&window)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &window, nil
}

func (r *mongoAvailabilityRepo) DeleteByID(ctx context.Context, availabilityID, therapistID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"availability_id": availabilityID, "therapist_id": therapistID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *mongoAvailabilityRepo) UpdateTimes(ctx context.Context, availabilityID, therapistID, startTime, endTime string, updatedAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"availability_id": availabilityID, "therapist_id": therapistID},
		bson.M{"$set": bson.M{
			"start_time": startTime,
			"end_time":   endTime,
			"updated_at": updatedAt,
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

func (r *mongoAvailabilityRepo) findWindows(ctx context.Context, filter bson.M) ([]models.AvailabilityWindow, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var windows []models.AvailabilityWindow
	if err := cursor.All(ctx, &windows); err != nil {
		return nil, err
	}
	return windows, nil
}
