// File: database/repository/availability/queries.go
package availabilityRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// ListOverrideDatesInRange returns the distinct override dates in [from, to).
// Dates are YYYY-MM-DD strings, so lexical range comparison is chronological.
func (r *mongoAvailabilityRepo) ListOverrideDatesInRange(ctx context.Context, therapistID, from, to string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	raw, err := r.coll.Distinct(ctx, "override_date", bson.M{
		"therapist_id":  therapistID,
		"override_date": bson.M{"$gte": from, "$lt": to},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list override dates: %w", err)
	}
	dates := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			dates = append(dates, s)
		}
	}
	return dates, nil
}

// ListRecurringDays returns the distinct weekdays with recurring windows.
func (r *mongoAvailabilityRepo) ListRecurringDays(ctx context.Context, therapistID string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"therapist_id": therapistID}
	for k, v := range recurringFilter() {
		filter[k] = v
	}
	raw, err := r.coll.Distinct(ctx, "day_of_week", filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring days: %w", err)
	}
	days := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			days = append(days, s)
		}
	}
	return days, nil
}
