// File: services/schedule/availability.go
package schedule

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"mindhaven/models"
	"mindhaven/utils"
)

// SetAvailability replaces a therapist's windows for one weekday or one
// override date. Recurring windows and override windows are independent
// namespaces: setting an override never deletes recurring windows and vice
// versa. An override batch with zero slots is stored as a closed-day marker so
// the date stops falling back to recurring availability.
func (s *DefaultScheduleService) SetAvailability(ctx context.Context, therapistID string, req models.SetAvailabilityRequest) (*models.SetAvailabilityResult, error) {
	logger := utils.GetLogger()

	day := strings.ToLower(req.DayOfWeek)
	if !models.IsValidDay(day) {
		return nil, utils.NewValidationError("Invalid day of week")
	}

	therapist, err := s.Directory.ResolveTherapist(ctx, therapistID)
	if err != nil {
		return nil, utils.NewDependencyError("failed to resolve therapist", err)
	}
	if therapist == nil || !therapist.IsApproved() {
		return nil, utils.NewNotFoundError("Approved therapist profile not found")
	}

	if req.OverrideDate != "" {
		if _, err := time.Parse(models.DateLayout, req.OverrideDate); err != nil {
			return nil, utils.NewValidationError("Invalid date format. Use YYYY-MM-DD")
		}
	}

	type parsedSlot struct {
		start, end models.TimeOfDay
	}
	parsed := make([]parsedSlot, len(req.Slots))
	for i, slot := range req.Slots {
		start, err := models.ParseTimeOfDay(slot.StartTime)
		if err != nil {
			return nil, utils.NewValidationError(err.Error())
		}
		end, err := models.ParseTimeOfDay(slot.EndTime)
		if err != nil {
			return nil, utils.NewValidationError(err.Error())
		}
		if start >= end {
			return nil, utils.NewValidationError("Start time must be before end time")
		}
		parsed[i] = parsedSlot{start: start, end: end}
	}

	// Intra-batch overlap check, half-open intervals.
	for i := range parsed {
		for j := range parsed {
			if i != j && models.Overlaps(parsed[i].start, parsed[i].end, parsed[j].start, parsed[j].end) {
				return nil, utils.NewValidationError(fmt.Sprintf(
					"Time slot %s-%s overlaps with %s-%s",
					parsed[i].start, parsed[i].end, parsed[j].start, parsed[j].end,
				))
			}
		}
	}

	now := s.Clock.Now()
	windows := make([]models.AvailabilityWindow, 0, len(parsed))
	for _, p := range parsed {
		windows = append(windows, models.AvailabilityWindow{
			TherapistID:  therapistID,
			DayOfWeek:    day,
			StartTime:    p.start.String(),
			EndTime:      p.end.String(),
			IsAvailable:  req.IsAvailable,
			OverrideDate: req.OverrideDate,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}
	if len(windows) == 0 && req.OverrideDate != "" {
		// Closed-day marker: suppresses recurring windows for this date while
		// producing no bookable slot.
		windows = append(windows, models.AvailabilityWindow{
			TherapistID:  therapistID,
			DayOfWeek:    day,
			IsAvailable:  false,
			OverrideDate: req.OverrideDate,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}

	ids, err := s.Availability.ReplaceForDay(ctx, therapistID, day, req.OverrideDate, windows)
	if err != nil {
		return nil, utils.NewDependencyError("failed to store availability", err)
	}

	logger.Info("Availability set",
		zap.String("therapist_id", therapistID),
		zap.String("day", day),
		zap.String("override_date", req.OverrideDate),
		zap.Int("slots", len(req.Slots)),
	)

	message := "Availability set for " + req.DayOfWeek
	if req.OverrideDate != "" {
		message += " on " + req.OverrideDate
	}
	return &models.SetAvailabilityResult{
		Success:         true,
		Message:         message,
		SlotsCreated:    len(req.Slots),
		AvailabilityIDs: ids,
	}, nil
}

// GetAvailability returns the therapist's windows, optionally filtered to one
// weekday, ordered by start time. Closed-day markers are not listed.
func (s *DefaultScheduleService) GetAvailability(ctx context.Context, therapistID, dayOfWeek string) ([]models.AvailabilityWindow, error) {
	day := strings.ToLower(dayOfWeek)
	if day != "" && !models.IsValidDay(day) {
		return nil, utils.NewValidationError("Invalid day of week")
	}

	windows, err := s.Availability.ListByTherapist(ctx, therapistID, day)
	if err != nil {
		return nil, utils.NewDependencyError("failed to fetch availability", err)
	}

	visible := windows[:0]
	for _, w := range windows {
		if w.StartTime != "" {
			visible = append(visible, w)
		}
	}
	sortWindowsByStart(visible)
	return visible, nil
}

// DeleteAvailability removes one window belonging to the therapist.
func (s *DefaultScheduleService) DeleteAvailability(ctx context.Context, availabilityID, therapistID string) (*models.ActionResult, error) {
	err := s.Availability.DeleteByID(ctx, availabilityID, therapistID)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewNotFoundError("Availability slot not found")
	}
	if err != nil {
		return nil, utils.NewDependencyError("failed to delete availability", err)
	}

	utils.GetLogger().Info("Availability slot deleted",
		zap.String("availability_id", availabilityID),
		zap.String("therapist_id", therapistID),
	)
	return &models.ActionResult{Success: true, Message: "Availability slot deleted"}, nil
}

// EditAvailability updates one window's interval. Ordering is re-validated;
// overlap against sibling windows is not re-checked here, so an edit can
// produce overlapping windows that SetAvailability would have rejected.
func (s *DefaultScheduleService) EditAvailability(ctx context.Context, availabilityID, therapistID string, req models.EditAvailabilityRequest) (*models.ActionResult, error) {
	start, err := models.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return nil, utils.NewValidationError(err.Error())
	}
	end, err := models.ParseTimeOfDay(req.EndTime)
	if err != nil {
		return nil, utils.NewValidationError(err.Error())
	}
	if start >= end {
		return nil, utils.NewValidationError("Start time must be before end time")
	}

	err = s.Availability.UpdateTimes(ctx, availabilityID, therapistID, start.String(), end.String(), s.Clock.Now())
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewNotFoundError("Availability slot not found")
	}
	if err != nil {
		return nil, utils.NewDependencyError("failed to update availability", err)
	}

	utils.GetLogger().Info("Availability slot updated",
		zap.String("availability_id", availabilityID),
		zap.String("therapist_id", therapistID),
	)
	return &models.ActionResult{Success: true, Message: "Availability slot updated successfully"}, nil
}

func sortWindowsByStart(windows []models.AvailabilityWindow) {
	sort.SliceStable(windows, func(i, j int) bool {
		a, errA := models.ParseTimeOfDay(windows[i].StartTime)
		b, errB := models.ParseTimeOfDay(windows[j].StartTime)
		if errA != nil || errB != nil {
			return errB != nil && errA == nil
		}
		return a < b
	})
}
