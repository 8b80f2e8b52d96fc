// File: services/schedule/slots.go
package schedule

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"mindhaven/models"
	"mindhaven/utils"
)

// ComputeAvailableSlots derives the bookable slots for a therapist on a date.
// Override windows replace recurring windows entirely for that date. A window
// is unavailable when its own flag is off or when its interval intersects a
// scheduled session, or a cancelled one whose slot was not yet released.
func (s *DefaultScheduleService) ComputeAvailableSlots(ctx context.Context, therapistID, date string) (*models.TherapistDaySlots, error) {
	logger := utils.GetLogger()

	therapist, err := s.Directory.ResolveTherapist(ctx, therapistID)
	if err != nil {
		return nil, utils.NewDependencyError("failed to resolve therapist", err)
	}
	if therapist == nil {
		return nil, utils.NewNotFoundError("Therapist not found")
	}

	targetDate, err := time.ParseInLocation(models.DateLayout, date, utils.ClinicLocation())
	if err != nil {
		return nil, utils.NewValidationError("Invalid date format. Use YYYY-MM-DD")
	}

	result := &models.TherapistDaySlots{
		TherapistID:    therapistID,
		TherapistName:  therapist.DisplayName(),
		Date:           date,
		AvailableSlots: []models.AvailableSlot{},
		Price:          therapist.HourlyRate,
		CenterName:     therapist.CenterName(),
	}

	windows, err := s.Availability.ListForDate(ctx, therapistID, date)
	if err != nil {
		return nil, utils.NewDependencyError("failed to fetch availability", err)
	}
	if len(windows) == 0 {
		windows, err = s.Availability.ListRecurring(ctx, therapistID, models.DayOfWeek(targetDate))
		if err != nil {
			return nil, utils.NewDependencyError("failed to fetch availability", err)
		}
	}
	if len(windows) == 0 {
		return result, nil
	}

	occupied, err := s.occupiedIntervals(ctx, therapistID, targetDate)
	if err != nil {
		return nil, err
	}

	type slotEntry struct {
		start time.Time
		slot  models.AvailableSlot
	}
	entries := make([]slotEntry, 0, len(windows))

	for _, w := range windows {
		if w.StartTime == "" || w.EndTime == "" {
			// Closed-day marker or incomplete record: nothing bookable.
			continue
		}
		start, err := models.ParseTimeOfDay(w.StartTime)
		if err != nil {
			logger.Warn("Skipping availability window with malformed start label",
				zap.String("availability_id", w.AvailabilityID), zap.String("start_time", w.StartTime))
			continue
		}
		end, err := models.ParseTimeOfDay(w.EndTime)
		if err != nil {
			logger.Warn("Skipping availability window with malformed end label",
				zap.String("availability_id", w.AvailabilityID), zap.String("end_time", w.EndTime))
			continue
		}
		if end <= start {
			continue
		}

		startAt := start.At(targetDate)
		endAt := end.At(targetDate)
		booked := false
		for _, occ := range occupied {
			if startAt.Before(occ.end) && occ.start.Before(endAt) {
				booked = true
				break
			}
		}

		entries = append(entries, slotEntry{
			start: startAt,
			slot: models.AvailableSlot{
				SlotID:      w.AvailabilityID,
				StartTime:   start.String(),
				EndTime:     end.String(),
				IsAvailable: w.IsAvailable && !booked,
				Date:        date,
			},
		})
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].start.Before(entries[j].start) })
	for _, e := range entries {
		result.AvailableSlots = append(result.AvailableSlots, e.slot)
	}
	return result, nil
}

type interval struct {
	start, end time.Time
}

// occupiedIntervals collects the intervals consumed by the day's sessions.
// Sessions lacking an absolute timestamp are reconstructed from their start
// label; malformed labels are skipped so one bad historical record cannot
// blank out the whole day.
func (s *DefaultScheduleService) occupiedIntervals(ctx context.Context, therapistID string, targetDate time.Time) ([]interval, error) {
	logger := utils.GetLogger()

	dayStart, dayEnd := dayBounds(targetDate)
	sessions, err := s.Sessions.ListBlockingForDay(ctx, therapistID, dayStart, dayEnd)
	if err != nil {
		return nil, utils.NewDependencyError("failed to fetch sessions", err)
	}

	occupied := make([]interval, 0, len(sessions))
	for _, session := range sessions {
		if session.Status == models.StatusCancelled && session.SlotReleased {
			continue
		}

		start := session.ScheduledAt
		if start.IsZero() {
			if session.StartTime == "" {
				continue
			}
			label, err := models.ParseTimeOfDay(session.StartTime)
			if err != nil {
				logger.Warn("Skipping session with malformed start label",
					zap.String("session_id", session.SessionID), zap.String("start_time", session.StartTime))
				continue
			}
			start = label.At(targetDate)
		} else if start.Before(dayStart) || start.After(dayEnd) {
			continue
		}

		occupied = append(occupied, interval{
			start: start,
			end:   start.Add(time.Duration(session.Duration) * time.Minute),
		})
	}
	return occupied, nil
}

func dayBounds(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := time.Date(date.Year(), date.Month(), date.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), date.Location())
	return start, end
}
