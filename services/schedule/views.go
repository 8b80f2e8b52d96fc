// File: services/schedule/views.go
package schedule

import (
	"context"
	"sort"
	"time"

	"mindhaven/models"
	"mindhaven/utils"
)

// GetUpcomingAvailability returns the next `days` days that have any windows,
// starting tomorrow. Override windows take precedence over recurring ones for
// each date.
func (s *DefaultScheduleService) GetUpcomingAvailability(ctx context.Context, therapistID string, days int) ([]models.UpcomingAvailability, error) {
	if days <= 0 {
		days = 5
	}
	now := s.Clock.Now()
	upcoming := make([]models.UpcomingAvailability, 0, days)

	for i := 1; i <= days; i++ {
		target := now.AddDate(0, 0, i)
		dateStr := target.Format(models.DateLayout)

		windows, err := s.Availability.ListForDate(ctx, therapistID, dateStr)
		if err != nil {
			return nil, utils.NewDependencyError("failed to fetch availability", err)
		}
		if len(windows) == 0 {
			windows, err = s.Availability.ListRecurring(ctx, therapistID, models.DayOfWeek(target))
			if err != nil {
				return nil, utils.NewDependencyError("failed to fetch availability", err)
			}
		}

		slices := make([]models.AvailabilitySlice, 0, len(windows))
		for _, w := range windows {
			if w.StartTime == "" {
				continue
			}
			slices = append(slices, models.AvailabilitySlice{
				AvailabilityID: w.AvailabilityID,
				StartTime:      w.StartTime,
				EndTime:        w.EndTime,
			})
		}
		if len(slices) == 0 {
			continue
		}

		sort.SliceStable(slices, func(a, b int) bool {
			ta, errA := models.ParseTimeOfDay(slices[a].StartTime)
			tb, errB := models.ParseTimeOfDay(slices[b].StartTime)
			return errA == nil && errB == nil && ta < tb
		})
		upcoming = append(upcoming, models.UpcomingAvailability{
			Date:    dateStr,
			DayName: target.Weekday().String(),
			Slots:   slices,
		})
	}
	return upcoming, nil
}

// GetDaySchedule returns one date's sessions (client names resolved) together
// with the availability windows in effect that day.
func (s *DefaultScheduleService) GetDaySchedule(ctx context.Context, therapistID, date string) (*models.DaySchedule, error) {
	targetDate, err := time.ParseInLocation(models.DateLayout, date, utils.ClinicLocation())
	if err != nil {
		return nil, utils.NewValidationError("Invalid date format. Use YYYY-MM-DD")
	}

	dayStart, dayEnd := dayBounds(targetDate)
	sessions, err := s.Sessions.ListForTherapistDay(ctx, therapistID, dayStart, dayEnd)
	if err != nil {
		return nil, utils.NewDependencyError("failed to fetch sessions", err)
	}
	for i := range sessions {
		if sessions[i].ClientName != "" {
			continue
		}
		client, err := s.Directory.ResolveClient(ctx, sessions[i].ClientID)
		if err == nil && client != nil {
			sessions[i].ClientName = client.DisplayName()
		}
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
	visible := windows[:0]
	for _, w := range windows {
		if w.StartTime != "" {
			visible = append(visible, w)
		}
	}
	sortWindowsByStart(visible)

	return &models.DaySchedule{
		Date:              date,
		Sessions:          sessions,
		AvailabilitySlots: visible,
	}, nil
}

// GetMonthSchedule returns every date in the month that has a session, an
// override window, or a recurring-window weekday hit.
func (s *DefaultScheduleService) GetMonthSchedule(ctx context.Context, therapistID string, year, month int) (*models.MonthSchedule, error) {
	if month < 1 || month > 12 {
		return nil, utils.NewValidationError("Month must be between 1 and 12")
	}
	if year < 2000 || year > 2100 {
		return nil, utils.NewValidationError("Year must be between 2000 and 2100")
	}

	loc := utils.ClinicLocation()
	startOfMonth := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	endOfMonth := startOfMonth.AddDate(0, 1, 0)

	dates := map[string]struct{}{}

	sessions, err := s.Sessions.ListBetween(ctx, therapistID, startOfMonth, endOfMonth)
	if err != nil {
		return nil, utils.NewDependencyError("failed to fetch sessions", err)
	}
	for _, session := range sessions {
		if !session.ScheduledAt.IsZero() {
			dates[session.ScheduledAt.In(loc).Format(models.DateLayout)] = struct{}{}
		}
	}

	overrideDates, err := s.Availability.ListOverrideDatesInRange(ctx, therapistID,
		startOfMonth.Format(models.DateLayout), endOfMonth.Format(models.DateLayout))
	if err != nil {
		return nil, utils.NewDependencyError("failed to fetch availability", err)
	}
	for _, d := range overrideDates {
		dates[d] = struct{}{}
	}

	recurringDays, err := s.Availability.ListRecurringDays(ctx, therapistID)
	if err != nil {
		return nil, utils.NewDependencyError("failed to fetch availability", err)
	}
	if len(recurringDays) > 0 {
		daySet := map[string]struct{}{}
		for _, d := range recurringDays {
			daySet[d] = struct{}{}
		}
		for cur := startOfMonth; cur.Before(endOfMonth); cur = cur.AddDate(0, 0, 1) {
			if _, ok := daySet[models.DayOfWeek(cur)]; ok {
				dates[cur.Format(models.DateLayout)] = struct{}{}
			}
		}
	}

	sorted := make([]string, 0, len(dates))
	for d := range dates {
		sorted = append(sorted, d)
	}
	sort.Strings(sorted)
	return &models.MonthSchedule{ScheduledDates: sorted}, nil
}
