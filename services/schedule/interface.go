// File: services/schedule/interface.go
package schedule

import (
	"context"

	availabilityRepo "mindhaven/database/repository/availability"
	directoryRepo "mindhaven/database/repository/directory"
	sessionRepo "mindhaven/database/repository/session"
	"mindhaven/models"
	"mindhaven/utils"
)

// ScheduleService owns therapist availability and the derived bookable slots.
type ScheduleService interface {
	SetAvailability(ctx context.Context, therapistID string, req models.SetAvailabilityRequest) (*models.SetAvailabilityResult, error)
	GetAvailability(ctx context.Context, therapistID, dayOfWeek string) ([]models.AvailabilityWindow, error)
	DeleteAvailability(ctx context.Context, availabilityID, therapistID string) (*models.ActionResult, error)
	EditAvailability(ctx context.Context, availabilityID, therapistID string, req models.EditAvailabilityRequest) (*models.ActionResult, error)

	ComputeAvailableSlots(ctx context.Context, therapistID, date string) (*models.TherapistDaySlots, error)

	GetUpcomingAvailability(ctx context.Context, therapistID string, days int) ([]models.UpcomingAvailability, error)
	GetDaySchedule(ctx context.Context, therapistID, date string) (*models.DaySchedule, error)
	GetMonthSchedule(ctx context.Context, therapistID string, year, month int) (*models.MonthSchedule, error)
}

// DefaultScheduleService is the production implementation.
type DefaultScheduleService struct {
	Availability availabilityRepo.AvailabilityRepository
	Sessions     sessionRepo.SessionRepository
	Directory    directoryRepo.DirectoryRepository
	Clock        utils.Clock
}
