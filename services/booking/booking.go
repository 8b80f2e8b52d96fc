// File: services/booking/booking.go
package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	sessionRepo "mindhaven/database/repository/session"
	"mindhaven/models"
	"mindhaven/utils"
)

// CreateBooking validates a slot and creates a scheduled session against it.
// The pre-insert "already booked" read is a courtesy fast path; the storage
// unique index is the authoritative guard, so a concurrent duplicate surfaces
// as ErrSlotTaken from Insert and maps to the same failure.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, clientID string, req models.BookingRequest) (*models.BookingConfirmation, error) {
	logger := utils.GetLogger()

	therapist, err := s.Directory.ResolveTherapist(ctx, req.TherapistID)
	if err != nil {
		return nil, utils.NewDependencyError("failed to resolve therapist", err)
	}
	if therapist == nil {
		return nil, utils.NewNotFoundError("Therapist not found")
	}

	client, err := s.Directory.ResolveClient(ctx, clientID)
	if err != nil {
		return nil, utils.NewDependencyError("failed to resolve client", err)
	}
	if client == nil {
		return nil, utils.NewNotFoundError("Client not found")
	}

	dateObj, err := time.ParseInLocation(models.DateLayout, req.Date, utils.ClinicLocation())
	if err != nil {
		return nil, utils.NewValidationError("Invalid date format. Use YYYY-MM-DD")
	}
	startOfDay, err := models.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return nil, utils.NewValidationError("Invalid time format. Use format like '9:00 AM'")
	}
	scheduledAt := startOfDay.At(dateObj)
	normalized := startOfDay.String()

	// Match the slot on the canonical label first; fall back to the caller's
	// raw label so legacy clients with odd formatting still book.
	dayOfWeek := models.DayOfWeek(dateObj)
	window, err := s.Availability.FindBookable(ctx, req.TherapistID, req.Date, dayOfWeek, normalized)
	if err != nil {
		return nil, utils.NewDependencyError("failed to fetch availability", err)
	}
	if window == nil {
		if raw := strings.TrimSpace(req.StartTime); raw != normalized {
			window, err = s.Availability.FindBookable(ctx, req.TherapistID, req.Date, dayOfWeek, raw)
			if err != nil {
				return nil, utils.NewDependencyError("failed to fetch availability", err)
			}
		}
	}
	if window == nil || !window.IsAvailable {
		return nil, utils.NewValidationError("This time slot is not available")
	}

	existing, err := s.Sessions.FindScheduledAt(ctx, req.TherapistID, scheduledAt)
	if err != nil {
		return nil, utils.NewDependencyError("failed to check existing sessions", err)
	}
	if existing != nil {
		return nil, utils.NewValidationError("This time slot is already booked")
	}

	duration := req.Duration
	if duration <= 0 {
		duration = defaultDurationMinutes
	}
	endAt := scheduledAt.Add(time.Duration(duration) * time.Minute)
	sessionFee := therapist.HourlyRate * float64(duration) / 60.0

	now := s.Clock.Now()
	session := models.TherapySession{
		SessionID:     newSessionID(),
		ClientID:      clientID,
		ClientName:    client.DisplayName(),
		TherapistID:   req.TherapistID,
		TherapistName: therapist.DisplayName(),
		ScheduledAt:   scheduledAt,
		StartTime:     normalized,
		EndTime:       models.FormatClockTime(endAt),
		Duration:      duration,
		SessionFee:    sessionFee,
		SessionType:   models.CoerceSessionType(string(req.SessionType)),
		Status:        models.StatusScheduled,
		Notes:         req.Notes,
		CenterName:    therapist.CenterName(),
		CenterAddress: therapist.CenterAddress(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.Sessions.Insert(ctx, session); err != nil {
		if errors.Is(err, sessionRepo.ErrSlotTaken) {
			return nil, utils.NewValidationError("This time slot is already booked")
		}
		return nil, utils.NewDependencyError("failed to store booking", err)
	}

	logger.Info("Booking created",
		zap.String("session_id", session.SessionID),
		zap.String("therapist_id", req.TherapistID),
		zap.String("client_id", clientID),
		zap.Time("scheduled_at", scheduledAt),
	)

	return &models.BookingConfirmation{
		BookingID:     session.SessionID,
		SessionID:     session.SessionID,
		ClientID:      clientID,
		TherapistID:   req.TherapistID,
		TherapistName: session.TherapistName,
		ScheduledAt:   scheduledAt.Format(time.RFC3339),
		StartTime:     session.StartTime,
		EndTime:       session.EndTime,
		Duration:      duration,
		SessionFee:    sessionFee,
		Status:        models.StatusScheduled,
		SessionType:   session.SessionType,
		CenterName:    session.CenterName,
		CenterAddress: session.CenterAddress,
		Message:       "Booking confirmed successfully!",
	}, nil
}

// ListClientBookings returns a client's sessions, newest scheduled first.
func (s *DefaultBookingService) ListClientBookings(ctx context.Context, clientID string) ([]models.TherapySession, error) {
	sessions, err := s.Sessions.ListByClient(ctx, clientID)
	if err != nil {
		return nil, utils.NewDependencyError("failed to fetch bookings", err)
	}
	return sessions, nil
}

// ListTherapistBookings returns a therapist's sessions, newest scheduled first.
func (s *DefaultBookingService) ListTherapistBookings(ctx context.Context, therapistID string) ([]models.TherapySession, error) {
	sessions, err := s.Sessions.ListByTherapist(ctx, therapistID)
	if err != nil {
		return nil, utils.NewDependencyError("failed to fetch bookings", err)
	}
	return sessions, nil
}

// GetUpcomingSession returns the client's next scheduled session, or nil when
// there is none. Office fields are backfilled from the directory for records
// booked before snapshotting existed.
func (s *DefaultBookingService) GetUpcomingSession(ctx context.Context, clientID string) (*models.UpcomingSession, error) {
	session, err := s.Sessions.FindUpcomingForClient(ctx, clientID, s.Clock.Now())
	if err != nil {
		return nil, utils.NewDependencyError("failed to fetch upcoming session", err)
	}
	if session == nil {
		return nil, nil
	}

	centerName := session.CenterName
	centerAddress := session.CenterAddress
	if centerName == "" || centerAddress == "" {
		therapist, err := s.Directory.ResolveTherapist(ctx, session.TherapistID)
		if err == nil && therapist != nil {
			if centerName == "" {
				centerName = therapist.CenterName()
			}
			if centerAddress == "" {
				centerAddress = therapist.CenterAddress()
			}
		}
	}

	return &models.UpcomingSession{
		SessionID:     session.SessionID,
		TherapistID:   session.TherapistID,
		TherapistName: session.TherapistName,
		ScheduledAt:   session.ScheduledAt,
		StartTime:     session.StartTime,
		EndTime:       session.EndTime,
		Duration:      session.Duration,
		SessionFee:    session.SessionFee,
		SessionType:   session.SessionType,
		CenterName:    centerName,
		CenterAddress: centerAddress,
	}, nil
}
