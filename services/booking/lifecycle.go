// File: services/booking/lifecycle.go
package booking

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"mindhaven/models"
	"mindhaven/utils"
)

// UpdateSessionStatus marks a session completed or no_show. Those states are
// terminal: once a session is finalized, only a repeat of the same status is
// accepted (as an idempotent no-op).
func (s *DefaultBookingService) UpdateSessionStatus(ctx context.Context, sessionID, therapistID string, status models.SessionStatus) (*models.StatusResult, error) {
	if status != models.StatusCompleted && status != models.StatusNoShow {
		return nil, utils.NewValidationError("Only completed or no_show statuses can be applied via this endpoint.")
	}

	session, err := s.Sessions.GetForTherapist(ctx, sessionID, therapistID)
	if err != nil {
		return nil, utils.NewDependencyError("failed to fetch session", err)
	}
	if session == nil {
		return nil, utils.NewNotFoundError("Session not found or does not belong to this therapist.")
	}

	switch session.Status {
	case status:
		return &models.StatusResult{
			Success: true,
			Message: "Session already marked as " + statusLabel(status) + ".",
			Status:  session.Status,
		}, nil
	case models.StatusCancelled:
		return nil, utils.NewValidationError("Cancelled sessions cannot be updated.")
	case models.StatusCompleted, models.StatusNoShow:
		return nil, utils.NewValidationError("Session is already finalized and cannot be updated.")
	}

	awaitingRating := status == models.StatusCompleted && session.UserRating == 0

	if err := s.Sessions.UpdateStatus(ctx, sessionID, therapistID, status, awaitingRating, s.Clock.Now()); err != nil {
		return nil, utils.NewDependencyError("failed to update session", err)
	}

	utils.GetLogger().Info("Session status updated",
		zap.String("session_id", sessionID),
		zap.String("therapist_id", therapistID),
		zap.String("status", string(status)),
	)
	return &models.StatusResult{
		Success: true,
		Message: "Session marked as " + statusLabel(status) + ".",
		Status:  status,
	}, nil
}

// CancelBooking cancels a client's scheduled session. Idempotent: cancelling
// an already-cancelled session succeeds with no state change. The slot stays
// blocked until the therapist releases it.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, sessionID, clientID, reason string) (*models.ActionResult, error) {
	session, err := s.Sessions.GetForClient(ctx, sessionID, clientID)
	if err != nil {
		return nil, utils.NewDependencyError("failed to fetch session", err)
	}
	if session == nil || session.SlotReleased {
		return nil, utils.NewNotFoundError("Booking not found")
	}

	if session.Status == models.StatusCancelled {
		return &models.ActionResult{Success: true, Message: "Booking already cancelled"}, nil
	}
	if session.Status != models.StatusScheduled {
		return nil, utils.NewValidationError("Only scheduled bookings can be cancelled")
	}

	if err := s.Sessions.MarkCancelled(ctx, sessionID, clientID, reason, s.Clock.Now()); err != nil {
		return nil, utils.NewDependencyError("failed to cancel booking", err)
	}

	utils.GetLogger().Info("Booking cancelled",
		zap.String("session_id", sessionID),
		zap.String("client_id", clientID),
		zap.String("reason", reason),
	)
	return &models.ActionResult{Success: true, Message: "Booking cancelled successfully"}, nil
}

// ReleaseCancelledSlot marks a cancelled session's time as available again.
// Setting slot_released is the only signal the slot computer honors.
func (s *DefaultBookingService) ReleaseCancelledSlot(ctx context.Context, sessionID, therapistID string) (*models.ActionResult, error) {
	session, err := s.Sessions.GetForTherapist(ctx, sessionID, therapistID)
	if err != nil {
		return nil, utils.NewDependencyError("failed to fetch session", err)
	}
	if session == nil {
		return nil, utils.NewNotFoundError("Session not found")
	}

	if session.Status != models.StatusCancelled {
		return nil, utils.NewValidationError("Only cancelled sessions can be released")
	}
	if session.SlotReleased {
		return &models.ActionResult{Success: true, Message: "Slot already released"}, nil
	}

	if err := s.Sessions.MarkSlotReleased(ctx, sessionID, therapistID, s.Clock.Now()); err != nil {
		return nil, utils.NewDependencyError("failed to release slot", err)
	}

	utils.GetLogger().Info("Cancelled slot released",
		zap.String("session_id", sessionID),
		zap.String("therapist_id", therapistID),
	)
	return &models.ActionResult{Success: true, Message: "Cancelled slot released for new bookings"}, nil
}

func statusLabel(status models.SessionStatus) string {
	return strings.ReplaceAll(string(status), "_", " ")
}
