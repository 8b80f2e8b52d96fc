// File: services/booking/rating.go
package booking

import (
	"context"
	"math"

	"go.uber.org/zap"

	"mindhaven/models"
	"mindhaven/utils"
)

// GetPendingRating returns the client's single oldest completed session that
// still awaits a rating, if any.
func (s *DefaultBookingService) GetPendingRating(ctx context.Context, clientID string) (*models.PendingRating, error) {
	session, err := s.Sessions.FindOldestPendingRating(ctx, clientID)
	if err != nil {
		return nil, utils.NewDependencyError("failed to fetch pending rating", err)
	}
	if session == nil {
		return &models.PendingRating{HasPending: false}, nil
	}

	return &models.PendingRating{
		HasPending: true,
		Session: &models.PendingRatingSession{
			SessionID:     session.SessionID,
			TherapistID:   session.TherapistID,
			TherapistName: session.TherapistName,
			ScheduledAt:   session.ScheduledAt,
			EndTime:       session.EndTime,
			Duration:      session.Duration,
			SessionType:   session.SessionType,
		},
	}, nil
}

// SubmitRating stores a 1-5 rating against a completed session owned by the
// client. A session accepts exactly one rating; resubmission is rejected.
func (s *DefaultBookingService) SubmitRating(ctx context.Context, clientID string, req models.SubmitRatingRequest) (*models.RatingResult, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, utils.NewValidationError("Rating must be between 1 and 5 stars.")
	}

	session, err := s.Sessions.GetForClient(ctx, req.SessionID, clientID)
	if err != nil {
		return nil, utils.NewDependencyError("failed to fetch session", err)
	}
	if session == nil {
		return nil, utils.NewValidationError("Session not found for this user.")
	}
	if session.Status != models.StatusCompleted {
		return nil, utils.NewValidationError("Only completed sessions can be rated.")
	}
	if session.UserRating != 0 {
		return nil, utils.NewValidationError("This session has already been rated.")
	}

	rounded := math.Round(req.Rating*10) / 10
	if err := s.Sessions.SetRating(ctx, req.SessionID, clientID, rounded, req.Feedback, s.Clock.Now()); err != nil {
		return nil, utils.NewDependencyError("failed to store rating", err)
	}

	utils.GetLogger().Info("Session rated",
		zap.String("session_id", req.SessionID),
		zap.String("client_id", clientID),
		zap.Float64("rating", rounded),
	)
	return &models.RatingResult{
		Success: true,
		Message: "Thank you for rating your session.",
		Rating:  rounded,
	}, nil
}
