// File: services/booking/interface.go
package booking

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	availabilityRepo "mindhaven/database/repository/availability"
	directoryRepo "mindhaven/database/repository/directory"
	sessionRepo "mindhaven/database/repository/session"
	"mindhaven/models"
	"mindhaven/utils"
)

// BookingService creates sessions against available slots and drives them
// through their lifecycle.
type BookingService interface {
	CreateBooking(ctx context.Context, clientID string, req models.BookingRequest) (*models.BookingConfirmation, error)
	ListClientBookings(ctx context.Context, clientID string) ([]models.TherapySession, error)
	ListTherapistBookings(ctx context.Context, therapistID string) ([]models.TherapySession, error)
	GetUpcomingSession(ctx context.Context, clientID string) (*models.UpcomingSession, error)

	UpdateSessionStatus(ctx context.Context, sessionID, therapistID string, status models.SessionStatus) (*models.StatusResult, error)
	CancelBooking(ctx context.Context, sessionID, clientID, reason string) (*models.ActionResult, error)
	ReleaseCancelledSlot(ctx context.Context, sessionID, therapistID string) (*models.ActionResult, error)

	GetPendingRating(ctx context.Context, clientID string) (*models.PendingRating, error)
	SubmitRating(ctx context.Context, clientID string, req models.SubmitRatingRequest) (*models.RatingResult, error)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Availability availabilityRepo.AvailabilityRepository
	Sessions     sessionRepo.SessionRepository
	Directory    directoryRepo.DirectoryRepository
	Clock        utils.Clock
}

const defaultDurationMinutes = 50

// newSessionID mints an opaque 64-hex session token.
func newSessionID() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic("session id entropy unavailable: " + err.Error())
	}
	return hex.EncodeToString(buf)
}
