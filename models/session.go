package models

import "time"

// SessionStatus is the therapy session state machine.
type SessionStatus string

const (
	StatusScheduled SessionStatus = "scheduled"
	StatusCompleted SessionStatus = "completed"
	StatusNoShow    SessionStatus = "no_show"
	StatusCancelled SessionStatus = "cancelled"
)

// CoerceSessionStatus returns a valid status, defaulting when value is unknown.
func CoerceSessionStatus(value string) SessionStatus {
	switch SessionStatus(value) {
	case StatusScheduled, StatusCompleted, StatusNoShow, StatusCancelled:
		return SessionStatus(value)
	default:
		return StatusScheduled
	}
}

// SessionType distinguishes chat from in-person sessions.
type SessionType string

const (
	TypeChat     SessionType = "chat"
	TypeInPerson SessionType = "in_person"
)

// CoerceSessionType returns a valid session type, defaulting when value is unknown.
func CoerceSessionType(value string) SessionType {
	switch SessionType(value) {
	case TypeChat, TypeInPerson:
		return SessionType(value)
	default:
		return TypeInPerson
	}
}

// TherapySession is a booked therapist appointment. Therapist display fields
// are snapshotted at booking time so later profile edits do not retroactively
// change historical bookings.
type TherapySession struct {
	SessionID     string        `bson:"session_id" json:"session_id"`
	ClientID      string        `bson:"client_id" json:"client_id"`
	ClientName    string        `bson:"client_name" json:"client_name"`
	TherapistID   string        `bson:"therapist_id" json:"therapist_id"`
	TherapistName string        `bson:"therapist_name" json:"therapist_name"`
	ScheduledAt   time.Time     `bson:"scheduled_at,omitempty" json:"scheduled_at"`
	StartTime     string        `bson:"start_time" json:"start_time"`
	EndTime       string        `bson:"end_time" json:"end_time"`
	Duration      int           `bson:"duration_minutes" json:"duration_minutes"`
	SessionFee    float64       `bson:"session_fee" json:"session_fee"`
	SessionType   SessionType   `bson:"session_type" json:"session_type"`
	Status        SessionStatus `bson:"status" json:"status"`
	Notes         string        `bson:"session_notes" json:"session_notes"`
	CenterName    string        `bson:"center_name" json:"center_name"`
	CenterAddress string        `bson:"center_address" json:"center_address"`

	CancellationReason string `bson:"cancellation_reason,omitempty" json:"cancellation_reason,omitempty"`
	SlotReleased       bool   `bson:"slot_released" json:"slot_released"`

	UserRating     float64 `bson:"user_rating,omitempty" json:"user_rating,omitempty"`
	UserFeedback   string  `bson:"user_feedback" json:"user_feedback"`
	AwaitingRating bool    `bson:"awaiting_rating" json:"awaiting_rating"`

	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
	CompletedAt time.Time `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	RatedAt     time.Time `bson:"rated_at,omitempty" json:"rated_at,omitempty"`
}

// BookingRequest is the payload for creating a booking.
type BookingRequest struct {
	TherapistID string      `json:"therapist_id" binding:"required"`
	Date        string      `json:"date" binding:"required"`
	StartTime   string      `json:"start_time" binding:"required"`
	Duration    int         `json:"duration_minutes"`
	SessionType SessionType `json:"session_type"`
	Notes       string      `json:"notes"`
}

// BookingConfirmation is returned after a successful booking.
type BookingConfirmation struct {
	BookingID     string        `json:"booking_id"`
	SessionID     string        `json:"session_id"`
	ClientID      string        `json:"client_id"`
	TherapistID   string        `json:"therapist_id"`
	TherapistName string        `json:"therapist_name"`
	ScheduledAt   string        `json:"scheduled_at"`
	StartTime     string        `json:"start_time"`
	EndTime       string        `json:"end_time"`
	Duration      int           `json:"duration_minutes"`
	SessionFee    float64       `json:"session_fee"`
	Status        SessionStatus `json:"status"`
	SessionType   SessionType   `json:"session_type"`
	CenterName    string        `json:"center_name"`
	CenterAddress string        `json:"center_address"`
	Message       string        `json:"message"`
}

// UpdateSessionStatusRequest marks a session completed or no_show.
type UpdateSessionStatusRequest struct {
	Status SessionStatus `json:"status" binding:"required"`
}

// CancelBookingRequest carries the client's optional cancellation reason.
type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

// ActionResult is the generic success/message envelope for lifecycle actions.
type ActionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// StatusResult extends ActionResult with the session's status after the call.
type StatusResult struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Status  SessionStatus `json:"status"`
}

// UpcomingSession is the next scheduled session for a client.
type UpcomingSession struct {
	SessionID     string      `json:"session_id"`
	TherapistID   string      `json:"therapist_id"`
	TherapistName string      `json:"therapist_name"`
	ScheduledAt   time.Time   `json:"scheduled_at"`
	StartTime     string      `json:"start_time"`
	EndTime       string      `json:"end_time"`
	Duration      int         `json:"duration_minutes"`
	SessionFee    float64     `json:"session_fee"`
	SessionType   SessionType `json:"session_type"`
	CenterName    string      `json:"center_name"`
	CenterAddress string      `json:"center_address"`
}

// PendingRatingSession is the completed-but-unrated session surfaced to a client.
type PendingRatingSession struct {
	SessionID     string      `json:"session_id"`
	TherapistID   string      `json:"therapist_id"`
	TherapistName string      `json:"therapist_name"`
	ScheduledAt   time.Time   `json:"scheduled_at"`
	EndTime       string      `json:"end_time"`
	Duration      int         `json:"duration_minutes"`
	SessionType   SessionType `json:"session_type"`
}

// PendingRating wraps the optional pending session.
type PendingRating struct {
	HasPending bool                  `json:"has_pending"`
	Session    *PendingRatingSession `json:"session,omitempty"`
}

// SubmitRatingRequest records a 1-5 rating against a completed session.
type SubmitRatingRequest struct {
	SessionID string  `json:"session_id" binding:"required"`
	Rating    float64 `json:"rating" binding:"required"`
	Feedback  string  `json:"feedback"`
}

// RatingResult reports the stored rating.
type RatingResult struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Rating  float64 `json:"rating"`
}
