package models

import "time"

// AvailabilityWindow is a therapist-declared interval of bookable time, either
// recurring (tied to a weekday) or an override (tied to one specific date).
// Start and end labels are canonical "H:MM AM/PM" strings; OverrideDate is a
// "YYYY-MM-DD" string, empty for recurring windows.
type AvailabilityWindow struct {
	AvailabilityID string    `bson:"availability_id" json:"availability_id"`
	TherapistID    string    `bson:"therapist_id" json:"therapist_id"`
	DayOfWeek      string    `bson:"day_of_week" json:"day_of_week"`
	StartTime      string    `bson:"start_time" json:"start_time"`
	EndTime        string    `bson:"end_time" json:"end_time"`
	IsAvailable    bool      `bson:"is_available" json:"is_available"`
	OverrideDate   string    `bson:"override_date,omitempty" json:"override_date,omitempty"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`
}

// SlotInput is one window in a SetAvailability batch.
type SlotInput struct {
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

// SetAvailabilityRequest replaces a therapist's windows for one weekday or one
// override date.
type SetAvailabilityRequest struct {
	DayOfWeek    string      `json:"day_of_week" binding:"required"`
	Slots        []SlotInput `json:"slots"`
	IsAvailable  bool        `json:"is_available"`
	OverrideDate string      `json:"override_date,omitempty"`
}

// SetAvailabilityResult reports the outcome of a batch replace.
type SetAvailabilityResult struct {
	Success         bool     `json:"success"`
	Message         string   `json:"message"`
	SlotsCreated    int      `json:"slots_created"`
	AvailabilityIDs []string `json:"availability_ids"`
}

// EditAvailabilityRequest updates one window's interval in place.
type EditAvailabilityRequest struct {
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

// AvailableSlot is a concrete, date-bound candidate appointment time derived
// from an availability window.
type AvailableSlot struct {
	SlotID      string `json:"slot_id"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsAvailable bool   `json:"is_available"`
	Date        string `json:"date"`
}

// TherapistDaySlots is the bookable-slot view for one therapist on one date,
// enriched with display fields for presentation.
type TherapistDaySlots struct {
	TherapistID    string          `json:"therapist_id"`
	TherapistName  string          `json:"therapist_name"`
	Date           string          `json:"date"`
	AvailableSlots []AvailableSlot `json:"available_slots"`
	Price          float64         `json:"price"`
	CenterName     string          `json:"center_name"`
}

// UpcomingAvailability lists a day's windows in the therapist's forward view.
type UpcomingAvailability struct {
	Date    string              `json:"date"`
	DayName string              `json:"day_name"`
	Slots   []AvailabilitySlice `json:"slots"`
}

// AvailabilitySlice is the terse window summary used by schedule views.
type AvailabilitySlice struct {
	AvailabilityID string `json:"availability_id"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
}

// DaySchedule bundles one date's sessions and windows for the therapist view.
type DaySchedule struct {
	Date              string               `json:"date"`
	Sessions          []TherapySession     `json:"sessions"`
	AvailabilitySlots []AvailabilityWindow `json:"availability_slots"`
}

// MonthSchedule lists the dates in a month with a session or any availability.
type MonthSchedule struct {
	ScheduledDates []string `json:"scheduled_dates"`
}
