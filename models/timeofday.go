package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// TimeOfDay is a wall-clock time with no date, stored as minutes from midnight
// (e.g., 420 for 7:00 AM). All parsing and formatting of "H:MM AM/PM" labels
// goes through this type.
type TimeOfDay int

// ParseTimeOfDay parses labels like "9:00 AM", "09:00 am", "2:30PM".
// A missing meridiem is read as AM, matching legacy client payloads.
func ParseTimeOfDay(label string) (TimeOfDay, error) {
	clean := strings.ToUpper(strings.Join(strings.Fields(label), " "))
	switch {
	case strings.HasSuffix(clean, "AM") && !strings.HasSuffix(clean, " AM"):
		clean = strings.TrimSuffix(clean, "AM") + " AM"
	case strings.HasSuffix(clean, "PM") && !strings.HasSuffix(clean, " PM"):
		clean = strings.TrimSuffix(clean, "PM") + " PM"
	case !strings.HasSuffix(clean, " AM") && !strings.HasSuffix(clean, " PM"):
		clean += " AM"
	}
	t, err := time.Parse("3:04 PM", clean)
	if err != nil {
		return 0, fmt.Errorf("invalid time format %q: use 'H:MM AM/PM'", label)
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

// String renders the canonical display form: no leading zero on the hour,
// upper-case meridiem.
func (t TimeOfDay) String() string {
	h, m := int(t)/60, int(t)%60
	period := "AM"
	switch {
	case h == 0:
		h = 12
	case h == 12:
		period = "PM"
	case h > 12:
		h -= 12
		period = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", h, m, period)
}

// At anchors the wall-clock time on the given calendar date.
func (t TimeOfDay) At(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), int(t)/60, int(t)%60, 0, 0, date.Location())
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect.
func Overlaps(aStart, aEnd, bStart, bEnd TimeOfDay) bool {
	return aStart < bEnd && bStart < aEnd
}

// FormatClockTime renders an absolute timestamp as the canonical wall-clock label.
func FormatClockTime(t time.Time) string {
	return TimeOfDay(t.Hour()*60 + t.Minute()).String()
}

// DayOfWeek returns the lowercase weekday name for a date.
func DayOfWeek(date time.Time) string {
	return strings.ToLower(date.Weekday().String())
}

// ValidDays enumerates the accepted day_of_week values.
var ValidDays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// IsValidDay reports whether day is one of the seven weekday names.
func IsValidDay(day string) bool {
	for _, d := range ValidDays {
		if d == strings.ToLower(day) {
			return true
		}
	}
	return false
}
