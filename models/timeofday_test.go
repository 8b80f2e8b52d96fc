package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		label string
		want  TimeOfDay
	}{
		{"9:00 AM", 9 * 60},
		{"09:00 AM", 9 * 60},
		{"9:00 am", 9 * 60},
		{"9:00AM", 9 * 60},
		{"  9:00   AM  ", 9 * 60},
		{"12:00 AM", 0},
		{"12:00 PM", 12 * 60},
		{"2:30 PM", 14*60 + 30},
		{"11:59 PM", 23*60 + 59},
		// A missing meridiem reads as AM.
		{"7:15", 7*60 + 15},
	}
	for _, tc := range cases {
		got, err := ParseTimeOfDay(tc.label)
		require.NoError(t, err, "label %q", tc.label)
		assert.Equal(t, tc.want, got, "label %q", tc.label)
	}
}

func TestParseTimeOfDayRejectsGarbage(t *testing.T) {
	for _, label := range []string{"", "banana", "25:00 AM", "9:61 AM", "9 o'clock"} {
		_, err := ParseTimeOfDay(label)
		assert.Error(t, err, "label %q", label)
	}
}

func TestTimeOfDayString(t *testing.T) {
	cases := []struct {
		minutes TimeOfDay
		want    string
	}{
		{0, "12:00 AM"},
		{9 * 60, "9:00 AM"},
		{12 * 60, "12:00 PM"},
		{13*60 + 5, "1:05 PM"},
		{23*60 + 59, "11:59 PM"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.minutes.String())
	}
}

func TestParseStringRoundTrip(t *testing.T) {
	for _, label := range []string{"12:00 AM", "9:00 AM", "12:00 PM", "2:30 PM", "11:59 PM"} {
		parsed, err := ParseTimeOfDay(label)
		require.NoError(t, err)
		assert.Equal(t, label, parsed.String())
	}
}

func TestTimeOfDayAt(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*60*60)
	date := time.Date(2025, 3, 3, 17, 45, 12, 0, loc)

	tod, err := ParseTimeOfDay("9:00 AM")
	require.NoError(t, err)

	at := tod.At(date)
	assert.Equal(t, time.Date(2025, 3, 3, 9, 0, 0, 0, loc), at)
	assert.Equal(t, loc, at.Location())
}

func TestOverlapsHalfOpen(t *testing.T) {
	nine, _ := ParseTimeOfDay("9:00 AM")
	ten, _ := ParseTimeOfDay("10:00 AM")
	eleven, _ := ParseTimeOfDay("11:00 AM")
	halfTen, _ := ParseTimeOfDay("10:30 AM")

	// Adjacent windows do not overlap.
	assert.False(t, Overlaps(nine, ten, ten, eleven))
	assert.False(t, Overlaps(ten, eleven, nine, ten))

	assert.True(t, Overlaps(nine, ten, nine, ten))
	assert.True(t, Overlaps(nine, eleven, ten, halfTen))
	assert.True(t, Overlaps(halfTen, eleven, nine, eleven))
}

func TestFormatClockTime(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*60*60)
	assert.Equal(t, "9:50 AM", FormatClockTime(time.Date(2025, 3, 3, 9, 50, 0, 0, loc)))
	assert.Equal(t, "12:00 AM", FormatClockTime(time.Date(2025, 3, 3, 0, 0, 0, 0, loc)))
	assert.Equal(t, "1:05 PM", FormatClockTime(time.Date(2025, 3, 3, 13, 5, 30, 0, loc)))
}

func TestDayOfWeek(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*60*60)
	assert.Equal(t, "monday", DayOfWeek(time.Date(2025, 3, 3, 0, 0, 0, 0, loc)))
	assert.Equal(t, "sunday", DayOfWeek(time.Date(2025, 3, 9, 0, 0, 0, 0, loc)))
}

func TestIsValidDay(t *testing.T) {
	assert.True(t, IsValidDay("monday"))
	assert.True(t, IsValidDay("Monday"))
	assert.False(t, IsValidDay("funday"))
	assert.False(t, IsValidDay(""))
}
