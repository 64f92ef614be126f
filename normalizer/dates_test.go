package normalizer

import (
	"testing"
	"time"

	"github.com/Luismorlan/maag/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-05")
	require.Nil(t, err)
	assert.Equal(t, time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("2025-03-05T18:30:00Z")
	require.Nil(t, err)
	assert.Equal(t, 18, d.Hour())

	_, err = ParseDate("")
	assert.NotNil(t, err)
	_, err = ParseDate("not a date")
	assert.NotNil(t, err)
}

func TestNormalizeEventScheduleDates(t *testing.T) {
	_, err := NormalizeEventSchedule(EventScheduleInput{})
	v, ok := IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "Start date is required for event", v.Message)

	_, err = NormalizeEventSchedule(EventScheduleInput{StartDate: strPtr("garbage")})
	_, ok = IsValidationError(err)
	assert.True(t, ok)

	_, err = NormalizeEventSchedule(EventScheduleInput{StartDate: strPtr("2025-03-05"), EndDate: strPtr("2025-03-01")})
	v, ok = IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "Finish date can not be earlier than start date", v.Message)

	s, err := NormalizeEventSchedule(EventScheduleInput{StartDate: strPtr("2025-03-05"), EndDate: strPtr("")})
	require.Nil(t, err)
	assert.Nil(t, s.EndDate)
	assert.Equal(t, model.DateTypeSingle, s.DateType)
	assert.Equal(t, model.TimeModeNone, s.TimeMode)

	s, err = NormalizeEventSchedule(EventScheduleInput{StartDate: strPtr("2025-03-05"), EndDate: strPtr("2025-03-09")})
	require.Nil(t, err)
	require.NotNil(t, s.EndDate)
	assert.Equal(t, model.DateTypeDuration, s.DateType)
}

func TestNormalizeEventScheduleTimes(t *testing.T) {
	start := strPtr("2025-03-05")

	s, err := NormalizeEventSchedule(EventScheduleInput{StartDate: start, TimeMode: "start", StartTime: strPtr("9:30")})
	require.Nil(t, err)
	assert.Equal(t, model.TimeModeStart, s.TimeMode)
	assert.Equal(t, "09:30", *s.StartTime)
	assert.Nil(t, s.EndTime)

	_, err = NormalizeEventSchedule(EventScheduleInput{StartDate: start, TimeMode: "start"})
	_, ok := IsValidationError(err)
	assert.True(t, ok)

	_, err = NormalizeEventSchedule(EventScheduleInput{StartDate: start, TimeMode: "range", StartTime: strPtr("20:00"), EndTime: strPtr("19:00")})
	v, ok := IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "End time can not be earlier than start time", v.Message)

	// Overnight ranges are fine for multi-day events.
	s, err = NormalizeEventSchedule(EventScheduleInput{StartDate: start, EndDate: strPtr("2025-03-06"), TimeMode: "range", StartTime: strPtr("22:00"), EndTime: strPtr("02:00")})
	require.Nil(t, err)
	assert.Equal(t, "02:00", *s.EndTime)

	_, err = NormalizeEventSchedule(EventScheduleInput{StartDate: start, TimeMode: "range", StartTime: strPtr("25:00"), EndTime: strPtr("26:00")})
	v, ok = IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "Time must be in HH:MM format", v.Message)

	s, err = NormalizeEventSchedule(EventScheduleInput{StartDate: start, TimeMode: "sometimes", StartTime: strPtr("10:00")})
	require.Nil(t, err)
	assert.Equal(t, model.TimeModeNone, s.TimeMode)
	assert.Nil(t, s.StartTime)
}

func TestUTCMidnight(t *testing.T) {
	in := time.Date(2025, 3, 5, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), UTCMidnight(in))
	assert.True(t, SameDay(in, UTCMidnight(in)))
}
