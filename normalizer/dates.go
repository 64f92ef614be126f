package normalizer

import (
	"strings"
	"time"

	"github.com/Luismorlan/maag/model"
	"github.com/araddon/dateparse"
	"github.com/pkg/errors"
)

const clockLayout = "15:04"

// ParseDate parses a date as sent by the dashboard. Dates without a zone
// are read as UTC.
func ParseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, errors.New("empty date")
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, errors.Wrap(err, "fail to parse date "+s)
	}
	return t.UTC(), nil
}

// ParseClock parses "HH:MM" and returns it in canonical two-digit form.
func ParseClock(raw string) (string, time.Time, error) {
	t, err := time.Parse(clockLayout, strings.TrimSpace(raw))
	if err != nil {
		return "", time.Time{}, err
	}
	return t.Format(clockLayout), t, nil
}

// EventScheduleInput is the raw date/time part of an event payload.
type EventScheduleInput struct {
	StartDate *string
	EndDate   *string
	TimeMode  string
	StartTime *string
	EndTime   *string
}

// EventSchedule is the validated date/time part of an event.
type EventSchedule struct {
	StartDate time.Time
	EndDate   *time.Time
	DateType  string
	TimeMode  string
	StartTime *string
	EndTime   *string
}

// NormalizeEventSchedule validates the date range and the time of day of an
// event. The start date is required, the end date is optional and may not
// precede the start date.
func NormalizeEventSchedule(in EventScheduleInput) (EventSchedule, error) {
	var s EventSchedule

	if in.StartDate == nil || strings.TrimSpace(*in.StartDate) == "" {
		return s, Invalid("Start date is required for event")
	}
	start, err := ParseDate(*in.StartDate)
	if err != nil {
		return s, Invalid("Start date is required for event")
	}
	s.StartDate = start

	if in.EndDate != nil && strings.TrimSpace(*in.EndDate) != "" {
		end, err := ParseDate(*in.EndDate)
		if err != nil {
			return s, Invalid("Finish date is not a valid date")
		}
		if end.Before(start) {
			return s, Invalid("Finish date can not be earlier than start date")
		}
		s.EndDate = &end
	}

	s.DateType = model.DateTypeSingle
	if s.EndDate != nil && !SameDay(s.StartDate, *s.EndDate) {
		s.DateType = model.DateTypeDuration
	}

	if err := normalizeTimeOfDay(&s, in); err != nil {
		return EventSchedule{}, err
	}
	return s, nil
}

func normalizeTimeOfDay(s *EventSchedule, in EventScheduleInput) error {
	mode := strings.ToLower(strings.TrimSpace(in.TimeMode))
	switch mode {
	case model.TimeModeStart:
		if isBlank(in.StartTime) {
			return Invalid("Start time is required")
		}
		start, _, err := ParseClock(*in.StartTime)
		if err != nil {
			return Invalid("Time must be in HH:MM format")
		}
		s.TimeMode = model.TimeModeStart
		s.StartTime = &start
	case model.TimeModeRange:
		if isBlank(in.StartTime) || isBlank(in.EndTime) {
			return Invalid("Start and end time are required for a time range")
		}
		start, startClock, err := ParseClock(*in.StartTime)
		if err != nil {
			return Invalid("Time must be in HH:MM format")
		}
		end, endClock, err := ParseClock(*in.EndTime)
		if err != nil {
			return Invalid("Time must be in HH:MM format")
		}
		if s.DateType == model.DateTypeSingle && endClock.Before(startClock) {
			return Invalid("End time can not be earlier than start time")
		}
		s.TimeMode = model.TimeModeRange
		s.StartTime = &start
		s.EndTime = &end
	default:
		s.TimeMode = model.TimeModeNone
	}
	return nil
}

// SameDay compares the UTC calendar day of two instants.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// UTCMidnight truncates t to the start of its UTC day.
func UTCMidnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}
