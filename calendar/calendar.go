// Package calendar builds the per-day view of the events calendar.
package calendar

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Luismorlan/maag/model"
	"github.com/Luismorlan/maag/normalizer"
)

const (
	AllFilter          = "все"
	DefaultTag         = "Событие"
	DefaultLocation    = "Место уточняется"
	DefaultTimeLabel   = "Время уточняется"
	MaxSmallEvents     = 4
	startTimeLabelTmpl = "Начало в %s"
)

var genitiveMonths = [...]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

// Item is an event as rendered on the calendar.
type Item struct {
	Id             string    `json:"id"`
	Title          string    `json:"title"`
	Tag            string    `json:"tag"`
	Image          string    `json:"image"`
	Location       string    `json:"location"`
	Time           string    `json:"time"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	DateRangeLabel string    `json:"dateRangeLabel"`
	Url            string    `json:"url"`
}

// Day is the calendar for one selected date. Events are those starting or
// ending on the date, SmallEvents are those running through it.
type Day struct {
	Date        time.Time `json:"date"`
	Filters     []string  `json:"filters"`
	Events      []Item    `json:"events"`
	SmallEvents []Item    `json:"smallEvents"`
}

// ToItem normalizes an event to whole UTC days. An event without an end
// date lasts one day.
func ToItem(e model.Event) Item {
	start := normalizer.UTCMidnight(e.StartDate)
	end := start
	if e.EndDate != nil {
		end = normalizer.UTCMidnight(*e.EndDate)
	}
	tag := normalizer.EventCategoryLabel(e.Category)
	if tag == "" {
		tag = DefaultTag
	}
	title := strings.TrimSpace(e.Title)
	if title == "" {
		title = DefaultTag
	}
	location := strings.TrimSpace(e.Address)
	if location == "" {
		location = DefaultLocation
	}
	return Item{
		Id:             e.Id,
		Title:          title,
		Tag:            tag,
		Image:          e.ImageUrl,
		Location:       location,
		Time:           TimeLabel(e),
		StartDate:      start,
		EndDate:        end,
		DateRangeLabel: RangeLabel(start, end),
		Url:            "/events/" + e.Id,
	}
}

// TimeLabel renders the time of day of an event.
func TimeLabel(e model.Event) string {
	start := trimmed(e.StartTime)
	end := trimmed(e.EndTime)
	switch e.TimeMode {
	case model.TimeModeStart:
		if start != "" {
			return fmt.Sprintf(startTimeLabelTmpl, start)
		}
	case model.TimeModeRange:
		if start != "" && end != "" {
			return start + " – " + end
		}
	}
	return DefaultTimeLabel
}

// RangeLabel renders "5 марта 2025 г." for a single day and
// "5 марта – 9 марта 2025 г." for a range. The year of the start is only
// shown when it differs from the end year.
func RangeLabel(start, end time.Time) string {
	if start.Equal(end) {
		return formatDay(start, true)
	}
	sameYear := start.Year() == end.Year()
	return formatDay(start, !sameYear) + " – " + formatDay(end, true)
}

func formatDay(t time.Time, withYear bool) string {
	s := fmt.Sprintf("%d %s", t.Day(), genitiveMonths[t.Month()-1])
	if withYear {
		s += fmt.Sprintf(" %d г.", t.Year())
	}
	return s
}

// BuildDay selects the events for date. tag filters by tag label, empty or
// AllFilter keeps every tag.
func BuildDay(events []model.Event, date time.Time, tag string) Day {
	day := normalizer.UTCMidnight(date)

	items := make([]Item, 0, len(events))
	for _, e := range events {
		if e.StartDate.IsZero() {
			continue
		}
		items = append(items, ToItem(e))
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].StartDate.Before(items[j].StartDate)
	})

	filters := []string{AllFilter}
	seen := map[string]bool{}
	for _, it := range items {
		if !seen[it.Tag] {
			seen[it.Tag] = true
			filters = append(filters, it.Tag)
		}
	}

	result := Day{Date: day, Filters: filters, Events: []Item{}, SmallEvents: []Item{}}
	for _, it := range items {
		if tag != "" && tag != AllFilter && it.Tag != tag {
			continue
		}
		switch {
		case isBoundary(day, it):
			result.Events = append(result.Events, it)
		case isOngoing(day, it) && len(result.SmallEvents) < MaxSmallEvents:
			result.SmallEvents = append(result.SmallEvents, it)
		}
	}
	return result
}

// DefaultDate picks the day the calendar opens on: today when something is
// running today or nothing is coming, otherwise the start of the nearest
// upcoming event.
func DefaultDate(events []model.Event, now time.Time) time.Time {
	today := normalizer.UTCMidnight(now)
	items := make([]Item, 0, len(events))
	for _, e := range events {
		if !e.StartDate.IsZero() {
			items = append(items, ToItem(e))
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].StartDate.Before(items[j].StartDate)
	})

	for _, it := range items {
		if isWithin(today, it) {
			return today
		}
	}
	for _, it := range items {
		if !it.StartDate.Before(today) || !it.EndDate.Before(today) {
			return it.StartDate
		}
	}
	return today
}

func isWithin(day time.Time, it Item) bool {
	return !day.Before(it.StartDate) && !day.After(it.EndDate)
}

func isBoundary(day time.Time, it Item) bool {
	return day.Equal(it.StartDate) || day.Equal(it.EndDate)
}

func isOngoing(day time.Time, it Item) bool {
	return day.After(it.StartDate) && day.Before(it.EndDate)
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
