// Package calendar holds the date helpers and the month grid layout engine
// behind the calendar and card views.
package calendar

import (
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/payram/igaming-events-api/internal/models"
)

// KeyLayout is the textual date form used by stored events.
const KeyLayout = "02-01-2006"

// ErrInvalidDate is returned for anything that is not a real DD-MM-YYYY date.
var ErrInvalidDate = errors.New("invalid date, expected DD-MM-YYYY")

// Date is a calendar day serialised as DD-MM-YYYY.
type Date struct {
	time.Time
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(FormatKey(d.Time))
}

// ParseDate parses DD-MM-YYYY into local midnight.
func ParseDate(s string) (time.Time, error) {
	return ParseDateIn(s, time.Local)
}

// ParseDateIn parses DD-MM-YYYY into midnight in loc. Out-of-range parts are
// rejected rather than normalised, so 31-02-2025 is invalid.
func ParseDateIn(s string, loc *time.Location) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return time.Time{}, ErrInvalidDate
	}
	day, err := atoiDigits(parts[0])
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	month, err := atoiDigits(parts[1])
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	year, err := atoiDigits(parts[2])
	if err != nil || year == 0 {
		return time.Time{}, ErrInvalidDate
	}
	if month < 1 || month > 12 {
		return time.Time{}, ErrInvalidDate
	}
	if day < 1 || day > DaysInMonth(year, time.Month(month)) {
		return time.Time{}, ErrInvalidDate
	}
	if loc == nil {
		loc = time.Local
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc), nil
}

func atoiDigits(s string) (int, error) {
	if s == "" {
		return 0, ErrInvalidDate
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, ErrInvalidDate
		}
	}
	return strconv.Atoi(s)
}

// FormatKey renders t as DD-MM-YYYY.
func FormatKey(t time.Time) string {
	return t.Format(KeyLayout)
}

// FormatDate renders a short weekday form, e.g. "Mon, Mar 3, 2025".
func FormatDate(t time.Time) string {
	return t.Format("Mon, Jan 2, 2006")
}

// FormatLongDate renders e.g. "Monday, March 3, 2025".
func FormatLongDate(t time.Time) string {
	return t.Format("Monday, January 2, 2006")
}

// FormatDateRange renders a single date when start and end are the same text,
// otherwise "Mar 3 - Mar 5, 2025". The raw strings are compared, not the days
// they denote, so "3-3-2025" and "03-03-2025" still render as a range.
func FormatDateRange(start, end string) string {
	startDate, startErr := ParseDate(start)
	endDate, endErr := ParseDate(end)

	if start == end {
		if startErr != nil {
			return start
		}
		return FormatDate(startDate)
	}
	if startErr != nil || endErr != nil {
		return start + " - " + end
	}
	return startDate.Format("Jan 2") + " - " + endDate.Format("Jan 2, 2006")
}

// FormatLongDateRange is the invite email variant of FormatDateRange.
func FormatLongDateRange(start, end string) string {
	startDate, startErr := ParseDate(start)
	endDate, endErr := ParseDate(end)
	if startErr != nil || endErr != nil {
		if start == end {
			return start
		}
		return start + " - " + end
	}
	if start == end {
		return FormatLongDate(startDate)
	}
	return FormatLongDate(startDate) + " - " + FormatLongDate(endDate)
}

// MonthYear renders e.g. "March 2025".
func MonthYear(t time.Time) string {
	return t.Format("January 2006")
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekdayOfMonth returns the weekday of the 1st.
func FirstWeekdayOfMonth(year int, month time.Month) time.Weekday {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday()
}

// MondayOnOrBefore returns midnight of the Monday starting t's week.
func MondayOnOrBefore(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, t.Location())
}

// SortEventsByDate returns a copy of events ordered by start date. The sort is
// stable and events with unparseable start dates go last.
func SortEventsByDate(events []models.Event) []models.Event {
	type keyed struct {
		event models.Event
		day   int
		ok    bool
	}
	items := make([]keyed, len(events))
	for i, e := range events {
		t, err := ParseDate(e.StartDate)
		items[i] = keyed{event: e, ok: err == nil}
		if err == nil {
			items[i].day = dayNumber(t)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].ok != items[j].ok {
			return items[i].ok
		}
		return items[i].day < items[j].day
	})
	sorted := make([]models.Event, len(items))
	for i, item := range items {
		sorted[i] = item.event
	}
	return sorted
}

// EventsForDate returns the events whose inclusive span covers date.
func EventsForDate(events []models.Event, date time.Time) []models.Event {
	target := dayNumber(date)
	var out []models.Event
	for _, e := range events {
		s, ok := spanOf(e)
		if !ok {
			continue
		}
		if s.start <= target && target <= s.end {
			out = append(out, e)
		}
	}
	return out
}

// dayNumber counts civil days since the Unix epoch, ignoring zone offsets.
func dayNumber(t time.Time) int {
	return int(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).Unix() / 86400)
}

func fromDayNumber(n int, loc *time.Location) time.Time {
	return time.Date(1970, time.January, 1+n, 0, 0, 0, 0, loc)
}

type span struct {
	event models.Event
	start int
	end   int
}

func spanOf(e models.Event) (span, bool) {
	start, err := ParseDate(e.StartDate)
	if err != nil {
		return span{}, false
	}
	end, err := ParseDate(e.EndDate)
	if err != nil {
		return span{}, false
	}
	return span{event: e, start: dayNumber(start), end: dayNumber(end)}, true
}
