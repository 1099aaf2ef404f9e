package models

import (
	"fmt"
	"strings"
)

// MaxFieldLength is the longest text value the document store accepts per field.
const MaxFieldLength = 2000

const ellipsis = "..."

// EventStatus is the moderation state of a stored event.
type EventStatus string

const (
	EventStatusUnderReview EventStatus = "under-review"
	EventStatusReviewed    EventStatus = "reviewed"
)

// ParseEventStatus maps a stored value onto the closed set of statuses.
func ParseEventStatus(raw string) (EventStatus, error) {
	switch EventStatus(strings.TrimSpace(raw)) {
	case EventStatusUnderReview:
		return EventStatusUnderReview, nil
	case EventStatusReviewed:
		return EventStatusReviewed, nil
	default:
		return "", fmt.Errorf("unknown event status %q", raw)
	}
}

// Valid reports whether the status is one of the known values.
func (s EventStatus) Valid() bool {
	return s == EventStatusUnderReview || s == EventStatusReviewed
}

// Event is a single calendar entry as exposed to the public.
type Event struct {
	EventName       string `db:"event_name" json:"eventName"`
	Month           string `db:"month" json:"month"`
	Location        string `db:"location" json:"location"`
	Link            string `db:"link" json:"link"`
	UnprocessedDate string `db:"unprocessed_date" json:"unprocessedDate"`
	Description     string `db:"description" json:"description"`
	Website         string `db:"website" json:"website"`
	StartDate       string `db:"start_date" json:"startDate"`
	EndDate         string `db:"end_date" json:"endDate"`
}

// Truncated returns a copy with every text field cut to MaxFieldLength.
func (e Event) Truncated() Event {
	return Event{
		EventName:       TruncateText(e.EventName, MaxFieldLength),
		Month:           TruncateText(e.Month, MaxFieldLength),
		Location:        TruncateText(e.Location, MaxFieldLength),
		Link:            TruncateText(e.Link, MaxFieldLength),
		UnprocessedDate: TruncateText(e.UnprocessedDate, MaxFieldLength),
		Description:     TruncateText(e.Description, MaxFieldLength),
		Website:         TruncateText(e.Website, MaxFieldLength),
		StartDate:       TruncateText(e.StartDate, MaxFieldLength),
		EndDate:         TruncateText(e.EndDate, MaxFieldLength),
	}
}

// EventRecord is an event as held by the document store.
type EventRecord struct {
	ID     string      `db:"id" json:"id"`
	Status EventStatus `db:"status" json:"status"`
	Event
}

// EventsData is the shape of the bundled static dataset.
type EventsData struct {
	Events []Event `json:"events"`
}

// TruncateText shortens text to max characters, ending it with an ellipsis.
func TruncateText(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	if max <= len(ellipsis) {
		return string(runes[:max])
	}
	return string(runes[:max-len(ellipsis)]) + ellipsis
}

// Preview cuts text to max characters and appends an ellipsis after the cut.
func Preview(text string, max int) (string, bool) {
	runes := []rune(text)
	if len(runes) <= max {
		return text, false
	}
	return string(runes[:max]) + ellipsis, true
}
