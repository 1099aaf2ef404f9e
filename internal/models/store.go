package models

// EventFilter narrows a document store query. Empty fields match everything.
type EventFilter struct {
	Link     string
	Status   EventStatus
	Cursor   string
	PageSize int
}

// EventPage is one page of a cursor-paginated store query.
type EventPage struct {
	Records    []EventRecord
	NextCursor string
	HasMore    bool
}

// Events projects records onto their public event payloads.
func Events(records []EventRecord) []Event {
	events := make([]Event, len(records))
	for i, record := range records {
		events[i] = record.Event
	}
	return events
}
