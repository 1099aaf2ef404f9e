package dto

import "github.com/payram/igaming-events-api/internal/models"

// Submission actions.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionInvalid = "invalid"
	ActionSkipped = "skipped"
)

// SubmitEventRequest is the payload of POST /submit-event.
type SubmitEventRequest struct {
	EventName       string `json:"eventName" validate:"required"`
	Month           string `json:"month"`
	Location        string `json:"location"`
	Link            string `json:"link" validate:"required"`
	UnprocessedDate string `json:"unprocessedDate"`
	Description     string `json:"description"`
	Website         string `json:"website"`
	StartDate       string `json:"startDate"`
	EndDate         string `json:"endDate"`
}

// Event converts the request into the domain payload.
func (r SubmitEventRequest) Event() models.Event {
	return models.Event{
		EventName:       r.EventName,
		Month:           r.Month,
		Location:        r.Location,
		Link:            r.Link,
		UnprocessedDate: r.UnprocessedDate,
		Description:     r.Description,
		Website:         r.Website,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
	}
}

// SubmitEventResult reports what a single submission did.
type SubmitEventResult struct {
	Action  string `json:"action"`
	EventID string `json:"eventId"`
}

// SubmitEventResponse is the body of a successful POST /submit-event.
type SubmitEventResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Action  string `json:"action"`
	EventID string `json:"eventId"`
}

// BulkSubmitRequest is the payload of POST /bulk-submit-event.
type BulkSubmitRequest struct {
	Events []models.Event `json:"events"`
}

// BulkItemResult is the outcome of one item of a bulk import.
type BulkItemResult struct {
	Index   int    `json:"index"`
	Link    string `json:"link"`
	Action  string `json:"action"`
	EventID string `json:"eventId,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Failed reports whether the store rejected the write.
func (r BulkItemResult) Failed() bool {
	return r.Error != "" && (r.Action == ActionCreated || r.Action == ActionUpdated)
}

// BulkSummary aggregates a bulk import.
type BulkSummary struct {
	Total   int `json:"total"`
	Updated int `json:"updated"`
	Created int `json:"created"`
	Failed  int `json:"failed"`
	Invalid int `json:"invalid"`
	Skipped int `json:"skipped"`
}

// BulkSubmitResult is what the bulk import returns to the handler.
type BulkSubmitResult struct {
	Summary BulkSummary      `json:"summary"`
	Results []BulkItemResult `json:"results"`
}

// Summarize derives the summary from per-item results.
func Summarize(results []BulkItemResult) BulkSummary {
	summary := BulkSummary{Total: len(results)}
	for _, r := range results {
		switch r.Action {
		case ActionCreated:
			summary.Created++
		case ActionUpdated:
			summary.Updated++
		case ActionInvalid:
			summary.Invalid++
		case ActionSkipped:
			summary.Skipped++
		}
		if r.Failed() {
			summary.Failed++
		}
	}
	return summary
}

// BulkSubmitResponse is the body of a successful POST /bulk-submit-event.
type BulkSubmitResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Summary BulkSummary      `json:"summary"`
	Results []BulkItemResult `json:"results"`
}

// ReviewedEventsResponse is the body of GET /reviewed-events.
type ReviewedEventsResponse struct {
	Events []models.Event `json:"events"`
}
