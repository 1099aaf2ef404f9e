package dto

import "github.com/payram/igaming-events-api/internal/models"

// Data sources reported by the read endpoints.
const (
	SourceLive     = "live"
	SourceFallback = "fallback"
)

// EventCard is one tile of the card grid.
type EventCard struct {
	models.Event
	DateRange          string `json:"dateRange"`
	DescriptionPreview string `json:"descriptionPreview"`
}

// CardStats is the footer summary of the card grid.
type CardStats struct {
	TotalEvents int `json:"totalEvents"`
	Locations   int `json:"locations"`
}

// CardPage is a page of the card grid.
type CardPage struct {
	Cards      []EventCard
	Pagination models.Pagination
	Stats      CardStats
	Source     string
}

// EventDetail is the detail view of one event.
type EventDetail struct {
	models.Event
	DateRange          string `json:"dateRange"`
	LongDateRange      string `json:"longDateRange"`
	DescriptionPreview string `json:"descriptionPreview"`
	HasMore            bool   `json:"hasMore"`
}

// CardQuery holds the card grid query string.
type CardQuery struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// CalendarQuery holds the month view query string.
type CalendarQuery struct {
	Month    string `form:"month" binding:"omitempty,datetime=2006-01"`
	Expanded string `form:"expanded"`
}
