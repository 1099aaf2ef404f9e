package repository

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jomei/notionapi"

	"github.com/payram/igaming-events-api/internal/models"
	"github.com/payram/igaming-events-api/pkg/config"
	appErrors "github.com/payram/igaming-events-api/pkg/errors"
)

// Notion property names used by the events and registrations databases.
const (
	notionTitleProperty     = "Name"
	notionStatusProperty    = "status"
	notionLinkProperty      = "link"
	notionRegistrationName  = "name"
	notionRegistrationEmail = "email"
	notionRegistrationInd   = "industry"
)

type notionDatabases interface {
	Query(ctx context.Context, id notionapi.DatabaseID, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error)
}

type notionPages interface {
	Create(ctx context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error)
	Update(ctx context.Context, id notionapi.PageID, req *notionapi.PageUpdateRequest) (*notionapi.Page, error)
}

// NotionEventRepository stores events and registrations in Notion databases.
type NotionEventRepository struct {
	databases      notionDatabases
	pages          notionPages
	eventsDB       notionapi.DatabaseID
	registrationDB notionapi.DatabaseID
	pageSize       int
}

// NewNotionClient builds an API client honouring the store timeout.
func NewNotionClient(cfg config.NotionConfig, timeout time.Duration) *notionapi.Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return notionapi.NewClient(notionapi.Token(cfg.Secret), notionapi.WithHTTPClient(&http.Client{Timeout: timeout}))
}

// NewNotionEventRepository constructs the repository. A nil client yields a
// repository that reports ErrStoreNotConfigured on every call.
func NewNotionEventRepository(client *notionapi.Client, cfg config.NotionConfig, pageSize int) *NotionEventRepository {
	repo := &NotionEventRepository{
		eventsDB:       notionapi.DatabaseID(cfg.EventsDatabaseID),
		registrationDB: notionapi.DatabaseID(cfg.RegistrationDatabaseID),
		pageSize:       pageSize,
	}
	if client != nil && cfg.Secret != "" {
		repo.databases = client.Database
		repo.pages = client.Page
	}
	return repo
}

func newNotionEventRepositoryWith(databases notionDatabases, pages notionPages, eventsDB, registrationDB string, pageSize int) *NotionEventRepository {
	return &NotionEventRepository{
		databases:      databases,
		pages:          pages,
		eventsDB:       notionapi.DatabaseID(eventsDB),
		registrationDB: notionapi.DatabaseID(registrationDB),
		pageSize:       pageSize,
	}
}

func (r *NotionEventRepository) eventsReady() error {
	if r.databases == nil || r.pages == nil {
		return appErrors.Clone(appErrors.ErrStoreNotConfigured, "NOTION_SECRET is not configured")
	}
	if r.eventsDB == "" {
		return appErrors.Clone(appErrors.ErrStoreNotConfigured, "NOTION_EVENTS_DATABASE_ID is not configured")
	}
	return nil
}

// QueryEvents returns one page of events matching the filter.
func (r *NotionEventRepository) QueryEvents(ctx context.Context, filter models.EventFilter) (*models.EventPage, error) {
	if err := r.eventsReady(); err != nil {
		return nil, err
	}

	req := &notionapi.DatabaseQueryRequest{
		StartCursor: notionapi.Cursor(filter.Cursor),
		PageSize:    pageSizeOrDefault(filter.PageSize, r.pageSize),
	}
	if f := notionFilter(filter); f != nil {
		req.Filter = f
	}

	resp, err := r.databases.Query(ctx, r.eventsDB, req)
	if err != nil {
		return nil, fmt.Errorf("query notion events: %w", err)
	}

	page := &models.EventPage{
		Records:    make([]models.EventRecord, 0, len(resp.Results)),
		HasMore:    resp.HasMore,
		NextCursor: string(resp.NextCursor),
	}
	for _, p := range resp.Results {
		page.Records = append(page.Records, recordFromNotion(p))
	}
	return page, nil
}

// CreateEvent inserts a new event page and returns its id.
func (r *NotionEventRepository) CreateEvent(ctx context.Context, record *models.EventRecord) (string, error) {
	if err := r.eventsReady(); err != nil {
		return "", err
	}

	created, err := r.pages.Create(ctx, &notionapi.PageCreateRequest{
		Parent:     notionapi.Parent{Type: notionapi.ParentTypeDatabaseID, DatabaseID: r.eventsDB},
		Properties: eventProperties(record),
	})
	if err != nil {
		return "", fmt.Errorf("create notion event: %w", err)
	}
	return created.ID.String(), nil
}

// UpdateEvent overwrites every property of the page identified by record.ID.
func (r *NotionEventRepository) UpdateEvent(ctx context.Context, record *models.EventRecord) error {
	if err := r.eventsReady(); err != nil {
		return err
	}

	if _, err := r.pages.Update(ctx, notionapi.PageID(record.ID), &notionapi.PageUpdateRequest{
		Properties: eventProperties(record),
	}); err != nil {
		return fmt.Errorf("update notion event %s: %w", record.ID, err)
	}
	return nil
}

// CreateRegistration records an invite request in the registrations database.
func (r *NotionEventRepository) CreateRegistration(ctx context.Context, reg *models.Registration) (string, error) {
	if r.pages == nil {
		return "", appErrors.Clone(appErrors.ErrStoreNotConfigured, "NOTION_SECRET is not configured")
	}
	if r.registrationDB == "" {
		return "", appErrors.Clone(appErrors.ErrStoreNotConfigured, "NOTION_REGISTRATION_DATABASE_ID is not configured")
	}

	created, err := r.pages.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{Type: notionapi.ParentTypeDatabaseID, DatabaseID: r.registrationDB},
		Properties: notionapi.Properties{
			notionRegistrationName:  notionapi.TitleProperty{Title: richText(reg.Name)},
			notionRegistrationEmail: notionapi.EmailProperty{Email: reg.Email},
			notionRegistrationInd:   notionapi.RichTextProperty{RichText: richText(reg.Industry)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("create notion registration: %w", err)
	}
	return created.ID.String(), nil
}

func notionFilter(filter models.EventFilter) notionapi.Filter {
	var conditions notionapi.AndCompoundFilter
	if filter.Link != "" {
		conditions = append(conditions, notionapi.PropertyFilter{
			Property: notionLinkProperty,
			RichText: &notionapi.TextFilterCondition{Equals: filter.Link},
		})
	}
	if filter.Status != "" {
		conditions = append(conditions, notionapi.PropertyFilter{
			Property: notionStatusProperty,
			Select:   &notionapi.SelectFilterCondition{Equals: string(filter.Status)},
		})
	}
	switch len(conditions) {
	case 0:
		return nil
	case 1:
		return conditions[0]
	default:
		return conditions
	}
}

func eventProperties(record *models.EventRecord) notionapi.Properties {
	e := record.Event
	return notionapi.Properties{
		notionTitleProperty:  notionapi.TitleProperty{Title: richText(e.EventName)},
		"eventName":          notionapi.RichTextProperty{RichText: richText(e.EventName)},
		"month":              notionapi.RichTextProperty{RichText: richText(e.Month)},
		"location":           notionapi.RichTextProperty{RichText: richText(e.Location)},
		notionLinkProperty:   notionapi.RichTextProperty{RichText: richText(e.Link)},
		"unprocessedDate":    notionapi.RichTextProperty{RichText: richText(e.UnprocessedDate)},
		"description":        notionapi.RichTextProperty{RichText: richText(e.Description)},
		"website":            notionapi.RichTextProperty{RichText: richText(e.Website)},
		"startDate":          notionapi.RichTextProperty{RichText: richText(e.StartDate)},
		"endDate":            notionapi.RichTextProperty{RichText: richText(e.EndDate)},
		notionStatusProperty: notionapi.SelectProperty{Select: notionapi.Option{Name: string(record.Status)}},
	}
}

func recordFromNotion(page notionapi.Page) models.EventRecord {
	props := page.Properties
	record := models.EventRecord{
		ID: page.ID.String(),
		Event: models.Event{
			EventName:       plainText(props, "eventName"),
			Month:           plainText(props, "month"),
			Location:        plainText(props, "location"),
			Link:            plainText(props, notionLinkProperty),
			UnprocessedDate: plainText(props, "unprocessedDate"),
			Description:     plainText(props, "description"),
			Website:         plainText(props, "website"),
			StartDate:       plainText(props, "startDate"),
			EndDate:         plainText(props, "endDate"),
		},
	}
	if record.EventName == "" {
		if title, ok := props[notionTitleProperty].(*notionapi.TitleProperty); ok && len(title.Title) > 0 {
			record.EventName = title.Title[0].PlainText
		}
	}
	if sel, ok := props[notionStatusProperty].(*notionapi.SelectProperty); ok {
		if status, err := models.ParseEventStatus(sel.Select.Name); err == nil {
			record.Status = status
		}
	}
	return record
}

// plainText reads the first rich text fragment, matching what the UI shows.
func plainText(props notionapi.Properties, name string) string {
	prop, ok := props[name].(*notionapi.RichTextProperty)
	if !ok || len(prop.RichText) == 0 {
		return ""
	}
	return prop.RichText[0].PlainText
}

func richText(content string) []notionapi.RichText {
	return []notionapi.RichText{{Type: notionapi.ObjectTypeText, Text: &notionapi.Text{Content: content}}}
}

func pageSizeOrDefault(requested, fallback int) int {
	size := requested
	if size <= 0 {
		size = fallback
	}
	if size <= 0 || size > 100 {
		size = 100
	}
	return size
}
