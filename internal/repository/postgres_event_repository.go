package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/payram/igaming-events-api/internal/models"
	appErrors "github.com/payram/igaming-events-api/pkg/errors"
)

const eventColumns = "id, status, event_name, month, location, link, unprocessed_date, description, website, start_date, end_date"

// PostgresEventRepository persists events and registrations in PostgreSQL.
type PostgresEventRepository struct {
	db       *sqlx.DB
	pageSize int
}

// NewPostgresEventRepository constructs the repository.
func NewPostgresEventRepository(db *sqlx.DB, pageSize int) *PostgresEventRepository {
	return &PostgresEventRepository{db: db, pageSize: pageSize}
}

type eventRow struct {
	ID        string    `db:"id"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
	models.Event
}

// QueryEvents returns one page ordered by id. The cursor is the last id of the previous page.
func (r *PostgresEventRepository) QueryEvents(ctx context.Context, filter models.EventFilter) (*models.EventPage, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.Link != "" {
		where = append(where, fmt.Sprintf("link = $%d", len(args)+1))
		args = append(args, filter.Link)
	}
	if filter.Status != "" {
		where = append(where, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, string(filter.Status))
	}
	if filter.Cursor != "" {
		where = append(where, fmt.Sprintf("id > $%d", len(args)+1))
		args = append(args, filter.Cursor)
	}

	size := pageSizeOrDefault(filter.PageSize, r.pageSize)
	query := fmt.Sprintf("SELECT %s FROM events WHERE %s ORDER BY id ASC LIMIT %d", eventColumns, strings.Join(where, " AND "), size+1)

	var rows []eventRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}

	page := &models.EventPage{}
	if len(rows) > size {
		rows = rows[:size]
		page.HasMore = true
		page.NextCursor = rows[len(rows)-1].ID
	}
	page.Records = make([]models.EventRecord, 0, len(rows))
	for _, row := range rows {
		record := models.EventRecord{ID: row.ID, Event: row.Event}
		if status, err := models.ParseEventStatus(row.Status); err == nil {
			record.Status = status
		}
		page.Records = append(page.Records, record)
	}
	return page, nil
}

// CreateEvent inserts an event and returns its generated id.
func (r *PostgresEventRepository) CreateEvent(ctx context.Context, record *models.EventRecord) (string, error) {
	row := eventRow{
		ID:     record.ID,
		Status: string(record.Status),
		Event:  record.Event,
	}
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	row.CreatedAt = now
	row.UpdatedAt = now

	query := `INSERT INTO events (id, status, event_name, month, location, link, unprocessed_date, description, website, start_date, end_date, created_at, updated_at)
VALUES (:id, :status, :event_name, :month, :location, :link, :unprocessed_date, :description, :website, :start_date, :end_date, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return "", fmt.Errorf("create event: %w", err)
	}
	return row.ID, nil
}

// UpdateEvent overwrites the event identified by record.ID.
func (r *PostgresEventRepository) UpdateEvent(ctx context.Context, record *models.EventRecord) error {
	row := eventRow{
		ID:        record.ID,
		Status:    string(record.Status),
		UpdatedAt: time.Now().UTC(),
		Event:     record.Event,
	}
	query := `UPDATE events SET status = :status, event_name = :event_name, month = :month, location = :location, link = :link,
unprocessed_date = :unprocessed_date, description = :description, website = :website, start_date = :start_date, end_date = :end_date, updated_at = :updated_at
WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, row)
	if err != nil {
		return fmt.Errorf("update event %s: %w", record.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update event %s: %w", record.ID, err)
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("event %s no longer exists", record.ID))
	}
	return nil
}

// CreateRegistration inserts an invite registration.
func (r *PostgresEventRepository) CreateRegistration(ctx context.Context, reg *models.Registration) (string, error) {
	if reg.ID == "" {
		reg.ID = uuid.NewString()
	}
	query := `INSERT INTO registrations (id, name, email, industry, created_at) VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.db.ExecContext(ctx, query, reg.ID, reg.Name, reg.Email, reg.Industry, time.Now().UTC()); err != nil {
		return "", fmt.Errorf("create registration: %w", err)
	}
	return reg.ID, nil
}
