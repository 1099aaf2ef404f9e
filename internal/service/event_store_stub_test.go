package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/payram/igaming-events-api/internal/models"
)

// eventStoreStub is an in-memory document store shared by the service tests.
type eventStoreStub struct {
	mu        sync.Mutex
	records   []models.EventRecord
	pageSize  int
	queryErr  error
	createErr map[string]error
	updateErr map[string]error
	nextID    int
	creates   []models.EventRecord
	updates   []models.EventRecord
	queries   []models.EventFilter
	regs      []models.Registration
	regErr    error
}

func (s *eventStoreStub) QueryEvents(ctx context.Context, filter models.EventFilter) (*models.EventPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, filter)
	if s.queryErr != nil {
		return nil, s.queryErr
	}

	var matched []models.EventRecord
	for _, r := range s.records {
		if filter.Link != "" && r.Link != filter.Link {
			continue
		}
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		matched = append(matched, r)
	}

	start := 0
	if filter.Cursor != "" {
		fmt.Sscanf(filter.Cursor, "%d", &start)
	}
	size := s.pageSize
	if size <= 0 {
		size = 100
	}
	end := start + size
	page := &models.EventPage{}
	if end < len(matched) {
		page.HasMore = true
		page.NextCursor = fmt.Sprintf("%d", end)
	} else {
		end = len(matched)
	}
	if start < end {
		page.Records = append(page.Records, matched[start:end]...)
	}
	return page, nil
}

func (s *eventStoreStub) CreateEvent(ctx context.Context, record *models.EventRecord) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.createErr[record.Link]; err != nil {
		return "", err
	}
	s.nextID++
	created := *record
	created.ID = fmt.Sprintf("new-%d", s.nextID)
	s.creates = append(s.creates, created)
	s.records = append(s.records, created)
	return created.ID, nil
}

func (s *eventStoreStub) UpdateEvent(ctx context.Context, record *models.EventRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.updateErr[record.Link]; err != nil {
		return err
	}
	for i := range s.records {
		if s.records[i].ID == record.ID {
			s.records[i] = *record
			s.updates = append(s.updates, *record)
			return nil
		}
	}
	return errors.New("page not found")
}

func (s *eventStoreStub) CreateRegistration(ctx context.Context, reg *models.Registration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.regErr != nil {
		return "", s.regErr
	}
	s.regs = append(s.regs, *reg)
	return fmt.Sprintf("reg-%d", len(s.regs)), nil
}

func reviewed(id, name, link, start, end string) models.EventRecord {
	return models.EventRecord{ID: id, Status: models.EventStatusReviewed, Event: models.Event{
		EventName: name, Link: link, StartDate: start, EndDate: end,
	}}
}
