package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// NewMemoryRepository constructs an in-memory repository, useful for tests
// and for hosts that persist documents elsewhere.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		byID:   make(map[uuid.UUID]*Record),
		bySlug: make(map[string]uuid.UUID),
	}
}

type memoryRepository struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]*Record
	bySlug map[string]uuid.UUID
}

func (m *memoryRepository) Create(_ context.Context, record *Record) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := cloneRecord(record)
	prepareRecord(stored, time.Now().UTC())

	if _, exists := m.bySlug[stored.Slug]; exists {
		return nil, ErrSlugExists
	}

	m.byID[stored.ID] = stored
	m.bySlug[stored.Slug] = stored.ID
	return cloneRecord(stored), nil
}

func (m *memoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "document", Key: id.String()}
	}
	return cloneRecord(record), nil
}

func (m *memoryRepository) GetBySlug(_ context.Context, slug string) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.bySlug[slug]
	if !ok {
		return nil, &NotFoundError{Resource: "document", Key: slug}
	}
	return cloneRecord(m.byID[id]), nil
}

func (m *memoryRepository) List(_ context.Context) ([]*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Record, 0, len(m.byID))
	for _, record := range m.byID {
		records = append(records, cloneRecord(record))
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Slug < records[j].Slug
	})
	return records, nil
}

func (m *memoryRepository) Update(_ context.Context, record *Record) (*Record, error) {
	if record == nil || record.ID == uuid.Nil {
		return nil, ErrRecordIDRequired
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.byID[record.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "document", Key: record.ID.String()}
	}

	updated := cloneRecord(record)
	updated.CreatedAt = existing.CreatedAt
	prepareRecord(updated, time.Now().UTC())

	if updated.Slug != existing.Slug {
		if _, exists := m.bySlug[updated.Slug]; exists {
			return nil, ErrSlugExists
		}
		delete(m.bySlug, existing.Slug)
		m.bySlug[updated.Slug] = updated.ID
	}

	m.byID[updated.ID] = updated
	return cloneRecord(updated), nil
}

func (m *memoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.byID[id]
	if !ok {
		return &NotFoundError{Resource: "document", Key: id.String()}
	}
	delete(m.bySlug, record.Slug)
	delete(m.byID, id)
	return nil
}
