// Package storage persists documents. The stored body is always the
// serialized markdown text produced by the codec; trees are rebuilt on load
// and never persisted directly.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-slug"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var (
	ErrRecordIDRequired = errors.New("storage: record id required")
	ErrSlugRequired     = errors.New("storage: slug is required")
	ErrSlugExists       = errors.New("storage: slug already exists")
)

// Record is a persisted document.
type Record struct {
	bun.BaseModel `bun:"table:documents"`

	ID        uuid.UUID `bun:"id,pk,type:uuid"`
	Slug      string    `bun:"slug,notnull,unique"`
	Title     string    `bun:"title"`
	Body      string    `bun:"body"`
	CreatedAt time.Time `bun:"created_at,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

// Repository stores document records. Implementations return NotFoundError
// for missing records and ErrSlugExists on slug collisions.
type Repository interface {
	Create(ctx context.Context, record *Record) (*Record, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Record, error)
	GetBySlug(ctx context.Context, slug string) (*Record, error)
	List(ctx context.Context) ([]*Record, error)
	Update(ctx context.Context, record *Record) (*Record, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// NotFoundError reports a missing record lookup.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return "storage: record not found"
	}
	return fmt.Sprintf("storage: %s not found: %s", e.Resource, e.Key)
}

// IsNotFound reports whether err wraps a NotFoundError.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}

// NormalizeSlug derives a storable slug from the supplied value, falling
// back to the record ID when the value normalizes to nothing.
func NormalizeSlug(value string, id uuid.UUID) string {
	normalized, err := slug.Normalize(strings.TrimSpace(value))
	if err != nil || normalized == "" {
		return id.String()
	}
	return normalized
}

// prepareRecord fills defaults ahead of a write.
func prepareRecord(record *Record, now time.Time) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if strings.TrimSpace(record.Slug) == "" {
		record.Slug = NormalizeSlug(record.Title, record.ID)
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now
}

func cloneRecord(record *Record) *Record {
	if record == nil {
		return nil
	}
	cloned := *record
	return &cloned
}
