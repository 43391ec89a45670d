package storage

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunRepository persists documents through a Bun-backed database, typically
// SQLite for embedded deployments.
type BunRepository struct {
	db *bun.DB
}

// NewBunRepository constructs a Bun-backed repository.
func NewBunRepository(db *bun.DB) *BunRepository {
	return &BunRepository{db: db}
}

var _ Repository = (*BunRepository)(nil)

// Migrate creates the documents table when it does not exist.
func (r *BunRepository) Migrate(ctx context.Context) error {
	if r.db == nil {
		return errors.New("storage: bun repository requires a database")
	}
	_, err := r.db.NewCreateTable().Model((*Record)(nil)).IfNotExists().Exec(ctx)
	return err
}

func (r *BunRepository) Create(ctx context.Context, record *Record) (*Record, error) {
	if r.db == nil {
		return nil, errors.New("storage: bun repository requires a database")
	}

	stored := cloneRecord(record)
	prepareRecord(stored, time.Now().UTC())

	if _, err := r.db.NewInsert().Model(stored).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlugExists
		}
		return nil, err
	}
	return stored, nil
}

func (r *BunRepository) GetByID(ctx context.Context, id uuid.UUID) (*Record, error) {
	var record Record
	err := r.db.NewSelect().Model(&record).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Resource: "document", Key: id.String()}
		}
		return nil, err
	}
	return &record, nil
}

func (r *BunRepository) GetBySlug(ctx context.Context, slug string) (*Record, error) {
	var record Record
	err := r.db.NewSelect().Model(&record).Where("slug = ?", slug).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Resource: "document", Key: slug}
		}
		return nil, err
	}
	return &record, nil
}

func (r *BunRepository) List(ctx context.Context) ([]*Record, error) {
	var records []*Record
	if err := r.db.NewSelect().Model(&records).Order("slug ASC").Scan(ctx); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *BunRepository) Update(ctx context.Context, record *Record) (*Record, error) {
	if record == nil || record.ID == uuid.Nil {
		return nil, ErrRecordIDRequired
	}

	existing, err := r.GetByID(ctx, record.ID)
	if err != nil {
		return nil, err
	}

	updated := cloneRecord(record)
	updated.CreatedAt = existing.CreatedAt
	prepareRecord(updated, time.Now().UTC())

	if _, err := r.db.NewUpdate().
		Model(updated).
		Column("slug", "title", "body", "updated_at").
		WherePK().
		Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlugExists
		}
		return nil, err
	}
	return updated, nil
}

func (r *BunRepository) Delete(ctx context.Context, id uuid.UUID) error {
	record, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	_, err = r.db.NewDelete().Model(record).WherePK().Exec(ctx)
	return err
}

// isUniqueViolation matches SQLite's constraint error text; bun surfaces the
// driver error verbatim.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
