// Package doctree is a document-tree consistency engine: a tagged-node
// rich-text document model, a normalizer that restores structural
// invariants after arbitrary edits, and a markdown round-trip codec for the
// persisted text form. Persisted state is always the serialized markdown;
// trees live only inside an editing session.
package doctree

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-doctree/document"
	"github.com/goliatone/go-doctree/internal/codec"
	"github.com/goliatone/go-doctree/internal/logging"
	"github.com/goliatone/go-doctree/internal/logging/gologger"
	"github.com/goliatone/go-doctree/internal/normalizer"
	"github.com/goliatone/go-doctree/internal/storage"
	"github.com/goliatone/go-doctree/pkg/interfaces"

	_ "github.com/mattn/go-sqlite3"
)

// Re-exported storage types for consumers of the root package.
type (
	Record     = storage.Record
	Repository = storage.Repository
)

// IsNotFound reports whether err is a missing-record lookup.
var IsNotFound = storage.IsNotFound

// Engine wires the normalizer, the markdown codec, and the document store
// behind one façade. A single Engine can serve many documents; each tree is
// owned by one editing session at a time.
type Engine struct {
	normalizer interfaces.Normalizer
	codec      interfaces.Codec
	repo       storage.Repository
	provider   interfaces.LoggerProvider
	logger     interfaces.Logger
	db         *bun.DB
}

// Option overrides a dependency during construction.
type Option func(*Engine)

// WithRepository replaces the configured document store.
func WithRepository(repo storage.Repository) Option {
	return func(e *Engine) {
		if repo != nil {
			e.repo = repo
		}
	}
}

// WithLoggerProvider replaces the configured logging provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(e *Engine) {
		if provider != nil {
			e.provider = provider
		}
	}
}

// New constructs an engine from the supplied configuration.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation,
			"invalid engine configuration")
	}

	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}

	if e.provider == nil && cfg.Logging.Enabled {
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
		})
		if err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryValidation,
				"invalid logging configuration")
		}
		e.provider = provider
	}

	e.logger = logging.ModuleLogger(e.provider, "")
	e.normalizer = normalizer.New(
		normalizer.WithLogger(logging.NormalizerLogger(e.provider)))
	e.codec = codec.New(
		codec.WithLogger(logging.CodecLogger(e.provider)))

	if e.repo == nil {
		repo, db, err := openRepository(cfg.Storage, logging.StorageLogger(e.provider))
		if err != nil {
			return nil, err
		}
		e.repo = repo
		e.db = db
	}

	return e, nil
}

func openRepository(cfg StorageConfig, logger interfaces.Logger) (storage.Repository, *bun.DB, error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		logger.Debug("using in-memory document store")
		return storage.NewMemoryRepository(), nil, nil
	}

	sqldb, err := sql.Open("sqlite3", cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("doctree: open document database: %w", err)
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())
	repo := storage.NewBunRepository(db)
	if err := repo.Migrate(context.Background()); err != nil {
		return nil, nil, fmt.Errorf("doctree: migrate document database: %w", err)
	}
	logger.Info("opened document database", "dsn", cfg.DSN)
	return repo, db, nil
}

// Close releases the underlying database when the engine opened one.
func (e *Engine) Close() error {
	if e.db != nil {
		return e.db.Close()
	}
	return nil
}

// Repository exposes the document store for direct access.
func (e *Engine) Repository() storage.Repository {
	return e.repo
}

// Normalize restores every structural invariant of doc and returns the
// authoritative tree. It is idempotent and never fails.
func (e *Engine) Normalize(doc *document.Node) *document.Node {
	return e.normalizer.Normalize(doc)
}

// Serialize renders a tree to markdown text.
func (e *Engine) Serialize(doc *document.Node) (string, error) {
	return e.codec.Serialize(doc)
}

// Deserialize parses markdown text and normalizes the resulting tree so
// callers always receive a stable document.
func (e *Engine) Deserialize(text string) (*document.Node, error) {
	doc, err := e.codec.Deserialize(text)
	if err != nil {
		return nil, err
	}
	return e.normalizer.Normalize(doc), nil
}

// Clean round-trips markdown text through the tree: parse, normalize,
// serialize. The result is the canonical form of the input.
func (e *Engine) Clean(text string) (string, error) {
	doc, err := e.Deserialize(text)
	if err != nil {
		return "", err
	}
	return e.codec.Serialize(doc)
}

// Save normalizes and serializes doc into record.Body, then creates or
// updates the record depending on whether it carries an ID.
func (e *Engine) Save(ctx context.Context, record *Record, doc *document.Node) (*Record, error) {
	body, err := e.codec.Serialize(e.normalizer.Normalize(doc))
	if err != nil {
		return nil, err
	}

	stored := *record
	stored.Body = body

	if stored.ID == uuid.Nil {
		created, err := e.repo.Create(ctx, &stored)
		if err != nil {
			return nil, err
		}
		e.logger.Debug("document created", "slug", created.Slug)
		return created, nil
	}
	updated, err := e.repo.Update(ctx, &stored)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("document updated", "slug", updated.Slug)
	return updated, nil
}

// Load fetches a record by slug and rebuilds its normalized tree.
func (e *Engine) Load(ctx context.Context, slug string) (*Record, *document.Node, error) {
	record, err := e.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	doc, err := e.Deserialize(record.Body)
	if err != nil {
		return nil, nil, err
	}
	return record, doc, nil
}
