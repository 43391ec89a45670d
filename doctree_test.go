package doctree

import (
	"context"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-doctree/document"
	"github.com/goliatone/go-doctree/internal/logging"
	"github.com/goliatone/go-doctree/internal/storage"
	"github.com/goliatone/go-doctree/pkg/interfaces"
)

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()

	cfg := DefaultConfig()
	cfg.Logging.Enabled = false

	engine, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	t.Cleanup(func() {
		if err := engine.Close(); err != nil {
			t.Fatalf("close engine: %v", err)
		}
	})
	return engine
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Level = "loud"

	if _, err := New(cfg); !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected a validation error, got %v", err)
	}
}

func TestCleanRepairsNumberingAcrossCodeBlock(t *testing.T) {
	engine := newTestEngine(t)

	out, err := engine.Clean("1. a\n1. b\n\n```go\nx\n```\n\n1. c\n")
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	want := "1. a\n2. b\n\n```go\nx\n```\n\n3. c\n"
	if out != want {
		t.Fatalf("clean output:\n got: %q\nwant: %q", out, want)
	}
}

func TestCleanIsStableOnCanonicalInput(t *testing.T) {
	engine := newTestEngine(t)

	const canonical = "# Title\n\n- [x] shipped\n- [ ] pending\n\n| a | b |\n| --- | --- |\n| 1 | 2 |\n"
	once, err := engine.Clean(canonical)
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	twice, err := engine.Clean(once)
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	if once != twice {
		t.Fatalf("clean is not stable:\nfirst:  %q\nsecond: %q", once, twice)
	}
}

func TestDeserializeReturnsNormalizedTree(t *testing.T) {
	engine := newTestEngine(t)

	doc, err := engine.Deserialize("```go\nx := 1\n```\n")
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	last := doc.Children[len(doc.Children)-1]
	if last.Kind != document.KindParagraph {
		t.Fatalf("tree not normalized on load, last child is %s", last.Kind)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	tree := document.NewDocument(
		document.NewHeading(1, "Release Checklist"),
		document.NewList(document.ListTask, 0,
			document.NewTaskItem(true, document.NewItemContent("tag the build")),
			document.NewTaskItem(false, document.NewItemContent("announce")),
		),
	)

	saved, err := engine.Save(ctx, &Record{Title: "Release Checklist"}, tree)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.Slug == "" || saved.Body == "" {
		t.Fatalf("save left record incomplete: %+v", saved)
	}

	record, loaded, err := engine.Load(ctx, saved.Slug)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if record.ID != saved.ID {
		t.Fatalf("load returned record %s, want %s", record.ID, saved.ID)
	}
	if !document.Equal(loaded, engine.Normalize(tree)) {
		t.Fatalf("loaded tree differs from the saved one")
	}
}

func TestSaveUpdatesExistingRecord(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	first, err := engine.Save(ctx, &Record{Title: "Notes"}, document.NewDocument(
		document.NewParagraph("v1"),
	))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	second, err := engine.Save(ctx, first, document.NewDocument(
		document.NewParagraph("v2"),
	))
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("second save created a new record")
	}
	if second.Body != "v2\n" {
		t.Fatalf("body = %q, want %q", second.Body, "v2\n")
	}

	records, err := engine.Repository().List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected a single record, got %d", len(records))
	}
}

func TestLoadMissingSlug(t *testing.T) {
	engine := newTestEngine(t)

	if _, _, err := engine.Load(context.Background(), "missing"); !IsNotFound(err) {
		t.Fatalf("expected a not-found error, got %v", err)
	}
}

type recordingProvider struct {
	names []string
}

func (p *recordingProvider) GetLogger(name string) interfaces.Logger {
	p.names = append(p.names, name)
	return logging.NoOp()
}

func TestNewScopesLoggersPerModule(t *testing.T) {
	provider := &recordingProvider{}

	cfg := DefaultConfig()
	engine, err := New(cfg, WithLoggerProvider(provider))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	defer engine.Close()

	want := []string{"doctree", "doctree.normalizer", "doctree.codec", "doctree.storage"}
	for _, name := range want {
		found := false
		for _, got := range provider.names {
			if got == name {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("no logger requested for %q, got %v", name, provider.names)
		}
	}
}

func TestWithRepositoryOverridesStore(t *testing.T) {
	repo := storage.NewMemoryRepository()
	engine := newTestEngine(t, WithRepository(repo))

	if engine.Repository() != repo {
		t.Fatalf("engine ignored the injected repository")
	}
}
