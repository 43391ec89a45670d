package bootstrap

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-doctree/document"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestReadDocumentSplitsFrontMatter(t *testing.T) {
	path := writeFile(t, "note.md",
		"---\ntitle: My Note\nslug: my-note\n---\n# Heading\n\nbody text\n")

	doc, err := ReadDocument(path)
	if err != nil {
		t.Fatalf("read document: %v", err)
	}
	if doc.Meta.Title != "My Note" || doc.Meta.Slug != "my-note" {
		t.Fatalf("meta = %+v", doc.Meta)
	}
	if !strings.HasPrefix(doc.Header, "---\n") {
		t.Fatalf("raw header not preserved: %q", doc.Header)
	}
	if strings.Contains(doc.Body, "title:") {
		t.Fatalf("front matter leaked into body: %q", doc.Body)
	}
	if !strings.Contains(doc.Body, "# Heading") {
		t.Fatalf("body missing content: %q", doc.Body)
	}
}

func TestReadDocumentWithoutFrontMatter(t *testing.T) {
	path := writeFile(t, "plain.md", "# Just Markdown\n")

	doc, err := ReadDocument(path)
	if err != nil {
		t.Fatalf("read document: %v", err)
	}
	if doc.Header != "" {
		t.Fatalf("unexpected header: %q", doc.Header)
	}
	if doc.Body != "# Just Markdown\n" {
		t.Fatalf("body = %q", doc.Body)
	}
}

func TestReadDocumentMalformedFrontMatterKeepsFile(t *testing.T) {
	const content = "---\ntitle: [unterminated\n---\nbody\n"
	path := writeFile(t, "broken.md", content)

	doc, err := ReadDocument(path)
	if err != nil {
		t.Fatalf("read document: %v", err)
	}
	if doc.Body != content {
		t.Fatalf("malformed front matter not kept verbatim: %q", doc.Body)
	}
}

func TestTitleResolutionOrder(t *testing.T) {
	tree := document.NewDocument(
		document.NewParagraph("intro"),
		document.NewHeading(1, "From Heading"),
	)

	withMeta := &Document{Path: "a.md", Meta: Meta{Title: " From Meta "}}
	if got := Title(withMeta, tree); got != "From Meta" {
		t.Fatalf("title = %q, want %q", got, "From Meta")
	}

	noMeta := &Document{Path: "a.md"}
	if got := Title(noMeta, tree); got != "From Heading" {
		t.Fatalf("title = %q, want %q", got, "From Heading")
	}

	empty := &Document{Path: "a.md"}
	if got := Title(empty, document.NewDocument()); got != "a.md" {
		t.Fatalf("title = %q, want the path", got)
	}
}
