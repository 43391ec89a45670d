package codec

import (
	"testing"

	"github.com/goliatone/go-doctree/document"
)

func TestDeserializeListVariants(t *testing.T) {
	c := New()

	doc, err := c.Deserialize("- [x] done\n- [ ] pending\n")
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	list := doc.Children[0]
	if list.List != document.ListTask {
		t.Fatalf("list variant = %v, want task", list.List)
	}
	first, second := list.Children[0], list.Children[1]
	if first.Checked == nil || !*first.Checked {
		t.Fatalf("first item not checked: %#v", first.Checked)
	}
	if second.Checked == nil || *second.Checked {
		t.Fatalf("second item not unchecked: %#v", second.Checked)
	}
	if got := document.PlainText(first.Children[0]); got != "done" {
		t.Fatalf("task box not stripped from content: %q", got)
	}
}

func TestDeserializeOrderedStartCarriedOnlyWhenOffset(t *testing.T) {
	c := New()

	doc, _ := c.Deserialize("1. a\n")
	if start := doc.Children[0].Start; start != 0 {
		t.Fatalf("default start recorded as %d, want 0", start)
	}

	doc, _ = c.Deserialize("7. a\n")
	if start := doc.Children[0].Start; start != 7 {
		t.Fatalf("offset start = %d, want 7", start)
	}
}

func TestDeserializeItemWithoutTextGetsContent(t *testing.T) {
	c := New()

	doc, err := c.Deserialize("-\n  - sub\n")
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	item := doc.Children[0].Children[0]
	if len(item.Children) == 0 || item.Children[0].Kind != document.KindItemContent {
		t.Fatalf("item without text not backfilled: %#v", item.Children)
	}
}

func TestDeserializeIndentedCodeBlock(t *testing.T) {
	c := New()

	doc, err := c.Deserialize("    indented code\n")
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	block := doc.Children[0]
	if block.Kind != document.KindCodeBlock || block.Info != "" {
		t.Fatalf("expected bare code block, got %#v", block)
	}
	if len(block.Lines) != 1 || block.Lines[0] != "indented code" {
		t.Fatalf("code lines = %#v", block.Lines)
	}
}

func TestDeserializeTableCells(t *testing.T) {
	c := New()

	doc, err := c.Deserialize("| h1 | h2 |\n| --- | --- |\n| a | b |\n")
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	table := doc.Children[0]
	if table.Kind != document.KindTable {
		t.Fatalf("expected table, got %s", table.Kind)
	}
	if len(table.Rows) != 2 || table.Rows[0][1] != "h2" || table.Rows[1][0] != "a" {
		t.Fatalf("rows = %#v", table.Rows)
	}
}

func TestDeserializeUnreadableColumnsSynthesized(t *testing.T) {
	c := New()

	doc, err := c.Deserialize(`<div class="oc-columns" data-columns="3"><div class="mangled"></div></div>` + "\n")
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	group := doc.Children[0]
	if group.Kind != document.KindColumnGroup {
		t.Fatalf("expected column group, got %s", group.Kind)
	}
	if len(group.Children) != 3 {
		t.Fatalf("synthesized %d columns, want 3", len(group.Children))
	}
	for _, col := range group.Children {
		if document.PlainText(col) != "" {
			t.Fatalf("synthesized column has content: %q", document.PlainText(col))
		}
	}
}

func TestDeserializeLegacyColumnFormat(t *testing.T) {
	c := New()

	doc, err := c.Deserialize(`<div class="oc-columns"><div class="oc-column">left</div><div class="oc-column">right</div></div>` + "\n")
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	group := doc.Children[0]
	if len(group.Children) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(group.Children))
	}
	if got := document.PlainText(group.Children[0]); got != "left" {
		t.Fatalf("first column = %q, want %q", got, "left")
	}
	if got := document.PlainText(group.Children[1]); got != "right" {
		t.Fatalf("second column = %q, want %q", got, "right")
	}
}

func TestDeserializeUnknownHTMLKeptAsText(t *testing.T) {
	c := New()

	const html = `<section data-widget="hero"></section>`
	doc, err := c.Deserialize(html + "\n")
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	block := doc.Children[0]
	if block.Kind != document.KindParagraph {
		t.Fatalf("unknown html became %s, want paragraph", block.Kind)
	}
	if got := document.PlainText(block); got != html {
		t.Fatalf("html text = %q, want %q", got, html)
	}
}

func TestDeserializeEmptyInput(t *testing.T) {
	c := New()

	doc, err := c.Deserialize("")
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if doc.Kind != document.KindDocument || len(doc.Children) != 0 {
		t.Fatalf("expected empty document, got %#v", doc)
	}
}
