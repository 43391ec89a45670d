package codec

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-doctree/document"
)

// Serialize renders a document tree to markdown text. Every node kind has a
// rendering; anything unexpected falls back to its flattened text so content
// is never dropped.
func (c *Codec) Serialize(doc *document.Node) (string, error) {
	if doc == nil {
		return "", nil
	}

	blocks := doc.Children
	if doc.Kind != document.KindDocument {
		blocks = []*document.Node{doc}
	}

	var rendered []string
	for _, block := range blocks {
		if text := c.renderBlock(block, ""); text != "" {
			rendered = append(rendered, text)
		}
	}
	if len(rendered) == 0 {
		return "", nil
	}
	return strings.Join(rendered, "\n\n") + "\n", nil
}

// renderBlock emits a single block at the given indent. The returned text
// has no trailing newline; the caller joins blocks.
func (c *Codec) renderBlock(n *document.Node, indent string) string {
	if n == nil {
		return ""
	}

	switch n.Kind {
	case document.KindParagraph, document.KindItemContent:
		return indentLines(inlineText(n), indent)

	case document.KindHeading:
		return indent + strings.Repeat("#", headingLevel(n)) + " " + inlineText(n)

	case document.KindBlockquote:
		var inner []string
		for _, child := range n.Children {
			if text := c.renderBlock(child, ""); text != "" {
				inner = append(inner, text)
			}
		}
		return quoteLines(strings.Join(inner, "\n\n"), indent)

	case document.KindHorizontalRule:
		return indent + "---"

	case document.KindCodeBlock:
		var b strings.Builder
		b.WriteString(indent + "```" + n.Info)
		for _, line := range n.Lines {
			b.WriteString("\n" + indent + line)
		}
		b.WriteString("\n" + indent + "```")
		return b.String()

	case document.KindTable:
		return renderTable(n, indent)

	case document.KindList:
		return c.renderList(n, indent)

	case document.KindColumnGroup:
		return indent + encodeColumnGroup(n)

	case document.KindColumn:
		// A column outside its group has no owned content; the group
		// serializer is responsible for column text.
		return indent + emptyColumnPlaceholder

	case document.KindText:
		return indentLines(n.Text, indent)

	default:
		// Unsupported construct: degrade to flattened text.
		return indentLines(document.PlainText(n), indent)
	}
}

// renderList emits a list container. Items are tight: the content line
// carries the marker and nested blocks follow on continuation lines at the
// marker's content column.
func (c *Codec) renderList(list *document.Node, indent string) string {
	ordinal := document.ListStart(list)

	var lines []string
	for _, item := range list.Children {
		if item.Kind != document.KindListItem {
			// The normalizer removes these; keep the content anyway.
			if text := c.renderBlock(item, indent); text != "" {
				lines = append(lines, text)
			}
			continue
		}

		marker := "- "
		if document.IsOrderedList(list) {
			marker = fmt.Sprintf("%d. ", ordinal)
			ordinal++
		} else if document.IsTaskList(list) && item.Checked != nil {
			if *item.Checked {
				marker = "- [x] "
			} else {
				marker = "- [ ] "
			}
		}

		lines = append(lines, c.renderItem(item, list, marker, indent)...)
	}
	return strings.Join(lines, "\n")
}

func (c *Codec) renderItem(item, list *document.Node, marker, indent string) []string {
	contIndent := indent + strings.Repeat(" ", continuationWidth(list, marker))

	var lines []string
	first := true
	for _, child := range item.Children {
		if first && child.Kind == document.KindItemContent {
			text := inlineText(child)
			lines = append(lines, splitMarkerLines(indent+marker, contIndent, text)...)
			first = false
			continue
		}
		if first {
			// Item starts with a nested block; the marker line stays empty.
			lines = append(lines, strings.TrimRight(indent+marker, " "))
			first = false
		}
		if text := c.renderBlock(child, contIndent); text != "" {
			lines = append(lines, strings.Split(text, "\n")...)
		}
	}
	if first {
		lines = append(lines, strings.TrimRight(indent+marker, " "))
	}
	return lines
}

// continuationWidth returns the indent width aligning nested blocks with an
// item's content. Task boxes are item content, so task items align after
// the bullet marker alone.
func continuationWidth(list *document.Node, marker string) int {
	if document.IsOrderedList(list) {
		return len(marker)
	}
	return 2
}

// splitMarkerLines joins the marker with the first text line and indents
// any remaining soft-wrapped lines to the content column.
func splitMarkerLines(markerPrefix, contIndent, text string) []string {
	if text == "" {
		return []string{strings.TrimRight(markerPrefix, " ")}
	}
	parts := strings.Split(text, "\n")
	lines := []string{markerPrefix + parts[0]}
	for _, part := range parts[1:] {
		lines = append(lines, contIndent+part)
	}
	return lines
}

func renderTable(n *document.Node, indent string) string {
	if len(n.Rows) == 0 {
		return ""
	}

	width := 0
	for _, row := range n.Rows {
		if len(row) > width {
			width = len(row)
		}
	}

	var b strings.Builder
	for i, row := range n.Rows {
		b.WriteString(indent + "|")
		for col := 0; col < width; col++ {
			cell := ""
			if col < len(row) {
				cell = strings.ReplaceAll(row[col], "|", "\\|")
			}
			b.WriteString(" " + cell + " |")
		}
		if i == 0 {
			b.WriteString("\n" + indent + "|")
			b.WriteString(strings.Repeat(" --- |", width))
		}
		if i < len(n.Rows)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// inlineText concatenates the raw inline spans directly beneath a block.
func inlineText(n *document.Node) string {
	var b strings.Builder
	for _, child := range n.Children {
		if child.Kind == document.KindText {
			b.WriteString(child.Text)
		} else {
			b.WriteString(document.PlainText(child))
		}
	}
	return b.String()
}

func headingLevel(n *document.Node) int {
	if n.Level < 1 {
		return 1
	}
	if n.Level > 6 {
		return 6
	}
	return n.Level
}

func indentLines(text, indent string) string {
	if text == "" || indent == "" {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = indent + line
		}
	}
	return strings.Join(lines, "\n")
}

func quoteLines(text, indent string) string {
	if text == "" {
		return indent + ">"
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line == "" {
			lines[i] = indent + ">"
		} else {
			lines[i] = indent + "> " + line
		}
	}
	return strings.Join(lines, "\n")
}
