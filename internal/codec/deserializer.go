package codec

import (
	"regexp"
	"strings"

	gast "github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/goliatone/go-doctree/document"
)

var taskBoxRe = regexp.MustCompile(`^\[[ xX]\]\s?`)

// Deserialize parses markdown text into a document tree. Malformed
// constructs degrade to placeholder nodes or raw text paragraphs; the error
// is reserved for the contract and is nil in practice. Callers should
// normalize the returned tree before treating it as stable.
func (c *Codec) Deserialize(input string) (doc *document.Node, err error) {
	src := []byte(input)

	// The parser is not expected to panic; if it ever does the original
	// text is preserved as a raw paragraph rather than failing the load.
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("markdown parse panicked, keeping raw text", "panic", r)
			doc = document.NewDocument(document.NewParagraph(strings.TrimRight(input, "\n")))
			err = nil
		}
	}()

	root := c.engine.Parser().Parse(text.NewReader(src))

	doc = document.NewDocument()
	for child := root.FirstChild(); child != nil; child = child.NextSibling() {
		if block := c.convertBlock(child, src); block != nil {
			doc.Children = append(doc.Children, block)
		}
	}
	return doc, nil
}

func (c *Codec) convertBlock(n gast.Node, src []byte) *document.Node {
	switch node := n.(type) {
	case *gast.Paragraph, *gast.TextBlock:
		return document.NewParagraph(rawLines(n, src))

	case *gast.Heading:
		return document.NewHeading(node.Level, rawLines(n, src))

	case *gast.Blockquote:
		quote := &document.Node{Kind: document.KindBlockquote}
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			if block := c.convertBlock(child, src); block != nil {
				quote.Children = append(quote.Children, block)
			}
		}
		return quote

	case *gast.ThematicBreak:
		return &document.Node{Kind: document.KindHorizontalRule}

	case *gast.FencedCodeBlock:
		return document.NewCodeBlock(string(node.Language(src)), blockLines(n, src)...)

	case *gast.CodeBlock:
		return document.NewCodeBlock("", blockLines(n, src)...)

	case *gast.List:
		return c.convertList(node, src)

	case *east.Table:
		return convertTable(node, src)

	case *gast.HTMLBlock:
		html := htmlBlockText(node, src)
		if strings.Contains(html, columnGroupMarker) {
			return c.decodeColumnGroup(html)
		}
		// Unrecognized HTML stays visible as text instead of vanishing.
		return document.NewParagraph(html)

	default:
		if flattened := string(n.Text(src)); flattened != "" {
			return document.NewParagraph(flattened)
		}
		return nil
	}
}

// convertList rebuilds a list container. The variant is inferred: task when
// any item carries a checkbox, otherwise ordered when the source marks it
// ordered, otherwise bullet. The start ordinal is carried only for ordered
// lists.
func (c *Codec) convertList(list *gast.List, src []byte) *document.Node {
	out := &document.Node{Kind: document.KindList}

	task := false
	for li := list.FirstChild(); li != nil; li = li.NextSibling() {
		item := &document.Node{Kind: document.KindListItem}

		for child := li.FirstChild(); child != nil; child = child.NextSibling() {
			switch block := child.(type) {
			case *gast.TextBlock, *gast.Paragraph:
				checked, content := itemContentText(child, src)
				if checked != nil {
					item.Checked = checked
					task = true
				}
				item.Children = append(item.Children, document.NewItemContent(content))
			case *gast.List:
				item.Children = append(item.Children, c.convertList(block, src))
			default:
				if converted := c.convertBlock(child, src); converted != nil {
					item.Children = append(item.Children, converted)
				}
			}
		}

		if !hasItemContent(item) {
			item.Children = append(
				[]*document.Node{document.NewItemContent("")}, item.Children...)
		}
		out.Children = append(out.Children, item)
	}

	switch {
	case task:
		out.List = document.ListTask
	case list.IsOrdered():
		out.List = document.ListOrdered
		if list.Start > 1 {
			out.Start = list.Start
		}
	default:
		out.List = document.ListBullet
	}
	return out
}

// itemContentText extracts an item's raw text line, peeling off a leading
// task checkbox when present.
func itemContentText(n gast.Node, src []byte) (*bool, string) {
	var checked *bool
	if box, ok := n.FirstChild().(*east.TaskCheckBox); ok {
		value := box.IsChecked
		checked = &value
	}

	content := rawLines(n, src)
	if checked != nil {
		content = taskBoxRe.ReplaceAllString(content, "")
	}
	return checked, content
}

func hasItemContent(item *document.Node) bool {
	for _, child := range item.Children {
		if child.Kind == document.KindItemContent {
			return true
		}
	}
	return false
}

func convertTable(table *east.Table, src []byte) *document.Node {
	var rows [][]string
	for row := table.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, string(cell.Text(src)))
		}
		rows = append(rows, cells)
	}
	return document.NewTable(rows...)
}

// rawLines returns the original source text covered by a block's line
// segments, preserving inline markup verbatim.
func rawLines(n gast.Node, src []byte) string {
	segments := n.Lines()
	parts := make([]string, 0, segments.Len())
	for i := 0; i < segments.Len(); i++ {
		segment := segments.At(i)
		parts = append(parts, strings.TrimRight(string(segment.Value(src)), "\n"))
	}
	return strings.Join(parts, "\n")
}

func blockLines(n gast.Node, src []byte) []string {
	segments := n.Lines()
	lines := make([]string, 0, segments.Len())
	for i := 0; i < segments.Len(); i++ {
		segment := segments.At(i)
		lines = append(lines, strings.TrimRight(string(segment.Value(src)), "\n"))
	}
	return lines
}

func htmlBlockText(n *gast.HTMLBlock, src []byte) string {
	html := rawLines(n, src)
	if n.HasClosure() {
		closure := strings.TrimRight(string(n.ClosureLine.Value(src)), "\n")
		if closure != "" {
			if html != "" {
				html += "\n"
			}
			html += closure
		}
	}
	return html
}
