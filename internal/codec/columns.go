package codec

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-doctree/document"
)

// Column layouts travel through markdown as one physical line of inline
// HTML so downstream line-splitting can never fragment the structure. The
// current format stores each column's flattened text in a data-content
// attribute; a legacy format with inline content is still read on the way
// in.
const (
	columnGroupMarker      = `class="oc-columns"`
	emptyColumnPlaceholder = `<div class="oc-column" data-content=""></div>`
	defaultColumnCount     = 2
)

var (
	columnCountRe   = regexp.MustCompile(`data-columns="(\d+)"`)
	columnContentRe = regexp.MustCompile(`<div class="oc-column" data-content="([^"]*)"></div>`)
	columnLegacyRe  = regexp.MustCompile(`<div class="oc-column">(.*?)</div>`)
)

func encodeColumnGroup(group *document.Node) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<div class="oc-columns" data-columns="%d">`, len(group.Children))
	for _, col := range group.Children {
		fmt.Fprintf(&b, `<div class="oc-column" data-content="%s"></div>`,
			escapeAttribute(document.PlainText(col)))
	}
	b.WriteString(`</div>`)
	return b.String()
}

// decodeColumnGroup reconstructs a column group from its HTML form. The
// fallback ladder never fails: current format, then legacy inline content,
// then a synthesized group of empty columns sized by data-columns.
func (c *Codec) decodeColumnGroup(html string) *document.Node {
	count := defaultColumnCount
	if m := columnCountRe.FindStringSubmatch(html); m != nil {
		if parsed, err := strconv.Atoi(m[1]); err == nil && parsed > 0 {
			count = parsed
		}
	}

	var columns []*document.Node
	for _, m := range columnContentRe.FindAllStringSubmatch(html, -1) {
		columns = append(columns, document.NewColumn(0, unescapeAttribute(m[1])))
	}

	if len(columns) == 0 {
		for _, m := range columnLegacyRe.FindAllStringSubmatch(html, -1) {
			columns = append(columns, document.NewColumn(0, strings.TrimSpace(m[1])))
		}
	}

	if len(columns) == 0 {
		c.logger.Warn("column layout unreadable, synthesizing empty columns", "columns", count)
		for i := 0; i < count; i++ {
			columns = append(columns, document.NewColumn(0, ""))
		}
	}

	return document.NewColumnGroup(columns...)
}

// escapeAttribute entity-escapes column text for attribute storage. Newlines
// are escaped too, keeping the emitted tag on a single physical line.
func escapeAttribute(text string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"\n", "&#10;",
	)
	return replacer.Replace(text)
}

func unescapeAttribute(text string) string {
	replacer := strings.NewReplacer(
		"&#10;", "\n",
		"&quot;", `"`,
		"&lt;", "<",
		"&gt;", ">",
		"&amp;", "&",
	)
	return replacer.Replace(text)
}
