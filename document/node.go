package document

// Kind identifies the structural role of a Node. The set is closed: the
// normalizer and the codec both switch exhaustively over it and treat any
// future addition as a foreign block.
type Kind int

const (
	// KindDocument is the root of a document tree.
	KindDocument Kind = iota
	// KindParagraph is a plain text block.
	KindParagraph
	// KindHeading is a section heading with a level between 1 and 6.
	KindHeading
	// KindBlockquote is a quoted group of blocks.
	KindBlockquote
	// KindHorizontalRule is a thematic break.
	KindHorizontalRule
	// KindTable is a pipe table; the first row is the header.
	KindTable
	// KindCodeBlock is a fenced code block. It may never sit inside a list
	// container or inside item content.
	KindCodeBlock
	// KindList is a bullet, ordered, or task list container.
	KindList
	// KindListItem is one entry of a list container.
	KindListItem
	// KindItemContent is the text-bearing payload of a list item.
	KindItemContent
	// KindColumnGroup is the column layout extension wrapper.
	KindColumnGroup
	// KindColumn is a single column inside a column group.
	KindColumn
	// KindText is a raw inline markdown span.
	KindText
)

var kindNames = map[Kind]string{
	KindDocument:       "document",
	KindParagraph:      "paragraph",
	KindHeading:        "heading",
	KindBlockquote:     "blockquote",
	KindHorizontalRule: "horizontal_rule",
	KindTable:          "table",
	KindCodeBlock:      "code_block",
	KindList:           "list",
	KindListItem:       "list_item",
	KindItemContent:    "item_content",
	KindColumnGroup:    "column_group",
	KindColumn:         "column",
	KindText:           "text",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ListKind distinguishes the three list container variants.
type ListKind int

const (
	// ListBullet is an unordered list.
	ListBullet ListKind = iota
	// ListOrdered is a numbered list with an optional start offset.
	ListOrdered
	// ListTask is a checklist; its items carry a checked state.
	ListTask
)

func (k ListKind) String() string {
	switch k {
	case ListOrdered:
		return "ordered"
	case ListTask:
		return "task"
	default:
		return "bullet"
	}
}

// Node is a tagged block or inline node. Kind selects which payload fields
// are meaningful; unused fields stay at their zero value.
type Node struct {
	Kind Kind

	// Level is the heading level (KindHeading).
	Level int
	// Text is the raw inline markdown span (KindText).
	Text string
	// Info is the fence info string (KindCodeBlock).
	Info string
	// Lines holds the code block body without fences (KindCodeBlock).
	Lines []string
	// Rows holds table cells, header row first (KindTable).
	Rows [][]string
	// List is the container variant (KindList).
	List ListKind
	// Start is the first ordinal of an ordered list (KindList). Zero means 1.
	Start int
	// Checked is the task state (KindListItem). Nil for non-task items.
	Checked *bool
	// Width is the relative column width (KindColumn). Zero means equal split.
	Width float64

	Children []*Node
}

// NewDocument builds a root node over the supplied blocks.
func NewDocument(children ...*Node) *Node {
	return &Node{Kind: KindDocument, Children: children}
}

// NewParagraph builds a paragraph holding a single raw text span. An empty
// text produces a paragraph with no children.
func NewParagraph(text string) *Node {
	p := &Node{Kind: KindParagraph}
	if text != "" {
		p.Children = []*Node{NewText(text)}
	}
	return p
}

// NewHeading builds a heading node. Levels outside 1..6 are clamped.
func NewHeading(level int, text string) *Node {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	h := &Node{Kind: KindHeading, Level: level}
	if text != "" {
		h.Children = []*Node{NewText(text)}
	}
	return h
}

// NewCodeBlock builds a fenced code block from its body lines.
func NewCodeBlock(info string, lines ...string) *Node {
	return &Node{Kind: KindCodeBlock, Info: info, Lines: lines}
}

// NewList builds a list container. Start is only meaningful for ordered
// lists; pass 0 to default to 1.
func NewList(kind ListKind, start int, items ...*Node) *Node {
	return &Node{Kind: KindList, List: kind, Start: start, Children: items}
}

// NewItem builds a list item over the supplied content and nested lists.
func NewItem(children ...*Node) *Node {
	return &Node{Kind: KindListItem, Children: children}
}

// NewTaskItem builds a checklist item with the given checked state.
func NewTaskItem(checked bool, children ...*Node) *Node {
	return &Node{Kind: KindListItem, Checked: &checked, Children: children}
}

// NewItemContent builds the text payload of a list item.
func NewItemContent(text string) *Node {
	c := &Node{Kind: KindItemContent}
	if text != "" {
		c.Children = []*Node{NewText(text)}
	}
	return c
}

// NewColumnGroup builds a column layout wrapper.
func NewColumnGroup(columns ...*Node) *Node {
	return &Node{Kind: KindColumnGroup, Children: columns}
}

// NewColumn builds a single layout column holding a text block.
func NewColumn(width float64, text string) *Node {
	col := &Node{Kind: KindColumn, Width: width}
	if text != "" {
		col.Children = []*Node{NewParagraph(text)}
	}
	return col
}

// NewTable builds a table node from its cell rows.
func NewTable(rows ...[]string) *Node {
	return &Node{Kind: KindTable, Rows: rows}
}

// NewText builds a raw inline span.
func NewText(text string) *Node {
	return &Node{Kind: KindText, Text: text}
}
