package normalizer

import "github.com/goliatone/go-doctree/document"

// fixForeignChild moves a non-item child out of the list container found at
// parent.Children[idx]. Edge children move to the matching side of the
// container; a middle child splits the container in two, with the second
// half of an ordered list continuing the numbering of the first.
func (n *Normalizer) fixForeignChild(parent *document.Node, idx int, list *document.Node) bool {
	foreignIdx := -1
	for i, child := range list.Children {
		if child.Kind != document.KindListItem {
			foreignIdx = i
			break
		}
	}
	if foreignIdx < 0 {
		return false
	}

	foreign := list.Children[foreignIdx]

	switch {
	case foreignIdx == 0:
		list.Children = list.Children[1:]
		insertChild(parent, idx, foreign)
		if len(list.Children) == 0 {
			removeChild(parent, idx+1)
		}
		n.logger.Debug("moved foreign block before list", "kind", foreign.Kind.String())

	case foreignIdx == len(list.Children)-1:
		list.Children = list.Children[:foreignIdx]
		insertChild(parent, idx+1, foreign)
		n.logger.Debug("moved foreign block after list", "kind", foreign.Kind.String())

	default:
		// Copy the tail so the two halves stop sharing a backing array.
		after := append([]*document.Node(nil), list.Children[foreignIdx+1:]...)

		list.Children = list.Children[:foreignIdx]

		replacement := []*document.Node{list, foreign}
		if len(after) > 0 {
			second := &document.Node{
				Kind:     document.KindList,
				List:     list.List,
				Children: after,
			}
			if document.IsOrderedList(list) {
				second.Start = document.ListStart(list) + document.ItemCount(list)
			}
			replacement = append(replacement, second)
		}

		parent.Children = append(parent.Children[:idx],
			append(replacement, parent.Children[idx+1:]...)...)
		n.logger.Debug("split list around foreign block",
			"kind", foreign.Kind.String(), "items_before", document.ItemCount(list))
	}

	return true
}

// hoistCodeBlock lifts a code block out of item content so it sits directly
// after the content node, under the same list item. The content subtree is
// searched in full; a code block nested through a wrapper such as a
// blockquote is hoisted the same way as a direct child.
func (n *Normalizer) hoistCodeBlock(item *document.Node) bool {
	for k, child := range item.Children {
		if child.Kind != document.KindItemContent {
			continue
		}
		if block := detachCodeBlock(child); block != nil {
			insertChild(item, k+1, block)
			n.logger.Debug("hoisted code block out of item content")
			return true
		}
	}
	return false
}

// detachCodeBlock removes the first code block found anywhere beneath n,
// pre-order, and returns it.
func detachCodeBlock(n *document.Node) *document.Node {
	for i, child := range n.Children {
		if child.Kind == document.KindCodeBlock {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			return child
		}
		if found := detachCodeBlock(child); found != nil {
			return found
		}
	}
	return nil
}

// continueNumbering patches the start of an ordered list separated from a
// preceding ordered list by exactly one root-level code block. Other
// separators intentionally reset the numbering; only code blocks continue
// it, matching the split behavior of fixForeignChild.
func (n *Normalizer) continueNumbering(doc *document.Node) bool {
	for i := 0; i+2 < len(doc.Children); i++ {
		first := doc.Children[i]
		mid := doc.Children[i+1]
		second := doc.Children[i+2]

		if !document.IsOrderedList(first) || !document.IsOrderedList(second) {
			continue
		}
		if mid.Kind != document.KindCodeBlock {
			continue
		}

		expected := document.ListStart(first) + document.ItemCount(first)
		if document.ListStart(second) != expected {
			second.Start = expected
			n.logger.Debug("continued ordered list numbering", "start", expected)
			return true
		}
	}
	return false
}

// ensureTrailingParagraph appends an empty paragraph when the document ends
// in a block the cursor cannot be placed after.
func (n *Normalizer) ensureTrailingParagraph(doc *document.Node) bool {
	if len(doc.Children) == 0 {
		return false
	}
	switch doc.Children[len(doc.Children)-1].Kind {
	case document.KindCodeBlock, document.KindList, document.KindTable:
		doc.Children = append(doc.Children, document.NewParagraph(""))
		n.logger.Debug("appended trailing paragraph")
		return true
	}
	return false
}

// ensureItemContent gives a list item with neither content nor a nested list
// an empty content child, so no item is ever empty.
func (n *Normalizer) ensureItemContent(item *document.Node) bool {
	for _, child := range item.Children {
		if child.Kind == document.KindItemContent || child.Kind == document.KindList {
			return false
		}
	}
	item.Children = append([]*document.Node{document.NewItemContent("")}, item.Children...)
	n.logger.Debug("inserted empty item content")
	return true
}

func insertChild(parent *document.Node, idx int, child *document.Node) {
	if idx < 0 {
		idx = 0
	}
	if idx > len(parent.Children) {
		idx = len(parent.Children)
	}
	parent.Children = append(parent.Children, nil)
	copy(parent.Children[idx+1:], parent.Children[idx:])
	parent.Children[idx] = child
}

func removeChild(parent *document.Node, idx int) {
	if idx < 0 || idx >= len(parent.Children) {
		return
	}
	parent.Children = append(parent.Children[:idx], parent.Children[idx+1:]...)
}
