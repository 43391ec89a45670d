package document

import "strings"

// IsListContainer reports whether n is a list of any variant.
func IsListContainer(n *Node) bool {
	return n != nil && n.Kind == KindList
}

// IsOrderedList reports whether n is an ordered list container.
func IsOrderedList(n *Node) bool {
	return n != nil && n.Kind == KindList && n.List == ListOrdered
}

// IsTaskList reports whether n is a task list. A container tagged ListTask
// qualifies, as does any container holding at least one item with a checked
// state; the codec and the normalizer must agree on this classification.
func IsTaskList(n *Node) bool {
	if n == nil || n.Kind != KindList {
		return false
	}
	if n.List == ListTask {
		return true
	}
	for _, item := range n.Children {
		if item.Kind == KindListItem && item.Checked != nil {
			return true
		}
	}
	return false
}

// ItemCount returns the number of list item children of a container.
func ItemCount(n *Node) int {
	if !IsListContainer(n) {
		return 0
	}
	count := 0
	for _, child := range n.Children {
		if child.Kind == KindListItem {
			count++
		}
	}
	return count
}

// ListStart returns the first ordinal of an ordered list, defaulting to 1
// when unset or when the node is not an ordered list.
func ListStart(n *Node) int {
	if IsOrderedList(n) && n.Start > 0 {
		return n.Start
	}
	return 1
}

// PlainText flattens the raw text spans beneath n into a single string.
// Block boundaries are joined with a newline.
func PlainText(n *Node) string {
	if n == nil {
		return ""
	}
	if n.Kind == KindText {
		return n.Text
	}
	var parts []string
	for _, child := range n.Children {
		if text := PlainText(child); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n")
}

// Count returns the total number of nodes in the subtree rooted at n,
// including n itself.
func Count(n *Node) int {
	if n == nil {
		return 0
	}
	total := 1
	for _, child := range n.Children {
		total += Count(child)
	}
	return total
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the children of the current node.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		Walk(child, fn)
	}
}

// Clone returns a deep copy of n. The copy shares no mutable state with the
// original, so the normalizer can rewrite it freely.
func Clone(n *Node) *Node {
	if n == nil {
		return nil
	}
	out := &Node{
		Kind:  n.Kind,
		Level: n.Level,
		Text:  n.Text,
		Info:  n.Info,
		List:  n.List,
		Start: n.Start,
		Width: n.Width,
	}
	if n.Checked != nil {
		checked := *n.Checked
		out.Checked = &checked
	}
	if n.Lines != nil {
		out.Lines = append([]string(nil), n.Lines...)
	}
	if n.Rows != nil {
		out.Rows = make([][]string, len(n.Rows))
		for i, row := range n.Rows {
			out.Rows[i] = append([]string(nil), row...)
		}
	}
	if n.Children != nil {
		out.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			out.Children[i] = Clone(child)
		}
	}
	return out
}

// Equal reports whether two trees are structurally identical, including
// payload fields and task checked states.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.Level != b.Level || a.Text != b.Text ||
		a.Info != b.Info || a.List != b.List || a.Start != b.Start ||
		a.Width != b.Width {
		return false
	}
	if (a.Checked == nil) != (b.Checked == nil) {
		return false
	}
	if a.Checked != nil && *a.Checked != *b.Checked {
		return false
	}
	if len(a.Lines) != len(b.Lines) {
		return false
	}
	for i := range a.Lines {
		if a.Lines[i] != b.Lines[i] {
			return false
		}
	}
	if len(a.Rows) != len(b.Rows) {
		return false
	}
	for i := range a.Rows {
		if len(a.Rows[i]) != len(b.Rows[i]) {
			return false
		}
		for j := range a.Rows[i] {
			if a.Rows[i][j] != b.Rows[i][j] {
				return false
			}
		}
	}
	if len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}
