package document

import "testing"

func TestIsTaskListClassification(t *testing.T) {
	bullet := NewList(ListBullet, 0,
		NewItem(NewItemContent("plain")),
	)
	if IsTaskList(bullet) {
		t.Fatalf("bullet list without checked items classified as task list")
	}

	// A container is a task list as soon as any item carries a checked
	// state, regardless of its tag.
	mixed := NewList(ListBullet, 0,
		NewItem(NewItemContent("plain")),
		NewTaskItem(true, NewItemContent("done")),
	)
	if !IsTaskList(mixed) {
		t.Fatalf("list with a checked item not classified as task list")
	}

	tagged := NewList(ListTask, 0, NewItem(NewItemContent("todo")))
	if !IsTaskList(tagged) {
		t.Fatalf("tagged task list not classified as task list")
	}
}

func TestListStartDefaults(t *testing.T) {
	ordered := NewList(ListOrdered, 0, NewItem(NewItemContent("a")))
	if got := ListStart(ordered); got != 1 {
		t.Fatalf("unset start should default to 1, got %d", got)
	}

	ordered.Start = 4
	if got := ListStart(ordered); got != 4 {
		t.Fatalf("explicit start ignored, got %d", got)
	}

	bullet := NewList(ListBullet, 7, NewItem(NewItemContent("a")))
	if got := ListStart(bullet); got != 1 {
		t.Fatalf("bullet list start should be 1, got %d", got)
	}
}

func TestItemCountSkipsForeignChildren(t *testing.T) {
	list := NewList(ListBullet, 0,
		NewItem(NewItemContent("a")),
		NewParagraph("stray"),
		NewItem(NewItemContent("b")),
	)
	if got := ItemCount(list); got != 2 {
		t.Fatalf("expected 2 items, got %d", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	original := NewDocument(
		NewList(ListTask, 0,
			NewTaskItem(true, NewItemContent("a")),
		),
		NewCodeBlock("go", "package main"),
		NewTable([]string{"h1", "h2"}, []string{"c1", "c2"}),
	)

	cloned := Clone(original)
	if !Equal(original, cloned) {
		t.Fatalf("clone not structurally equal to original")
	}

	*cloned.Children[0].Children[0].Checked = false
	cloned.Children[1].Lines[0] = "changed"
	cloned.Children[2].Rows[0][0] = "changed"

	if !*original.Children[0].Children[0].Checked {
		t.Fatalf("clone shares checked state with original")
	}
	if original.Children[1].Lines[0] != "package main" {
		t.Fatalf("clone shares code lines with original")
	}
	if original.Children[2].Rows[0][0] != "h1" {
		t.Fatalf("clone shares table rows with original")
	}
}

func TestEqualDistinguishesCheckedState(t *testing.T) {
	a := NewTaskItem(true, NewItemContent("x"))
	b := NewTaskItem(false, NewItemContent("x"))
	c := NewItem(NewItemContent("x"))

	if Equal(a, b) {
		t.Fatalf("items with different checked values reported equal")
	}
	if Equal(a, c) {
		t.Fatalf("task item equal to non-task item")
	}
}

func TestWalkPreOrderAndPruning(t *testing.T) {
	doc := NewDocument(
		NewHeading(1, "title"),
		NewList(ListBullet, 0, NewItem(NewItemContent("a"))),
	)

	var kinds []Kind
	Walk(doc, func(n *Node) bool {
		kinds = append(kinds, n.Kind)
		// Prune list subtrees.
		return n.Kind != KindList
	})

	want := []Kind{KindDocument, KindHeading, KindText, KindList}
	if len(kinds) != len(want) {
		t.Fatalf("visited %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("visited %v, want %v", kinds, want)
		}
	}
}

func TestCountIncludesEveryNode(t *testing.T) {
	doc := NewDocument(NewParagraph("a"), NewParagraph("b"))
	// Document + 2 paragraphs + 2 text spans.
	if got := Count(doc); got != 5 {
		t.Fatalf("expected 5 nodes, got %d", got)
	}
}
