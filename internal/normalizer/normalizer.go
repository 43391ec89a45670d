// Package normalizer restores the structural invariants of a document tree
// after arbitrary edits. It repeatedly applies local repair rules until a
// full pass over the tree changes nothing, so the result is stable under
// re-normalization.
//
// Repairs, in priority order:
//
//   - a non-item child of a list container is moved out of the container,
//     splitting the container when the child sits in the middle
//   - a code block inside item content is hoisted to sit beside it under
//     the same list item
//   - an ordered list separated from its predecessor by a single root-level
//     code block continues the predecessor's numbering
//   - a document ending in a code block, list, or table gains a trailing
//     empty paragraph
//   - a list item with no content receives an empty content child
//
// The engine never fails: a node that does not match a rule's precondition
// is skipped and traversal continues.
package normalizer

import (
	"github.com/goliatone/go-doctree/document"
	"github.com/goliatone/go-doctree/internal/logging"
	"github.com/goliatone/go-doctree/pkg/interfaces"
)

// Normalizer applies the repair rules to document trees. Instances are
// stateless between calls and safe to reuse; construct one per editing
// session or share a single value.
type Normalizer struct {
	logger interfaces.Logger
}

// Option customises a Normalizer.
type Option func(*Normalizer)

// WithLogger injects a logger; applied fixes are reported at debug level.
func WithLogger(logger interfaces.Logger) Option {
	return func(n *Normalizer) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// New constructs a Normalizer.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{logger: logging.NoOp()}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize rewrites doc so every structural invariant holds, and returns
// the tree. The input is mutated in place; callers must treat the return
// value as authoritative. Normalize is idempotent and never fails.
//
// Each applied fix strictly reduces the number of violations, so the loop
// reaches a fixpoint quickly; the pass count is still capped at twice the
// node count to contain a misbehaving rule.
func (n *Normalizer) Normalize(doc *document.Node) *document.Node {
	if doc == nil {
		return document.NewDocument()
	}

	maxPasses := 2 * document.Count(doc)
	if maxPasses < 8 {
		maxPasses = 8
	}

	for pass := 0; pass < maxPasses; pass++ {
		if !n.applyFirstFix(doc) {
			return doc
		}
	}

	n.logger.Warn("normalization pass budget exhausted", "passes", maxPasses)
	return doc
}

// applyFirstFix scans doc pre-order, applies the first matching fix, and
// reports whether anything changed. The scan restarts from the root after
// every fix so later rules always observe a partially repaired tree.
func (n *Normalizer) applyFirstFix(node *document.Node) bool {
	for i := 0; i < len(node.Children); i++ {
		child := node.Children[i]
		if document.IsListContainer(child) {
			if n.fixForeignChild(node, i, child) {
				return true
			}
		}
		if child.Kind == document.KindListItem {
			if n.hoistCodeBlock(child) {
				return true
			}
		}
	}

	if node.Kind == document.KindDocument {
		if n.continueNumbering(node) {
			return true
		}
		if n.ensureTrailingParagraph(node) {
			return true
		}
	}

	for _, child := range node.Children {
		if child.Kind == document.KindListItem && n.ensureItemContent(child) {
			return true
		}
	}

	for _, child := range node.Children {
		if n.applyFirstFix(child) {
			return true
		}
	}
	return false
}
