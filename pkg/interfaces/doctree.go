package interfaces

import "github.com/goliatone/go-doctree/document"

// Normalizer restores the structural invariants of a document tree after an
// edit. Implementations may mutate the input in place; callers must treat
// the returned tree as authoritative.
type Normalizer interface {
	Normalize(doc *document.Node) *document.Node
}

// Codec converts between the document tree and its persisted markdown text.
// Deserialization never fails on malformed constructs; it degrades to valid
// placeholder nodes or raw text.
type Codec interface {
	Serialize(doc *document.Node) (string, error)
	Deserialize(text string) (*document.Node, error)
}
